package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "aruskas/internal/errors"
	"aruskas/internal/models"
	"aruskas/internal/pagination"
	"aruskas/internal/services"
)

// InventoryHandler handles inventory requests.
type InventoryHandler struct {
	inventoryService services.InventoryServicer
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService services.InventoryServicer) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateInventoryRequest represents the request payload for creating an inventory item.
type CreateInventoryRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=200"`
	Type            string `json:"type" binding:"required,inventory_type"`
	Description     string `json:"description" binding:"max=500"`
	PurchasePrice   int64  `json:"purchase_price" binding:"gte=0"`
	RecurringType   string `json:"recurring_type" binding:"omitempty,recurring_frequency"`
	NextBillingDate string `json:"next_billing_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateInventoryRequest represents an inventory edit. Nil fields are unchanged.
type UpdateInventoryRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description     *string `json:"description" binding:"omitempty,max=500"`
	PurchasePrice   *int64  `json:"purchase_price" binding:"omitempty,gte=0"`
	PaymentStatus   *string `json:"payment_status" binding:"omitempty,payment_status"`
	RecurringType   *string `json:"recurring_type" binding:"omitempty,recurring_frequency"`
	NextBillingDate *string `json:"next_billing_date" binding:"omitempty,datetime=2006-01-02"`
}

// CreateInventory handles the creation of a new inventory item.
// @Summary     Create an inventory item
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInventoryRequest true "Inventory details"
// @Success     201 {object} models.Inventory "Item created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /inventory [post]
func (h *InventoryHandler) CreateInventory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var nextBilling *time.Time
	if req.NextBillingDate != "" {
		next, _ := time.Parse("2006-01-02", req.NextBillingDate)
		nextBilling = &next
	}

	item, err := h.inventoryService.CreateInventory(
		userID,
		req.Name,
		req.Description,
		models.InventoryType(req.Type),
		req.PurchasePrice,
		models.RecurringFrequency(req.RecurringType),
		nextBilling,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"inventory": item})
}

// GetInventories returns a paginated list of inventory items.
// @Summary     List inventory
// @Tags        inventory
// @Produce     json
// @Security    BearerAuth
// @Param       type      query string false "Filter by inventory type"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Inventory] "Inventory page"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /inventory [get]
func (h *InventoryHandler) GetInventories(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var invType *models.InventoryType
	if t := c.Query("type"); t != "" {
		it := models.InventoryType(t)
		if !it.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid inventory type"))
			return
		}
		invType = &it
	}

	result, err := h.inventoryService.GetInventories(page, invType)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetInventoryByID returns a single inventory item.
// @Summary     Get an inventory item
// @Tags        inventory
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Inventory ID"
// @Success     200 {object} models.Inventory "Item"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /inventory/{id} [get]
func (h *InventoryHandler) GetInventoryByID(c *gin.Context) {
	item, err := h.inventoryService.GetInventoryByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": item})
}

// UpdateInventory edits an inventory item.
// @Summary     Update an inventory item
// @Tags        inventory
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                 true "Inventory ID"
// @Param       request body UpdateInventoryRequest true "Fields to change"
// @Success     200 {object} models.Inventory "Item updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /inventory/{id} [put]
func (h *InventoryHandler) UpdateInventory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.InventoryUpdateFields{
		Name:          req.Name,
		Description:   req.Description,
		PurchasePrice: req.PurchasePrice,
	}
	if req.PaymentStatus != nil {
		ps := models.PaymentStatus(*req.PaymentStatus)
		fields.PaymentStatus = &ps
	}
	if req.RecurringType != nil {
		rt := models.RecurringFrequency(*req.RecurringType)
		fields.RecurringType = &rt
	}
	if req.NextBillingDate != nil && *req.NextBillingDate != "" {
		next, _ := time.Parse("2006-01-02", *req.NextBillingDate)
		fields.NextBillingDate = &next
	}

	item, err := h.inventoryService.UpdateInventory(userID, c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": item})
}

// DeleteInventory removes an inventory item.
// @Summary     Delete an inventory item
// @Tags        inventory
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Inventory ID"
// @Success     200 {object} map[string]string "Item deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /inventory/{id} [delete]
func (h *InventoryHandler) DeleteInventory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.inventoryService.DeleteInventory(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted"})
}
