package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "aruskas/internal/errors"
	"aruskas/internal/services"
)

// RecurringHandler exposes the recurring payment processor over HTTP, both
// to authenticated admins and to the API-key-authenticated scheduled job.
type RecurringHandler struct {
	recurringService services.RecurringServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// RunRecurringRequest optionally restricts a run to specific templates.
type RunRecurringRequest struct {
	ExpenseIDs []string `json:"expense_ids"`
}

// Run processes due recurring expense templates.
// @Summary     Run recurring billing
// @Description Process every recurring expense template due as of now, optionally restricted to specific IDs
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RunRecurringRequest false "Optional template ID list"
// @Success     200 {array} services.ProcessResult "Per-template results"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring/run [post]
func (h *RecurringHandler) Run(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RunRecurringRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	results, err := h.recurringService.Run(time.Now(), req.ExpenseIDs, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"processed": len(results),
		"results":   results,
	})
}

// RunPipeline processes due templates on behalf of the scheduled job. The
// route is guarded by the pipeline API-key middleware instead of user auth,
// so there is no acting user on the postings.
// @Summary     Run recurring billing (pipeline)
// @Description Scheduled-job entry point for recurring billing
// @Tags        recurring
// @Produce     json
// @Success     200 {array} services.ProcessResult "Per-template results"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pipeline/recurring/run [post]
func (h *RecurringHandler) RunPipeline(c *gin.Context) {
	results, err := h.recurringService.Run(time.Now(), nil, "")
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"processed": len(results),
		"results":   results,
	})
}
