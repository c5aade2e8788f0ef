package services

import (
	"testing"
	"time"

	"aruskas/internal/models"
	"aruskas/internal/pagination"
	"aruskas/internal/testutil"
)

func TestCreateInventory(t *testing.T) {
	t.Run("equipment_drops_billing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInventoryService(db)
		user := testutil.CreateTestUser(t, db)

		next := time.Now().AddDate(0, 1, 0)
		item, err := svc.CreateInventory(user.ID, "Kamera Sony A7", "", models.InventoryTypeEquipment,
			25000000, models.FrequencyMonthly, &next)
		testutil.AssertNoError(t, err)

		// Billing fields only make sense on subscriptions.
		if item.RecurringType != "" || item.NextBillingDate != nil {
			t.Errorf("equipment item carries billing fields: %+v", item)
		}
		if item.PaymentStatus != models.PaymentStatusUnpaid {
			t.Errorf("expected initial status Belum Bayar, got %s", item.PaymentStatus)
		}
	})

	t.Run("subscription_keeps_billing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInventoryService(db)
		user := testutil.CreateTestUser(t, db)

		next := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
		item, err := svc.CreateInventory(user.ID, "Adobe Creative Cloud", "", models.InventoryTypeSubscription,
			800000, models.FrequencyMonthly, &next)
		testutil.AssertNoError(t, err)

		if item.RecurringType != models.FrequencyMonthly {
			t.Errorf("expected MONTHLY recurring type, got %s", item.RecurringType)
		}
		if item.NextBillingDate == nil || !item.NextBillingDate.Equal(next) {
			t.Errorf("expected next billing %v, got %v", next, item.NextBillingDate)
		}
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInventoryService(db)

		_, err := svc.CreateInventory("u", "X", "", models.InventoryType("VEHICLE"), 100, "", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInventoryService(db)

		_, err := svc.CreateInventory("u", "X", "", models.InventoryTypeEquipment, -1, "", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetInventories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewInventoryService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestInventory(t, db, user.ID, models.InventoryTypeEquipment)
	testutil.CreateTestInventory(t, db, user.ID, models.InventoryTypeEquipment)
	testutil.CreateTestInventory(t, db, user.ID, models.InventoryTypeSubscription)

	sub := models.InventoryTypeSubscription
	page, err := svc.GetInventories(pagination.PageRequest{}, &sub)
	testutil.AssertNoError(t, err)
	if page.TotalItems != 1 {
		t.Errorf("expected 1 subscription, got %d", page.TotalItems)
	}

	page, err = svc.GetInventories(pagination.PageRequest{}, nil)
	testutil.AssertNoError(t, err)
	if page.TotalItems != 3 {
		t.Errorf("expected 3 items, got %d", page.TotalItems)
	}
}

func TestUpdateInventory(t *testing.T) {
	t.Run("updates_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInventoryService(db)
		user := testutil.CreateTestUser(t, db)
		item := testutil.CreateTestInventory(t, db, user.ID, models.InventoryTypeEquipment)

		name := "Tripod baru"
		status := models.PaymentStatusPaid
		updated, err := svc.UpdateInventory(user.ID, item.ID, InventoryUpdateFields{
			Name:          &name,
			PaymentStatus: &status,
		})
		testutil.AssertNoError(t, err)
		if updated.Name != "Tripod baru" {
			t.Errorf("expected updated name, got %s", updated.Name)
		}
		if updated.PaymentStatus != models.PaymentStatusPaid {
			t.Errorf("expected status Lunas, got %s", updated.PaymentStatus)
		}
	})

	t.Run("billing_fields_ignored_for_equipment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInventoryService(db)
		user := testutil.CreateTestUser(t, db)
		item := testutil.CreateTestInventory(t, db, user.ID, models.InventoryTypeEquipment)

		freq := models.FrequencyMonthly
		next := time.Now().AddDate(0, 1, 0)
		updated, err := svc.UpdateInventory(user.ID, item.ID, InventoryUpdateFields{
			RecurringType:   &freq,
			NextBillingDate: &next,
		})
		testutil.AssertNoError(t, err)
		if updated.RecurringType != "" || updated.NextBillingDate != nil {
			t.Error("billing fields must not apply to equipment")
		}
	})

	t.Run("invalid_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInventoryService(db)
		user := testutil.CreateTestUser(t, db)
		item := testutil.CreateTestInventory(t, db, user.ID, models.InventoryTypeEquipment)

		status := models.PaymentStatus("Nunggak")
		_, err := svc.UpdateInventory(user.ID, item.ID, InventoryUpdateFields{PaymentStatus: &status})
		testutil.AssertAppError(t, err, "INVALID_PAYMENT_STATUS")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInventoryService(db)

		_, err := svc.UpdateInventory("u", "no-such-id", InventoryUpdateFields{})
		testutil.AssertAppError(t, err, "INVENTORY_NOT_FOUND")
	})
}

func TestDeleteInventory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewInventoryService(db)
	user := testutil.CreateTestUser(t, db)
	item := testutil.CreateTestInventory(t, db, user.ID, models.InventoryTypeEquipment)

	err := svc.DeleteInventory(user.ID, item.ID)
	testutil.AssertNoError(t, err)

	_, err = svc.GetInventoryByID(item.ID)
	testutil.AssertAppError(t, err, "INVENTORY_NOT_FOUND")
}
