package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
)

func createBaseOrder(t *testing.T, db *gorm.DB, slug string) (*OrderCreationService, *models.Order, *models.MenuItem) {
	t.Helper()
	business := seedBusiness(t, db, slug)
	item := seedMenuItem(t, db, business.ID, "Ramen", "9.00")

	svc := NewOrderCreationService(db)
	order, err := svc.CreateOrder(slug, CreateOrderPayload{
		Items:      []OrderItemRequest{{MenuItemID: item.ID, Quantity: 1}},
		OrderNotes: "first round",
	}, nil)
	require.NoError(t, err)
	return svc, order, item
}

func TestAddItemsRecalculatesTotals(t *testing.T) {
	db := setupTestDB(t)
	_, order, item := createBaseOrder(t, db, "resto-amend-totals")

	svc := NewOrderModificationService(db)
	updated, err := svc.AddItemsToOrder("resto-amend-totals", order.ID, AddItemsPayload{
		Items: []OrderItemRequest{{MenuItemID: item.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.True(t, updated.TotalAmount.Equal(mustDecimal(t, "27.00")))
	assert.True(t, updated.FinalAmount.Equal(mustDecimal(t, "27.00")))
	assert.Len(t, updated.OrderItems, 2)
}

func TestAddItemsResetsStatusAndBillFlag(t *testing.T) {
	db := setupTestDB(t)
	_, order, item := createBaseOrder(t, db, "resto-amend-reset")

	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
		"status":            models.OrderStatusPendingPayment,
		"is_bill_requested": true,
	}).Error)

	svc := NewOrderModificationService(db)
	updated, err := svc.AddItemsToOrder("resto-amend-reset", order.ID, AddItemsPayload{
		Items:         []OrderItemRequest{{MenuItemID: item.ID, Quantity: 1}},
		CustomerNotes: "second round",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusInProgress, updated.Status)
	assert.False(t, updated.IsBillRequested)
	assert.Equal(t, "first round\n---\nsecond round", updated.Notes)
}

func TestAddItemsKeepsReceivedStatus(t *testing.T) {
	db := setupTestDB(t)
	_, order, item := createBaseOrder(t, db, "resto-amend-keep")

	svc := NewOrderModificationService(db)
	updated, err := svc.AddItemsToOrder("resto-amend-keep", order.ID, AddItemsPayload{
		Items: []OrderItemRequest{{MenuItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReceived, updated.Status)
}

func TestAddItemsRejectedForPaidOrder(t *testing.T) {
	db := setupTestDB(t)
	_, order, item := createBaseOrder(t, db, "resto-amend-paid")

	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.OrderStatusPaid).Error)

	svc := NewOrderModificationService(db)
	_, err := svc.AddItemsToOrder("resto-amend-paid", order.ID, AddItemsPayload{
		Items: []OrderItemRequest{{MenuItemID: item.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestAddItemsCrossTenantIsBadRequest(t *testing.T) {
	db := setupTestDB(t)
	_, order, _ := createBaseOrder(t, db, "resto-amend-owner")
	other := seedBusiness(t, db, "resto-amend-other")
	otherItem := seedMenuItem(t, db, other.ID, "Udon", "8.00")

	// Order ada tapi milik tenant lain: bukan not found.
	svc := NewOrderModificationService(db)
	_, err := svc.AddItemsToOrder("resto-amend-other", order.ID, AddItemsPayload{
		Items: []OrderItemRequest{{MenuItemID: otherItem.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrongBusiness)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = svc.AddItemsToOrder("resto-amend-other", 99999, AddItemsPayload{
		Items: []OrderItemRequest{{MenuItemID: otherItem.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestAddItemsStripsRewardRedemptions(t *testing.T) {
	db := setupTestDB(t)
	_, order, item := createBaseOrder(t, db, "resto-amend-reward")

	rewardID := uint(9)
	svc := NewOrderModificationService(db)
	updated, err := svc.AddItemsToOrder("resto-amend-reward", order.ID, AddItemsPayload{
		Items: []OrderItemRequest{{MenuItemID: item.ID, Quantity: 1, RedeemedRewardID: &rewardID}},
	})
	require.NoError(t, err)

	// Item ditambahkan dengan harga penuh, bukan sebagai reward.
	assert.True(t, updated.TotalAmount.Equal(mustDecimal(t, "18.00")))
	for _, oi := range updated.OrderItems {
		assert.Nil(t, oi.RedeemedRewardID)
	}
}
