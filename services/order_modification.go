package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
	"github.com/ordelo-app/ordelo/utils"
)

// AddItemsPayload adalah tambahan item untuk order yang sudah berjalan.
type AddItemsPayload struct {
	Items           []OrderItemRequest `json:"items" binding:"required"`
	CustomerNotes   string             `json:"customer_notes"`
	TableIdentifier string             `json:"table_identifier"`
}

// Status yang masih menerima penambahan item.
var amendableStatuses = []string{
	models.OrderStatusReceived,
	models.OrderStatusInProgress,
	models.OrderStatusPartiallyReady,
	models.OrderStatusAllItemsReady,
	models.OrderStatusCompleted,
	models.OrderStatusPendingPayment,
}

// Status yang di-reset ke in_progress ketika item baru masuk, karena
// dapur harus kembali bekerja.
var statusesResetOnAmend = map[string]bool{
	models.OrderStatusCompleted:      true,
	models.OrderStatusAllItemsReady:  true,
	models.OrderStatusPendingPayment: true,
}

// OrderModificationService menambah item ke order aktif dan menghitung
// ulang total serta status order.
type OrderModificationService struct {
	db        *gorm.DB
	processor *ItemProcessor
}

func NewOrderModificationService(db *gorm.DB) *OrderModificationService {
	return &OrderModificationService{
		db:        db,
		processor: NewItemProcessor(),
	}
}

// AddItemsToOrder menambahkan item baru ke order yang belum dibayar.
// Penukaran reward tidak diizinkan lewat jalur ini; RedeemedRewardID
// pada payload diabaikan.
func (s *OrderModificationService) AddItemsToOrder(businessSlug string, orderID uint, payload AddItemsPayload) (*models.Order, error) {
	business, err := validateBusinessForOrdering(s.db, businessSlug)
	if err != nil {
		return nil, err
	}

	var updated models.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w (id=%d)", ErrOrderNotFound, orderID)
			}
			return err
		}
		if order.BusinessID != business.ID {
			return fmt.Errorf("%w: order %d", ErrWrongBusiness, orderID)
		}

		if !isAmendable(order.Status) {
			return fmt.Errorf("%w: cannot add items to order in status '%s'", ErrInvalidOrderStatus, order.Status)
		}

		requests := make([]OrderItemRequest, 0, len(payload.Items))
		for _, req := range payload.Items {
			req.RedeemedRewardID = nil
			requests = append(requests, req)
		}

		processed, err := s.processor.ProcessOrderItems(tx, business.ID, requests)
		if err != nil {
			return err
		}
		if len(processed) == 0 {
			return ErrEmptyOrder
		}

		addedTotal := processed[0].TotalItemPrice
		for _, item := range processed[1:] {
			addedTotal = addedTotal.Add(item.TotalItemPrice)
		}

		newItems := buildOrderItems(processed)
		for i := range newItems {
			newItems[i].OrderID = order.ID
		}
		if err := tx.Create(&newItems).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"total_amount": order.TotalAmount.Add(addedTotal),
		}

		// FinalAmount mengikuti invariant max(0, total - discount).
		newFinal := order.TotalAmount.Add(addedTotal).Sub(order.DiscountAmount)
		if newFinal.IsNegative() {
			newFinal = decimal.Zero
		}
		updates["final_amount"] = newFinal

		if statusesResetOnAmend[order.Status] {
			updates["status"] = models.OrderStatusInProgress
		}
		if order.IsBillRequested {
			updates["is_bill_requested"] = false
		}
		if payload.CustomerNotes != "" {
			notes := payload.CustomerNotes
			if order.Notes != "" {
				notes = order.Notes + "\n---\n" + payload.CustomerNotes
			}
			updates["notes"] = notes
		}

		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Preload("OrderItems.SelectedModifiers").First(&updated, order.ID).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s (id=%d) amended with %d new item(s), new total %s",
		updated.OrderNumber, updated.ID, len(payload.Items), updated.TotalAmount.StringFixed(2))
	return &updated, nil
}

func isAmendable(status string) bool {
	for _, s := range amendableStatuses {
		if s == status {
			return true
		}
	}
	return false
}
