package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
	"github.com/ordelo-app/ordelo/utils"
)

// WaiterService menangani alur pelayan: menyajikan item yang sudah
// siap dan melihat daftar order aktif milik tenant-nya.
type WaiterService struct {
	db *gorm.DB
}

func NewWaiterService(db *gorm.DB) *WaiterService {
	return &WaiterService{db: db}
}

// Order yang sudah terminal atau sudah masuk fase tagihan tidak boleh
// ditimpa oleh derivasi status dari item dapur.
func orderStatusFrozen(status string) bool {
	switch status {
	case models.OrderStatusPaid, models.OrderStatusCancelled,
		models.OrderStatusCompleted, models.OrderStatusPendingPayment:
		return true
	}
	return false
}

// MarkOrderItemServed menandai satu item ready menjadi served, lalu
// menurunkan ulang status order induk dari status seluruh item.
func (s *WaiterService) MarkOrderItemServed(staffBusinessID, staffUserID, orderItemID uint) (*models.OrderItem, error) {
	var served models.OrderItem

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.OrderItem
		if err := tx.Preload("Order").First(&item, orderItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w (id=%d)", ErrOrderItemNotFound, orderItemID)
			}
			return err
		}
		if item.Order.BusinessID != staffBusinessID {
			return fmt.Errorf("%w: order item %d belongs to another business", ErrForbidden, orderItemID)
		}
		if item.Status != models.OrderItemStatusReady {
			return fmt.Errorf("%w: item is '%s', only ready items can be served", ErrInvalidItemStatus, item.Status)
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":            models.OrderItemStatusServed,
			"served_by_user_id": staffUserID,
			"served_at":         now,
		}
		if err := tx.Model(&item).Updates(updates).Error; err != nil {
			return err
		}

		var siblings []models.OrderItem
		if err := tx.Where("order_id = ?", item.OrderID).Find(&siblings).Error; err != nil {
			return err
		}
		newStatus := deriveOrderStatus(siblings)
		if !orderStatusFrozen(item.Order.Status) && newStatus != item.Order.Status {
			if err := tx.Model(&models.Order{}).Where("id = ?", item.OrderID).
				Update("status", newStatus).Error; err != nil {
				return err
			}
			utils.InfoLogger.Printf("Order %d status derived to '%s' after serving item %d", item.OrderID, newStatus, item.ID)
		}

		served = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &served, nil
}

// UpdateOrderItemStatus adalah jalur KDS: pending_kds -> preparing ->
// ready. Transisi lain ditolak; served hanya lewat MarkOrderItemServed.
func (s *WaiterService) UpdateOrderItemStatus(staffBusinessID, orderItemID uint, newStatus string) (*models.OrderItem, error) {
	allowed := map[string][]string{
		models.OrderItemStatusPendingKDS: {models.OrderItemStatusPreparing, models.OrderItemStatusCancelled},
		models.OrderItemStatusPreparing:  {models.OrderItemStatusReady, models.OrderItemStatusCancelled},
	}

	var updated models.OrderItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.OrderItem
		if err := tx.Preload("Order").First(&item, orderItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w (id=%d)", ErrOrderItemNotFound, orderItemID)
			}
			return err
		}
		if item.Order.BusinessID != staffBusinessID {
			return fmt.Errorf("%w: order item %d belongs to another business", ErrForbidden, orderItemID)
		}

		valid := false
		for _, next := range allowed[item.Status] {
			if next == newStatus {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("%w: cannot move item from '%s' to '%s'", ErrInvalidItemStatus, item.Status, newStatus)
		}

		if err := tx.Model(&item).Update("status", newStatus).Error; err != nil {
			return err
		}

		var siblings []models.OrderItem
		if err := tx.Where("order_id = ?", item.OrderID).Find(&siblings).Error; err != nil {
			return err
		}
		derived := deriveOrderStatus(siblings)
		if !orderStatusFrozen(item.Order.Status) && derived != item.Order.Status {
			if err := tx.Model(&models.Order{}).Where("id = ?", item.OrderID).
				Update("status", derived).Error; err != nil {
				return err
			}
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetOrdersForStaff mengembalikan order milik tenant staff, terbaru
// dulu. statusFilter kosong berarti semua status.
func (s *WaiterService) GetOrdersForStaff(staffBusinessID uint, statusFilter []string) ([]models.Order, error) {
	query := s.db.Preload("OrderItems.SelectedModifiers").Preload("Table").
		Where("business_id = ?", staffBusinessID).
		Order("created_at desc")
	if len(statusFilter) > 0 {
		query = query.Where("status IN ?", statusFilter)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetReadyItems mengembalikan item siap saji untuk layar pelayan.
func (s *WaiterService) GetReadyItems(staffBusinessID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.business_id = ? AND order_items.status = ?", staffBusinessID, models.OrderItemStatusReady).
		Preload("Order").
		Order("order_items.updated_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
