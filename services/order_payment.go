package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
	"github.com/ordelo-app/ordelo/utils"
)

// Status yang boleh ditandai lunas oleh staff.
var payableStatuses = map[string]bool{
	models.OrderStatusPendingPayment: true,
	models.OrderStatusCompleted:      true,
}

// Status dari mana tagihan boleh diminta. Order yang sudah masuk fase
// pembayaran (atau gagal bayar) tidak bisa minta bill lagi.
var billableStatuses = map[string]bool{
	models.OrderStatusReceived:       true,
	models.OrderStatusInProgress:     true,
	models.OrderStatusPartiallyReady: true,
	models.OrderStatusAllItemsReady:  true,
	models.OrderStatusCompleted:      true,
}

// OrderPaymentService menangani permintaan bill dan penandaan lunas.
// Setelah order lunas, accrual loyalty berjalan di transaksi yang sama
// namun kegagalannya tidak membatalkan pembayaran.
type OrderPaymentService struct {
	db      *gorm.DB
	loyalty *LoyaltyService
	tiers   *TierService
}

func NewOrderPaymentService(db *gorm.DB) *OrderPaymentService {
	return &OrderPaymentService{
		db:      db,
		loyalty: NewLoyaltyService(db),
		tiers:   NewTierService(db),
	}
}

// RequestBill dipanggil klien (tanpa auth) untuk meminta tagihan.
func (s *OrderPaymentService) RequestBill(businessSlug string, orderID uint, paymentPreference string) (*models.Order, error) {
	business, err := findBusinessBySlug(s.db, businessSlug)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := s.db.Where("id = ? AND business_id = ?", orderID, business.ID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w (id=%d)", ErrOrderNotFound, orderID)
		}
		return nil, err
	}

	if !billableStatuses[order.Status] {
		return nil, fmt.Errorf("%w: cannot request bill for order in status '%s'", ErrInvalidOrderStatus, order.Status)
	}

	updates := map[string]interface{}{
		"is_bill_requested": true,
		"status":            models.OrderStatusPendingPayment,
	}
	if paymentPreference != "" {
		updates["payment_method_preference"] = paymentPreference
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, err
	}

	if order.TableID != nil {
		if err := s.db.Model(&models.Table{}).Where("id = ?", *order.TableID).
			Update("status", models.TableStatusPendingPayment).Error; err != nil {
			utils.ErrorLogger.Printf("Failed to flag table %d pending payment: %v", *order.TableID, err)
		}
	}

	utils.InfoLogger.Printf("Bill requested for order %s (id=%d), preference '%s'", order.OrderNumber, order.ID, paymentPreference)
	return &order, nil
}

// RequestBillByStaff sama dengan RequestBill tetapi atas nama staff,
// dengan pengecekan bahwa order memang milik tenant si staff.
func (s *OrderPaymentService) RequestBillByStaff(staffBusinessID, orderID uint, paymentPreference string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w (id=%d)", ErrOrderNotFound, orderID)
		}
		return nil, err
	}
	if order.BusinessID != staffBusinessID {
		return nil, fmt.Errorf("%w: order %d belongs to another business", ErrForbidden, orderID)
	}
	if !billableStatuses[order.Status] {
		return nil, fmt.Errorf("%w: cannot request bill for order in status '%s'", ErrInvalidOrderStatus, order.Status)
	}

	updates := map[string]interface{}{
		"is_bill_requested": true,
		"status":            models.OrderStatusPendingPayment,
	}
	if paymentPreference != "" {
		updates["payment_method_preference"] = paymentPreference
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, err
	}
	if order.TableID != nil {
		if err := s.db.Model(&models.Table{}).Where("id = ?", *order.TableID).
			Update("status", models.TableStatusPendingPayment).Error; err != nil {
			utils.ErrorLogger.Printf("Failed to flag table %d pending payment: %v", *order.TableID, err)
		}
	}
	return &order, nil
}

// MarkOrderAsPaid menandai order lunas, membebaskan meja, dan memberi
// points loyalty. Setelah commit, perhitungan tier pelanggan dijalankan
// di goroutine terpisah supaya tidak menahan respons kasir.
func (s *OrderPaymentService) MarkOrderAsPaid(staffBusinessID, staffUserID, orderID uint, paymentMethod string) (*models.Order, error) {
	var paid models.Order
	var customerID *uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w (id=%d)", ErrOrderNotFound, orderID)
			}
			return err
		}
		if order.BusinessID != staffBusinessID {
			return fmt.Errorf("%w: order %d belongs to another business", ErrForbidden, orderID)
		}
		if !payableStatuses[order.Status] {
			return fmt.Errorf("%w: cannot mark order as paid from status '%s'", ErrInvalidOrderStatus, order.Status)
		}

		now := time.Now()
		method := paymentMethod
		if method == "" {
			method = order.PaymentMethodPreference
		}
		updates := map[string]interface{}{
			"status":              models.OrderStatusPaid,
			"payment_method_used": method,
			"payment_reference":   uuid.NewString(),
			"paid_by_user_id":     staffUserID,
			"paid_at":             now,
			"is_bill_requested":   false,
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}

		if order.TableID != nil {
			if err := tx.Model(&models.Table{}).Where("id = ?", *order.TableID).
				Update("status", models.TableStatusAvailable).Error; err != nil {
				utils.ErrorLogger.Printf("Failed to release table %d after payment of order %d: %v", *order.TableID, order.ID, err)
			}
		}

		if err := tx.First(&order, order.ID).Error; err != nil {
			return err
		}

		// Kegagalan accrual tidak boleh menggagalkan pembayaran yang
		// sudah terjadi di kasir.
		if order.CustomerID != nil {
			if err := s.loyalty.AwardPointsForOrder(tx, &order); err != nil {
				utils.ErrorLogger.Printf("Loyalty accrual failed for order %d (customer %d): %v", order.ID, *order.CustomerID, err)
			}
		}

		paid = order
		customerID = order.CustomerID
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s (id=%d) marked paid by user %d", paid.OrderNumber, paid.ID, staffUserID)

	if customerID != nil {
		go func(businessID, cID uint) {
			if err := s.tiers.RecalculateCustomerTier(businessID, cID); err != nil {
				utils.ErrorLogger.Printf("Tier recalculation failed for customer %d: %v", cID, err)
			}
		}(paid.BusinessID, *customerID)
	}

	return &paid, nil
}

// findBusinessBySlug menyelesaikan tenant tanpa mensyaratkan ordering
// aktif; pembayaran order lama tetap harus bisa berjalan.
func findBusinessBySlug(db *gorm.DB, businessSlug string) (*models.Business, error) {
	var business models.Business
	if err := db.Where("slug = ?", businessSlug).First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w (slug=%s)", ErrBusinessNotFound, businessSlug)
		}
		return nil, err
	}
	if !business.IsActive {
		return nil, ErrBusinessInactive
	}
	return &business, nil
}
