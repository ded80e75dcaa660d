package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
	"github.com/ordelo-app/ordelo/utils"
)

// CreateOrderPayload adalah cart yang sudah di-bind di controller.
type CreateOrderPayload struct {
	Items           []OrderItemRequest `json:"items" binding:"required"`
	TableIdentifier string             `json:"table_identifier"`
	CustomerID      *uint              `json:"customer_id,omitempty"`
	OrderNotes      string             `json:"order_notes"`
	AppliedRewardID *uint              `json:"applied_reward_id,omitempty"`
}

// OrderCreationService membuat Order baru secara atomik: pricing item,
// validasi reward, debit points, nomor urut, dan keterkaitan meja.
type OrderCreationService struct {
	db        *gorm.DB
	processor *ItemProcessor
	ledger    *PointsLedger
}

func NewOrderCreationService(db *gorm.DB) *OrderCreationService {
	return &OrderCreationService{
		db:        db,
		processor: NewItemProcessor(),
		ledger:    NewPointsLedger(),
	}
}

// CreateOrder menjalankan seluruh langkah pembuatan order dalam satu
// transaksi; kegagalan validasi manapun membatalkan semuanya.
func (s *OrderCreationService) CreateOrder(businessSlug string, payload CreateOrderPayload, requestingCustomerID *uint) (*models.Order, error) {
	business, err := validateBusinessForOrdering(s.db, businessSlug)
	if err != nil {
		return nil, err
	}

	customerID := payload.CustomerID
	if customerID == nil {
		customerID = requestingCustomerID
	}

	var created models.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		processed, err := s.processor.ProcessOrderItems(tx, business.ID, payload.Items)
		if err != nil {
			return err
		}
		if len(processed) == 0 {
			return ErrEmptyOrder
		}

		subtotal := decimal.Zero
		for _, item := range processed {
			subtotal = subtotal.Add(item.TotalItemPrice)
		}

		discountAmount := decimal.Zero
		pointsToDebit := 0
		var appliedReward *models.Reward
		var customer *models.Customer

		if customerID != nil {
			customer = &models.Customer{}
			if err := tx.First(customer, *customerID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w (id=%d)", ErrCustomerNotFound, *customerID)
				}
				return err
			}
			if customer.BusinessID != business.ID {
				return fmt.Errorf("%w: customer %d", ErrWrongBusiness, customer.ID)
			}

			// Reward item gratis: akumulasi biaya points per item.
			for _, item := range processed {
				if item.RedeemedRewardID == nil {
					continue
				}
				reward, err := fetchReward(tx, business.ID, *item.RedeemedRewardID)
				if err != nil {
					return err
				}
				if reward.Type != models.RewardTypeMenuItem {
					return fmt.Errorf("%w: '%s' is not a free-item reward", ErrInvalidReward, reward.Name)
				}
				if reward.LinkedMenuItemID == nil || *reward.LinkedMenuItemID != item.MenuItemID {
					return fmt.Errorf("%w: '%s' is not linked to the redeemed menu item", ErrInvalidReward, reward.Name)
				}
				pointsToDebit += reward.PointsCost
			}

			// Maksimal satu reward diskon level order.
			if payload.AppliedRewardID != nil {
				reward, err := fetchReward(tx, business.ID, *payload.AppliedRewardID)
				if err != nil {
					return err
				}
				if reward.Type != models.RewardTypeDiscountOnTotal {
					return fmt.Errorf("%w: '%s' is not a discount reward", ErrInvalidReward, reward.Name)
				}
				discountAmount, err = discountForReward(reward, subtotal)
				if err != nil {
					return err
				}
				pointsToDebit += reward.PointsCost
				appliedReward = reward
			}
		} else if payload.AppliedRewardID != nil || anyRedeemedReward(processed) {
			return ErrRewardNeedsCustomer
		}

		finalAmount := subtotal.Sub(discountAmount)
		if finalAmount.IsNegative() {
			finalAmount = decimal.Zero
		}

		orderNumber, err := generateOrderNumber(tx, business.ID)
		if err != nil {
			return err
		}

		order := models.Order{
			BusinessID:     business.ID,
			OrderNumber:    orderNumber,
			Status:         models.OrderStatusReceived,
			TotalAmount:    subtotal,
			DiscountAmount: discountAmount,
			FinalAmount:    finalAmount,
			Notes:          payload.OrderNotes,
			CustomerID:     customerID,
		}
		if appliedReward != nil {
			order.AppliedRewardID = &appliedReward.ID
		}

		// Keterkaitan meja best-effort: lookup gagal tidak membatalkan order.
		var occupiedTable *models.Table
		if payload.TableIdentifier != "" {
			var table models.Table
			err := tx.Where("business_id = ? AND identifier = ?", business.ID, payload.TableIdentifier).
				First(&table).Error
			if err != nil {
				utils.ErrorLogger.Printf("Table '%s' not found for business %d, creating order without table: %v",
					payload.TableIdentifier, business.ID, err)
			} else {
				order.TableID = &table.ID
				occupiedTable = &table
			}
		}

		order.OrderItems = buildOrderItems(processed)

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if occupiedTable != nil {
			if err := tx.Model(occupiedTable).Update("status", models.TableStatusOccupied).Error; err != nil {
				utils.ErrorLogger.Printf("Failed to mark table %d occupied for order %d: %v", occupiedTable.ID, order.ID, err)
			}
		}

		if customer != nil {
			if pointsToDebit > 0 {
				description := fmt.Sprintf("Points redeemed on order #%s", order.OrderNumber)
				if err := s.ledger.Debit(tx, customer, pointsToDebit, description, &order.ID, rewardIDOrNil(appliedReward)); err != nil {
					return err
				}
			}
			if appliedReward != nil {
				logEntry := models.ActivityLog{
					BusinessID:      business.ID,
					CustomerID:      customer.ID,
					Type:            models.ActivityRewardAppliedOrder,
					Description:     fmt.Sprintf("Discount '%s' applied to order #%s", appliedReward.Name, order.OrderNumber),
					RelatedOrderID:  &order.ID,
					RelatedRewardID: &appliedReward.ID,
				}
				if err := tx.Create(&logEntry).Error; err != nil {
					return err
				}
			}
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s (id=%d) created for business %d, final amount %s",
		created.OrderNumber, created.ID, business.ID, created.FinalAmount.StringFixed(2))
	return &created, nil
}

// validateBusinessForOrdering menyelesaikan tenant dari slug dan
// memastikan ordering diizinkan.
func validateBusinessForOrdering(db *gorm.DB, businessSlug string) (*models.Business, error) {
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
	if !business.IsOrderingActive {
		return nil, ErrOrderingDisabled
	}
	return &business, nil
}

func fetchReward(tx *gorm.DB, businessID, rewardID uint) (*models.Reward, error) {
	var reward models.Reward
	if err := tx.First(&reward, rewardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w (id=%d)", ErrRewardNotFound, rewardID)
		}
		return nil, err
	}
	if reward.BusinessID != businessID {
		return nil, fmt.Errorf("%w: reward '%s'", ErrWrongBusiness, reward.Name)
	}
	if !reward.IsActive {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidReward, reward.Name)
	}
	return &reward, nil
}

// discountForReward menghitung nilai diskon dari reward diskon:
// nominal tetap dibatasi subtotal, atau persentase dari subtotal.
func discountForReward(reward *models.Reward, subtotal decimal.Decimal) (decimal.Decimal, error) {
	if reward.DiscountValue == nil {
		return decimal.Zero, fmt.Errorf("%w: '%s' has no discount value", ErrInvalidReward, reward.Name)
	}
	switch reward.DiscountType {
	case models.DiscountTypeFixedAmount:
		if reward.DiscountValue.GreaterThan(subtotal) {
			return subtotal, nil
		}
		return *reward.DiscountValue, nil
	case models.DiscountTypePercentage:
		return subtotal.Mul(*reward.DiscountValue).Div(decimal.NewFromInt(100)), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: '%s' has unknown discount type '%s'", ErrInvalidReward, reward.Name, reward.DiscountType)
	}
}

// generateOrderNumber menghasilkan nomor urut unik per tenant per hari:
// O-YYYYMMDD-<counter lima digit dari jumlah order tenant>.
func generateOrderNumber(tx *gorm.DB, businessID uint) (string, error) {
	var count int64
	if err := tx.Model(&models.Order{}).Where("business_id = ?", businessID).Count(&count).Error; err != nil {
		return "", err
	}
	datePrefix := time.Now().Format("20060102")
	return fmt.Sprintf("O-%s-%05d", datePrefix, count+1), nil
}

func buildOrderItems(processed []ProcessedOrderItem) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(processed))
	for _, p := range processed {
		item := models.OrderItem{
			MenuItemID:          p.MenuItemID,
			Quantity:            p.Quantity,
			PriceAtPurchase:     p.PriceAtPurchase,
			TotalItemPrice:      p.TotalItemPrice,
			NameSnapshot:        p.NameSnapshot,
			DescriptionSnapshot: p.DescriptionSnapshot,
			KdsDestination:      p.KdsDestination,
			Notes:               p.Notes,
			Status:              p.Status,
			RedeemedRewardID:    p.RedeemedRewardID,
		}
		for _, m := range p.Modifiers {
			item.SelectedModifiers = append(item.SelectedModifiers, models.OrderItemModifier{
				ModifierOptionID:        m.ModifierOptionID,
				NameSnapshot:            m.NameSnapshot,
				PriceAdjustmentSnapshot: m.PriceAdjustment,
			})
		}
		items = append(items, item)
	}
	return items
}

func anyRedeemedReward(processed []ProcessedOrderItem) bool {
	for _, item := range processed {
		if item.RedeemedRewardID != nil {
			return true
		}
	}
	return false
}

func rewardIDOrNil(reward *models.Reward) *uint {
	if reward == nil {
		return nil
	}
	return &reward.ID
}
