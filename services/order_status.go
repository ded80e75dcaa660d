package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
)

// PublicOrderStatus adalah proyeksi order untuk klien tanpa auth.
// Item cancelled tidak ikut ditampilkan.
type PublicOrderStatus struct {
	OrderID         uint                    `json:"order_id"`
	OrderNumber     string                  `json:"order_number"`
	Status          string                  `json:"order_status"`
	IsBillRequested bool                    `json:"is_bill_requested"`
	TotalAmount     decimal.Decimal         `json:"total_amount"`
	DiscountAmount  decimal.Decimal         `json:"discount_amount"`
	FinalAmount     decimal.Decimal         `json:"final_amount"`
	TableIdentifier string                  `json:"table_identifier,omitempty"`
	Items           []PublicOrderStatusItem `json:"items"`
	CreatedAt       time.Time               `json:"created_at"`
}

type PublicOrderStatusItem struct {
	ID              uint                      `json:"id"`
	Name            string                    `json:"name"`
	Quantity        int                       `json:"quantity"`
	Status          string                    `json:"status"`
	PriceAtPurchase decimal.Decimal           `json:"price_at_purchase"`
	TotalItemPrice  decimal.Decimal           `json:"total_item_price"`
	Modifiers       []PublicOrderStatusOption `json:"modifiers"`
}

type PublicOrderStatusOption struct {
	Name            string          `json:"name"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

// OrderStatusService menyediakan pembacaan status order untuk klien
// dan derivasi status order dari status item-itemnya.
type OrderStatusService struct {
	db *gorm.DB
}

func NewOrderStatusService(db *gorm.DB) *OrderStatusService {
	return &OrderStatusService{db: db}
}

// GetPublicOrderStatus mengembalikan proyeksi status untuk satu order.
func (s *OrderStatusService) GetPublicOrderStatus(businessSlug string, orderID uint) (*PublicOrderStatus, error) {
	business, err := findBusinessBySlug(s.db, businessSlug)
	if err != nil {
		return nil, err
	}

	var order models.Order
	err = s.db.Preload("OrderItems", "status <> ?", models.OrderItemStatusCancelled).
		Preload("OrderItems.SelectedModifiers").
		Preload("Table").
		Where("id = ? AND business_id = ?", orderID, business.ID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w (id=%d)", ErrOrderNotFound, orderID)
		}
		return nil, err
	}

	status := PublicOrderStatus{
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Status:          order.Status,
		IsBillRequested: order.IsBillRequested,
		TotalAmount:     order.TotalAmount,
		DiscountAmount:  order.DiscountAmount,
		FinalAmount:     order.FinalAmount,
		Items:           make([]PublicOrderStatusItem, 0, len(order.OrderItems)),
		CreatedAt:       order.CreatedAt,
	}
	if order.Table != nil {
		status.TableIdentifier = order.Table.Identifier
	}
	for _, item := range order.OrderItems {
		modifiers := make([]PublicOrderStatusOption, 0, len(item.SelectedModifiers))
		for _, mod := range item.SelectedModifiers {
			modifiers = append(modifiers, PublicOrderStatusOption{
				Name:            mod.NameSnapshot,
				PriceAdjustment: mod.PriceAdjustmentSnapshot,
			})
		}
		status.Items = append(status.Items, PublicOrderStatusItem{
			ID:              item.ID,
			Name:            item.NameSnapshot,
			Quantity:        item.Quantity,
			Status:          item.Status,
			PriceAtPurchase: item.PriceAtPurchase,
			TotalItemPrice:  item.TotalItemPrice,
			Modifiers:       modifiers,
		})
	}
	return &status, nil
}

// deriveOrderStatus menurunkan status order dari status itemnya.
// Item cancelled diabaikan; order yang semua itemnya cancelled ikut
// menjadi cancelled.
func deriveOrderStatus(items []models.OrderItem) string {
	total := 0
	served := 0
	readyOrServed := 0
	preparing := 0

	for _, item := range items {
		if item.Status == models.OrderItemStatusCancelled {
			continue
		}
		total++
		switch item.Status {
		case models.OrderItemStatusServed:
			served++
			readyOrServed++
		case models.OrderItemStatusReady:
			readyOrServed++
		case models.OrderItemStatusPreparing:
			preparing++
		}
	}

	switch {
	case total == 0:
		return models.OrderStatusCancelled
	case served == total:
		return models.OrderStatusCompleted
	case readyOrServed == total:
		return models.OrderStatusAllItemsReady
	case readyOrServed > 0:
		return models.OrderStatusPartiallyReady
	case preparing > 0:
		return models.OrderStatusInProgress
	default:
		return models.OrderStatusReceived
	}
}
