package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status order
const (
	OrderStatusReceived       = "received"
	OrderStatusInProgress     = "in_progress"
	OrderStatusPartiallyReady = "partially_ready"
	OrderStatusAllItemsReady  = "all_items_ready"
	OrderStatusCompleted      = "completed"
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusCancelled      = "cancelled"
	OrderStatusPaymentFailed  = "payment_failed"
)

// Order adalah aggregate root: OrderItem dan snapshot modifier-nya dibuat
// bersama order dan tidak pernah dihapus, hanya dimutasi.
// Invariant: FinalAmount = max(0, TotalAmount - DiscountAmount), selalu
// dihitung ulang saat items atau discount berubah.
type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	BusinessID  uint            `gorm:"index;not null" json:"business_id"`
	Business    Business        `gorm:"foreignKey:BusinessID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	OrderNumber string          `gorm:"type:varchar(30);not null;index" json:"order_number"`
	Status      string          `gorm:"type:varchar(20);not null;default:'received'" json:"status"`

	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"final_amount"`

	TableID    *uint     `gorm:"index" json:"table_id,omitempty"`
	Table      *Table    `gorm:"foreignKey:TableID" json:"table,omitempty"`
	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	Notes           string `gorm:"type:text" json:"notes"`
	IsBillRequested bool   `gorm:"not null;default:false" json:"is_bill_requested"`

	AppliedRewardID *uint   `gorm:"index" json:"applied_reward_id,omitempty"`
	AppliedReward   *Reward `gorm:"foreignKey:AppliedRewardID" json:"applied_reward,omitempty"`

	PaymentMethodPreference string     `gorm:"type:varchar(50)" json:"payment_method_preference"`
	PaymentMethodUsed       string     `gorm:"type:varchar(50)" json:"payment_method_used"`
	PaymentReference        string     `gorm:"type:varchar(64)" json:"payment_reference"`
	PaidByUserID            *uint      `gorm:"index" json:"paid_by_user_id,omitempty"`
	PaidAt                  *time.Time `json:"paid_at,omitempty"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt  time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"not null" json:"updated_at"`
}
