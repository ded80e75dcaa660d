package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipe reward
const (
	RewardTypeMenuItem        = "MENU_ITEM"
	RewardTypeDiscountOnTotal = "DISCOUNT_ON_TOTAL"
)

// Tipe discount
const (
	DiscountTypeFixedAmount = "FIXED_AMOUNT"
	DiscountTypePercentage  = "PERCENTAGE"
)

// Reward dapat ditukar dengan points: item menu gratis atau diskon
// pada total order.
type Reward struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	BusinessID uint     `gorm:"index;not null" json:"business_id"`
	Business   Business `gorm:"foreignKey:BusinessID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name       string   `gorm:"type:varchar(255);not null" json:"name"`
	Type       string   `gorm:"type:varchar(30);not null" json:"type"`
	PointsCost int      `gorm:"not null;default:0" json:"points_cost"`
	IsActive   bool     `gorm:"not null;default:true" json:"is_active"`

	// Hanya untuk tipe discount.
	DiscountType  string           `gorm:"type:varchar(20)" json:"discount_type,omitempty"`
	DiscountValue *decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount_value,omitempty"`

	// Hanya untuk tipe MENU_ITEM.
	LinkedMenuItemID *uint `gorm:"index" json:"linked_menu_item_id,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
