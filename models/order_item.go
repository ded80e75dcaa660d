package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status order item
const (
	OrderItemStatusPendingKDS = "pending_kds"
	OrderItemStatusPreparing  = "preparing"
	OrderItemStatusReady      = "ready"
	OrderItemStatusServed     = "served"
	OrderItemStatusCancelled  = "cancelled"
)

// OrderItem menyimpan snapshot harga/nama/deskripsi pada saat order dibuat,
// sehingga perubahan katalog tidak mempengaruhi order historis.
type OrderItem struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `gorm:"index;not null" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	MenuItemID uint     `gorm:"not null" json:"menu_item_id"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	Quantity        int             `gorm:"not null" json:"quantity"`
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_at_purchase"`
	TotalItemPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_item_price"`

	NameSnapshot        string `gorm:"type:varchar(255);not null" json:"name_snapshot"`
	DescriptionSnapshot string `gorm:"type:text" json:"description_snapshot"`
	KdsDestination      string `gorm:"type:varchar(50)" json:"kds_destination"`

	Notes  string `gorm:"type:text" json:"notes"`
	Status string `gorm:"type:varchar(20);not null;default:'pending_kds'" json:"status"`

	// Diisi bila item ini adalah hasil penukaran reward (harga 0, qty 1).
	RedeemedRewardID *uint   `gorm:"index" json:"redeemed_reward_id,omitempty"`
	RedeemedReward   *Reward `gorm:"foreignKey:RedeemedRewardID" json:"-"`

	ServedByUserID *uint      `gorm:"index" json:"served_by_user_id,omitempty"`
	ServedAt       *time.Time `json:"served_at,omitempty"`

	SelectedModifiers []OrderItemModifier `gorm:"foreignKey:OrderItemID" json:"selected_modifiers,omitempty"`
	CreatedAt         time.Time           `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time           `gorm:"not null" json:"updated_at"`
}

// OrderItemModifier adalah snapshot opsi modifier yang dipilih; referensi
// ke opsi asal hanya untuk audit, bukan untuk repricing.
type OrderItemModifier struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderItemID uint      `gorm:"index;not null" json:"order_item_id"`
	OrderItem   OrderItem `gorm:"foreignKey:OrderItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	ModifierOptionID        uint            `gorm:"not null" json:"modifier_option_id"`
	NameSnapshot            string          `gorm:"type:varchar(255);not null" json:"name_snapshot"`
	PriceAdjustmentSnapshot decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price_adjustment_snapshot"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
