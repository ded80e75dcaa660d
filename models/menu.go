package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	BusinessID     uint            `gorm:"index;not null" json:"business_id"`
	Business       Business        `gorm:"foreignKey:BusinessID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CategoryID     *uint           `gorm:"index" json:"category_id,omitempty"`
	Category       *MenuCategory   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	IsAvailable    bool            `gorm:"not null;default:true" json:"is_available"`
	KdsDestination string          `gorm:"type:varchar(50)" json:"kds_destination"`
	ModifierGroups []ModifierGroup `gorm:"foreignKey:MenuItemID" json:"modifier_groups,omitempty"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`
}
