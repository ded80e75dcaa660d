package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipe UI grup modifier
const (
	ModifierUIRadio    = "RADIO"
	ModifierUICheckbox = "CHECKBOX"
)

// ModifierGroup adalah satu set pilihan pada menu item (mis. "Size"),
// dengan aturan kardinalitas min/max.
type ModifierGroup struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	MenuItemID    uint             `gorm:"index;not null" json:"menu_item_id"`
	MenuItem      MenuItem         `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name          string           `gorm:"type:varchar(255);not null" json:"name"`
	UIType        string           `gorm:"type:varchar(20);not null;default:'RADIO'" json:"ui_type"`
	MinSelections int              `gorm:"not null;default:0" json:"min_selections"`
	MaxSelections int              `gorm:"not null;default:1" json:"max_selections"`
	IsRequired    bool             `gorm:"not null;default:false" json:"is_required"`
	Position      int              `gorm:"not null;default:0" json:"position"`
	Options       []ModifierOption `gorm:"foreignKey:GroupID" json:"options,omitempty"`
	CreatedAt     time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"not null" json:"updated_at"`
}

type ModifierOption struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	GroupID         uint            `gorm:"index;not null" json:"group_id"`
	Group           ModifierGroup   `gorm:"foreignKey:GroupID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	PriceAdjustment decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price_adjustment"`
	IsAvailable     bool            `gorm:"not null;default:true" json:"is_available"`
	Position        int             `gorm:"not null;default:0" json:"position"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
}
