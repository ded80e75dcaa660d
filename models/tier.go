package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipe benefit tier
const (
	TierBenefitPointsMultiplier = "POINTS_MULTIPLIER"
)

// Tier adalah level loyalty; customer selalu berada pada tier aktif
// tertinggi yang threshold-nya <= nilai metrik customer.
type Tier struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	BusinessID uint            `gorm:"index;not null" json:"business_id"`
	Business   Business        `gorm:"foreignKey:BusinessID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name       string          `gorm:"type:varchar(100);not null" json:"name"`
	Level      int             `gorm:"not null" json:"level"`
	MinValue   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"min_value"`
	IsActive   bool            `gorm:"not null;default:true" json:"is_active"`
	Benefits   []TierBenefit   `gorm:"foreignKey:TierID" json:"benefits,omitempty"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}

type TierBenefit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TierID    uint      `gorm:"index;not null" json:"tier_id"`
	Tier      Tier      `gorm:"foreignKey:TierID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Type      string    `gorm:"type:varchar(50);not null" json:"type"`
	Value     string    `gorm:"type:varchar(50);not null" json:"value"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
