package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer adalah pelanggan terdaftar program loyalty, ter-scope ke business.
// Points dimiliki oleh ledger (credit/debit), tier oleh TierService.
type Customer struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	BusinessID uint     `gorm:"index;not null" json:"business_id"`
	Business   Business `gorm:"foreignKey:BusinessID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name       string   `gorm:"type:varchar(255)" json:"name"`
	Email      string   `gorm:"type:varchar(255);index" json:"email"`
	IsActive   bool     `gorm:"not null;default:true" json:"is_active"`

	Points            int             `gorm:"not null;default:0" json:"points"`
	TotalSpend        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_spend"`
	TotalVisits       int             `gorm:"not null;default:0" json:"total_visits"`
	TotalPointsEarned int             `gorm:"not null;default:0" json:"total_points_earned"`
	LastActivityAt    *time.Time      `json:"last_activity_at,omitempty"`

	CurrentTierID  *uint      `gorm:"index" json:"current_tier_id,omitempty"`
	CurrentTier    *Tier      `gorm:"foreignKey:CurrentTierID" json:"current_tier,omitempty"`
	TierAchievedAt *time.Time `json:"tier_achieved_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
