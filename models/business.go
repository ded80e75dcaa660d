package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier calculation basis
const (
	TierBasisSpend        = "SPEND"
	TierBasisVisits       = "VISITS"
	TierBasisPointsEarned = "POINTS_EARNED"
)

// Tier downgrade policy
const (
	DowngradeNever           = "NEVER"
	DowngradePeriodicReview  = "PERIODIC_REVIEW"
	DowngradeAfterInactivity = "AFTER_INACTIVITY"
)

// Business adalah tenant; semua entitas lain ter-scope ke satu business.
type Business struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Slug     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	// Module flags
	IsOrderingActive bool `gorm:"not null;default:false" json:"is_ordering_active"`
	IsLoyaltyActive  bool `gorm:"not null;default:false" json:"is_loyalty_active"`

	// Loyalty configuration
	PointsPerEuro decimal.Decimal `gorm:"type:decimal(10,2);not null;default:1" json:"points_per_euro"`

	// Tier configuration
	TierSystemEnabled      bool    `gorm:"not null;default:false" json:"tier_system_enabled"`
	TierCalculationBasis   string  `gorm:"type:varchar(20)" json:"tier_calculation_basis"`
	TierPeriodMonths       *int    `json:"tier_period_months,omitempty"`
	TierDowngradePolicy    string  `gorm:"type:varchar(20);not null;default:'NEVER'" json:"tier_downgrade_policy"`
	InactivityPeriodMonths *int    `json:"inactivity_period_months,omitempty"`
	Tiers                  []Tier  `gorm:"foreignKey:BusinessID" json:"tiers,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
