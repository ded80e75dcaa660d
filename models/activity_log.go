package models

import "time"

// Tipe activity log
const (
	ActivityPointsEarnedOrder  = "POINTS_EARNED_ORDER"
	ActivityPointsRedeemed     = "POINTS_REDEEMED_REWARD"
	ActivityRewardAppliedOrder = "REWARD_APPLIED_TO_ORDER"
)

// ActivityLog adalah audit trail append-only untuk setiap event yang
// mempengaruhi points. Tidak pernah di-update atau dihapus.
type ActivityLog struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	BusinessID uint     `gorm:"index;not null" json:"business_id"`
	Business   Business `gorm:"foreignKey:BusinessID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CustomerID uint     `gorm:"index;not null" json:"customer_id"`
	Customer   Customer `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Type          string `gorm:"type:varchar(50);not null" json:"type"`
	PointsChanged *int   `json:"points_changed,omitempty"`
	Description   string `gorm:"type:text;not null" json:"description"`

	RelatedOrderID  *uint `gorm:"index" json:"related_order_id,omitempty"`
	RelatedRewardID *uint `gorm:"index" json:"related_reward_id,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
