package models

import "time"

// Status meja
const (
	TableStatusAvailable      = "available"
	TableStatusOccupied       = "occupied"
	TableStatusPendingPayment = "pending_payment"
)

type Table struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BusinessID uint      `gorm:"index;not null" json:"business_id"`
	Business   Business  `gorm:"foreignKey:BusinessID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Identifier string    `gorm:"type:varchar(100);not null;index" json:"identifier"`
	Status     string    `gorm:"type:varchar(50);not null;default:'available'" json:"status"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
