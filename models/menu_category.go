package models

import "time"

type MenuCategory struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	BusinessID uint       `gorm:"index;not null" json:"business_id"`
	Business   Business   `gorm:"foreignKey:BusinessID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name       string     `gorm:"type:varchar(255);not null" json:"name"`
	Position   int        `gorm:"not null;default:0" json:"position"`
	IsActive   bool       `gorm:"not null;default:true" json:"is_active"`
	Items      []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}
