package models

import "time"

// User adalah akun staff (waiter/admin) milik satu business.
type User struct {
	ID         uint      `gorm:"primaryKey"`
	BusinessID uint      `gorm:"index;not null"`
	Business   Business  `gorm:"foreignKey:BusinessID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Name       string    `gorm:"type:varchar(255); not null"`
	Email      string    `gorm:"type:varchar(255); unique;not null"`
	Password   string    `gorm:"type:varchar(255); not null"`
	Role       string    `gorm:"type:varchar(255); not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
