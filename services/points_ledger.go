package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
)

// PointsLedger adalah satu-satunya komponen yang memutasi balance points
// customer. Debit dan credit dua-duanya atomik pada baris customer,
// sehingga balance tidak pernah negatif walau ada request konkuren.
type PointsLedger struct{}

func NewPointsLedger() *PointsLedger {
	return &PointsLedger{}
}

// Debit mengurangi balance secara kondisional: update hanya terjadi bila
// balance >= points. Bila tidak ada baris ter-update, balance tidak
// berubah dan ErrInsufficientPoints dikembalikan. Entry ActivityLog
// ditulis dengan delta negatif.
func (l *PointsLedger) Debit(tx *gorm.DB, customer *models.Customer, points int, description string, relatedOrderID, relatedRewardID *uint) error {
	if points <= 0 {
		return nil
	}

	res := tx.Model(&models.Customer{}).
		Where("id = ? AND points >= ?", customer.ID, points).
		UpdateColumn("points", gorm.Expr("points - ?", points))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: need %d points", ErrInsufficientPoints, points)
	}

	delta := -points
	log := models.ActivityLog{
		BusinessID:      customer.BusinessID,
		CustomerID:      customer.ID,
		Type:            models.ActivityPointsRedeemed,
		PointsChanged:   &delta,
		Description:     description,
		RelatedOrderID:  relatedOrderID,
		RelatedRewardID: relatedRewardID,
	}
	return tx.Create(&log).Error
}

// Credit menambah balance dan total points earned secara atomik dan
// menulis entry ActivityLog dengan delta positif.
func (l *PointsLedger) Credit(tx *gorm.DB, customer *models.Customer, points int, activityType, description string, relatedOrderID *uint) error {
	if points <= 0 {
		return nil
	}

	res := tx.Model(&models.Customer{}).
		Where("id = ?", customer.ID).
		UpdateColumns(map[string]interface{}{
			"points":              gorm.Expr("points + ?", points),
			"total_points_earned": gorm.Expr("total_points_earned + ?", points),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w (id=%d)", ErrCustomerNotFound, customer.ID)
	}

	delta := points
	log := models.ActivityLog{
		BusinessID:     customer.BusinessID,
		CustomerID:     customer.ID,
		Type:           activityType,
		PointsChanged:  &delta,
		Description:    description,
		RelatedOrderID: relatedOrderID,
	}
	return tx.Create(&log).Error
}
