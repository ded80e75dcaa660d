package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
	"github.com/ordelo-app/ordelo/utils"
)

// TierService menghitung ulang tier pelanggan berdasarkan metrik
// ter-window dan menjalankan sweep berkala untuk kebijakan downgrade.
type TierService struct {
	db *gorm.DB
}

func NewTierService(db *gorm.DB) *TierService {
	return &TierService{db: db}
}

// RecalculateCustomerTier menilai ulang tier seorang pelanggan dan
// menulis tier target apa adanya. Kebijakan downgrade tenant hanya
// mempengaruhi sweep berkala, bukan perhitungan per pelanggan ini.
func (s *TierService) RecalculateCustomerTier(businessID, customerID uint) error {
	var business models.Business
	if err := s.db.First(&business, businessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w (id=%d)", ErrBusinessNotFound, businessID)
		}
		return err
	}
	if !business.TierSystemEnabled {
		return nil
	}

	var customer models.Customer
	if err := s.db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w (id=%d)", ErrCustomerNotFound, customerID)
		}
		return err
	}
	if customer.BusinessID != businessID {
		return fmt.Errorf("%w: customer %d", ErrWrongBusiness, customerID)
	}

	metric, err := s.customerMetric(&business, &customer)
	if err != nil {
		return err
	}

	var tiers []models.Tier
	if err := s.db.Where("business_id = ? AND is_active = ?", businessID, true).
		Order("level desc").Find(&tiers).Error; err != nil {
		return err
	}

	targetTierID := determineTier(metric, tiers)

	if equalTierID(customer.CurrentTierID, targetTierID) {
		return nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"current_tier_id":  targetTierID,
		"tier_achieved_at": nil,
	}
	if targetTierID != nil {
		updates["tier_achieved_at"] = now
	}
	if err := s.db.Model(&customer).Updates(updates).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Customer %d tier changed: %v -> %v (metric %s, basis %s)",
		customerID, tierIDString(customer.CurrentTierID), tierIDString(targetTierID),
		metric.String(), business.TierCalculationBasis)
	return nil
}

// determineTier memilih tier aktif dengan level tertinggi yang
// threshold-nya terpenuhi. tiers harus terurut level menurun.
// Fungsi murni; pemanggilan berulang dengan input sama selalu
// menghasilkan tier sama.
func determineTier(metric decimal.Decimal, tiers []models.Tier) *uint {
	if !sort.SliceIsSorted(tiers, func(i, j int) bool { return tiers[i].Level > tiers[j].Level }) {
		sort.Slice(tiers, func(i, j int) bool { return tiers[i].Level > tiers[j].Level })
	}
	for i := range tiers {
		if !tiers[i].IsActive {
			continue
		}
		if metric.GreaterThanOrEqual(tiers[i].MinValue) {
			id := tiers[i].ID
			return &id
		}
	}
	return nil
}

// customerMetric menghitung nilai metrik pelanggan sesuai basis tenant,
// dibatasi window TierPeriodMonths bila di-set (nil berarti lifetime).
func (s *TierService) customerMetric(business *models.Business, customer *models.Customer) (decimal.Decimal, error) {
	var since *time.Time
	if business.TierPeriodMonths != nil && *business.TierPeriodMonths > 0 {
		t := time.Now().AddDate(0, -*business.TierPeriodMonths, 0)
		since = &t
	}

	switch business.TierCalculationBasis {
	case models.TierBasisSpend:
		query := s.db.Model(&models.Order{}).
			Where("customer_id = ? AND status = ?", customer.ID, models.OrderStatusPaid)
		if since != nil {
			query = query.Where("paid_at >= ?", *since)
		}
		var total decimal.NullDecimal
		if err := query.Select("SUM(final_amount)").Row().Scan(&total); err != nil {
			return decimal.Zero, err
		}
		if !total.Valid {
			return decimal.Zero, nil
		}
		return total.Decimal, nil

	case models.TierBasisVisits:
		query := s.db.Model(&models.Order{}).
			Where("customer_id = ? AND status = ?", customer.ID, models.OrderStatusPaid)
		if since != nil {
			query = query.Where("paid_at >= ?", *since)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromInt(count), nil

	case models.TierBasisPointsEarned:
		query := s.db.Model(&models.ActivityLog{}).
			Where("customer_id = ? AND points_changed > 0", customer.ID)
		if since != nil {
			query = query.Where("created_at >= ?", *since)
		}
		var total decimal.NullDecimal
		if err := query.Select("SUM(points_changed)").Row().Scan(&total); err != nil {
			return decimal.Zero, err
		}
		if !total.Valid {
			return decimal.Zero, nil
		}
		return total.Decimal, nil

	default:
		return decimal.Zero, fmt.Errorf("business %d has unknown tier calculation basis '%s'",
			business.ID, business.TierCalculationBasis)
	}
}

// ProcessTierSweep meninjau ulang tier untuk semua tenant dengan
// kebijakan downgrade selain NEVER. Error pada satu pelanggan dicatat
// dan tidak menghentikan sisanya.
func (s *TierService) ProcessTierSweep() {
	var businesses []models.Business
	err := s.db.Where("is_active = ? AND tier_system_enabled = ? AND tier_downgrade_policy <> ?",
		true, true, models.DowngradeNever).Find(&businesses).Error
	if err != nil {
		utils.ErrorLogger.Printf("Tier sweep: failed to list businesses: %v", err)
		return
	}

	for i := range businesses {
		business := businesses[i]
		switch business.TierDowngradePolicy {
		case models.DowngradePeriodicReview:
			s.sweepPeriodicReview(&business)
		case models.DowngradeAfterInactivity:
			s.sweepAfterInactivity(&business)
		default:
			utils.ErrorLogger.Printf("Tier sweep: business %d has unknown downgrade policy '%s'",
				business.ID, business.TierDowngradePolicy)
		}
	}
}

func (s *TierService) sweepPeriodicReview(business *models.Business) {
	var customerIDs []uint
	err := s.db.Model(&models.Customer{}).
		Where("business_id = ? AND is_active = ?", business.ID, true).
		Pluck("id", &customerIDs).Error
	if err != nil {
		utils.ErrorLogger.Printf("Tier sweep: failed to list customers for business %d: %v", business.ID, err)
		return
	}

	for _, customerID := range customerIDs {
		if err := s.RecalculateCustomerTier(business.ID, customerID); err != nil {
			utils.ErrorLogger.Printf("Tier sweep: recalculation failed for customer %d: %v", customerID, err)
		}
	}
	utils.InfoLogger.Printf("Tier sweep: reviewed %d customer(s) for business %d", len(customerIDs), business.ID)
}

// sweepAfterInactivity mencabut tier pelanggan yang aktivitas
// terakhirnya lebih tua dari InactivityPeriodMonths. Pelanggan tanpa
// last_activity_at dilewati karena inaktivitasnya tidak bisa dinilai.
func (s *TierService) sweepAfterInactivity(business *models.Business) {
	if business.InactivityPeriodMonths == nil || *business.InactivityPeriodMonths <= 0 {
		utils.ErrorLogger.Printf("Tier sweep: business %d uses AFTER_INACTIVITY without inactivity period", business.ID)
		return
	}
	cutoff := time.Now().AddDate(0, -*business.InactivityPeriodMonths, 0)

	result := s.db.Model(&models.Customer{}).
		Where("business_id = ? AND current_tier_id IS NOT NULL", business.ID).
		Where("last_activity_at IS NOT NULL AND last_activity_at < ?", cutoff).
		Updates(map[string]interface{}{
			"current_tier_id":  nil,
			"tier_achieved_at": nil,
		})
	if result.Error != nil {
		utils.ErrorLogger.Printf("Tier sweep: inactivity downgrade failed for business %d: %v", business.ID, result.Error)
		return
	}
	if result.RowsAffected > 0 {
		utils.InfoLogger.Printf("Tier sweep: removed tier from %d inactive customer(s) of business %d",
			result.RowsAffected, business.ID)
	}
}

func equalTierID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func tierIDString(id *uint) string {
	if id == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *id)
}
