package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
	"github.com/ordelo-app/ordelo/utils"
)

// LoyaltyService memberi points setelah order lunas. Semua mutasi saldo
// lewat PointsLedger supaya riwayat di ActivityLog selalu lengkap.
type LoyaltyService struct {
	db     *gorm.DB
	ledger *PointsLedger
}

func NewLoyaltyService(db *gorm.DB) *LoyaltyService {
	return &LoyaltyService{db: db, ledger: NewPointsLedger()}
}

// AwardPointsForOrder menghitung dan mengkredit points untuk order yang
// baru lunas: FinalAmount x PointsPerEuro x multiplier tier, dibulatkan
// ke bawah. Bila hasilnya nol, akrual adalah no-op total: baris customer
// tidak disentuh sama sekali.
func (s *LoyaltyService) AwardPointsForOrder(tx *gorm.DB, order *models.Order) error {
	if order.CustomerID == nil {
		return nil
	}

	var business models.Business
	if err := tx.First(&business, order.BusinessID).Error; err != nil {
		return err
	}
	if !business.IsLoyaltyActive {
		return nil
	}

	var customer models.Customer
	err := tx.Preload("CurrentTier.Benefits", "is_active = ?", true).
		First(&customer, *order.CustomerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w (id=%d)", ErrCustomerNotFound, *order.CustomerID)
		}
		return err
	}

	multiplier := tierMultiplier(customer.CurrentTier)
	points := order.FinalAmount.Mul(business.PointsPerEuro).Mul(multiplier).IntPart()
	if points <= 0 {
		return nil
	}

	now := time.Now()
	aggregates := map[string]interface{}{
		"total_spend":      gorm.Expr("total_spend + ?", order.FinalAmount),
		"total_visits":     gorm.Expr("total_visits + ?", 1),
		"last_activity_at": now,
	}
	if err := tx.Model(&customer).Updates(aggregates).Error; err != nil {
		return err
	}

	description := fmt.Sprintf("Points earned on order #%s", order.OrderNumber)
	if err := s.ledger.Credit(tx, &customer, int(points), models.ActivityPointsEarnedOrder, description, &order.ID); err != nil {
		return err
	}

	utils.InfoLogger.Printf("Awarded %d points to customer %d for order %s (multiplier %s)",
		points, customer.ID, order.OrderNumber, multiplier.String())
	return nil
}

// tierMultiplier membaca benefit POINTS_MULTIPLIER dari tier aktif
// pelanggan; tanpa tier atau benefit hasilnya 1.
func tierMultiplier(tier *models.Tier) decimal.Decimal {
	if tier == nil || !tier.IsActive {
		return decimal.NewFromInt(1)
	}
	for _, benefit := range tier.Benefits {
		if benefit.Type != models.TierBenefitPointsMultiplier || !benefit.IsActive {
			continue
		}
		value, err := decimal.NewFromString(benefit.Value)
		if err != nil || value.LessThanOrEqual(decimal.Zero) {
			utils.ErrorLogger.Printf("Tier %d has invalid points multiplier '%s', using 1", tier.ID, benefit.Value)
			return decimal.NewFromInt(1)
		}
		return value
	}
	return decimal.NewFromInt(1)
}
