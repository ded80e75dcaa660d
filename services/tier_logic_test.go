package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
)

func seedTierConfig(t *testing.T, db *gorm.DB, business *models.Business, basis, downgradePolicy string) {
	t.Helper()
	require.NoError(t, db.Model(business).Updates(map[string]interface{}{
		"tier_system_enabled":    true,
		"tier_calculation_basis": basis,
		"tier_downgrade_policy":  downgradePolicy,
	}).Error)
	business.TierSystemEnabled = true
	business.TierCalculationBasis = basis
	business.TierDowngradePolicy = downgradePolicy
}

func seedPaidOrder(t *testing.T, db *gorm.DB, businessID, customerID uint, finalAmount string, paidAt time.Time) {
	t.Helper()
	order := models.Order{
		BusinessID:  businessID,
		OrderNumber: "O-test",
		Status:      models.OrderStatusPaid,
		TotalAmount: mustDecimal(t, finalAmount),
		FinalAmount: mustDecimal(t, finalAmount),
		CustomerID:  &customerID,
		PaidAt:      &paidAt,
	}
	require.NoError(t, db.Create(&order).Error)
}

func TestDetermineTierPicksHighestSatisfiedLevel(t *testing.T) {
	tiers := []models.Tier{
		{ID: 3, Level: 3, MinValue: mustDecimal(t, "500"), IsActive: true},
		{ID: 2, Level: 2, MinValue: mustDecimal(t, "100"), IsActive: true},
		{ID: 1, Level: 1, MinValue: mustDecimal(t, "0"), IsActive: true},
	}

	got := determineTier(mustDecimal(t, "150"), tiers)
	require.NotNil(t, got)
	assert.Equal(t, uint(2), *got)

	// Deterministik: input sama selalu menghasilkan tier sama.
	again := determineTier(mustDecimal(t, "150"), tiers)
	require.NotNil(t, again)
	assert.Equal(t, *got, *again)

	top := determineTier(mustDecimal(t, "9999"), tiers)
	require.NotNil(t, top)
	assert.Equal(t, uint(3), *top)
}

func TestDetermineTierSkipsInactiveAndUnreached(t *testing.T) {
	tiers := []models.Tier{
		{ID: 2, Level: 2, MinValue: mustDecimal(t, "100"), IsActive: false},
		{ID: 1, Level: 1, MinValue: mustDecimal(t, "50"), IsActive: true},
	}

	got := determineTier(mustDecimal(t, "200"), tiers)
	require.NotNil(t, got)
	assert.Equal(t, uint(1), *got)

	assert.Nil(t, determineTier(mustDecimal(t, "10"), tiers))
}

func TestRecalculateCustomerTierPromotesOnSpend(t *testing.T) {
	db := setupTestDB(t)
	business := seedBusiness(t, db, "resto-tier-spend")
	seedTierConfig(t, db, business, models.TierBasisSpend, models.DowngradeNever)
	bronze := seedTier(t, db, business.ID, "Bronze", 1, "0", "")
	silver := seedTier(t, db, business.ID, "Silver", 2, "100", "1.5")
	customer := seedCustomer(t, db, business.ID, 0)

	seedPaidOrder(t, db, business.ID, customer.ID, "120.00", time.Now())

	svc := NewTierService(db)
	require.NoError(t, svc.RecalculateCustomerTier(business.ID, customer.ID))

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, customer.ID).Error)
	require.NotNil(t, reloaded.CurrentTierID)
	assert.Equal(t, silver.ID, *reloaded.CurrentTierID)
	assert.NotNil(t, reloaded.TierAchievedAt)
	firstAchievedAt := *reloaded.TierAchievedAt

	// Rerunning with the same metric must not touch the stored tier.
	require.NoError(t, svc.RecalculateCustomerTier(business.ID, customer.ID))
	require.NoError(t, db.First(&reloaded, customer.ID).Error)
	assert.Equal(t, silver.ID, *reloaded.CurrentTierID)
	assert.True(t, reloaded.TierAchievedAt.Equal(firstAchievedAt))
	_ = bronze
}

func TestRecalculateCustomerTierDemotesRegardlessOfPolicy(t *testing.T) {
	db := setupTestDB(t)
	business := seedBusiness(t, db, "resto-tier-demote")
	seedTierConfig(t, db, business, models.TierBasisSpend, models.DowngradeNever)
	bronze := seedTier(t, db, business.ID, "Bronze", 1, "0", "")
	gold := seedTier(t, db, business.ID, "Gold", 3, "1000", "")
	customer := seedCustomer(t, db, business.ID, 0)
	require.NoError(t, db.Model(customer).Update("current_tier_id", gold.ID).Error)

	// Spend jauh di bawah threshold Gold; recompute per pelanggan tidak
	// memperhatikan kebijakan downgrade, yang NEVER hanya menahan sweep.
	seedPaidOrder(t, db, business.ID, customer.ID, "10.00", time.Now())

	svc := NewTierService(db)
	require.NoError(t, svc.RecalculateCustomerTier(business.ID, customer.ID))

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, customer.ID).Error)
	require.NotNil(t, reloaded.CurrentTierID)
	assert.Equal(t, bronze.ID, *reloaded.CurrentTierID)
	_ = gold
}

func TestRecalculateCustomerTierVisitsBasisWithWindow(t *testing.T) {
	db := setupTestDB(t)
	business := seedBusiness(t, db, "resto-tier-visits")
	seedTierConfig(t, db, business, models.TierBasisVisits, models.DowngradePeriodicReview)
	months := 6
	require.NoError(t, db.Model(business).Update("tier_period_months", months).Error)
	regular := seedTier(t, db, business.ID, "Regular", 1, "3", "")
	customer := seedCustomer(t, db, business.ID, 0)

	// Dua kunjungan lama di luar window, tiga di dalam.
	old := time.Now().AddDate(-1, 0, 0)
	seedPaidOrder(t, db, business.ID, customer.ID, "5.00", old)
	seedPaidOrder(t, db, business.ID, customer.ID, "5.00", old)
	for i := 0; i < 3; i++ {
		seedPaidOrder(t, db, business.ID, customer.ID, "5.00", time.Now())
	}

	svc := NewTierService(db)
	require.NoError(t, svc.RecalculateCustomerTier(business.ID, customer.ID))

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, customer.ID).Error)
	require.NotNil(t, reloaded.CurrentTierID)
	assert.Equal(t, regular.ID, *reloaded.CurrentTierID)
}

func TestRecalculateCustomerTierPointsEarnedBasis(t *testing.T) {
	db := setupTestDB(t)
	business := seedBusiness(t, db, "resto-tier-points")
	seedTierConfig(t, db, business, models.TierBasisPointsEarned, models.DowngradeNever)
	vip := seedTier(t, db, business.ID, "VIP", 1, "100", "")
	customer := seedCustomer(t, db, business.ID, 0)

	earned := 150
	redeemed := -80
	require.NoError(t, db.Create(&models.ActivityLog{
		BusinessID: business.ID, CustomerID: customer.ID,
		Type: models.ActivityPointsEarnedOrder, PointsChanged: &earned, Description: "earned",
	}).Error)
	// Redeem tidak mengurangi metrik earn.
	require.NoError(t, db.Create(&models.ActivityLog{
		BusinessID: business.ID, CustomerID: customer.ID,
		Type: models.ActivityPointsRedeemed, PointsChanged: &redeemed, Description: "redeemed",
	}).Error)

	svc := NewTierService(db)
	require.NoError(t, svc.RecalculateCustomerTier(business.ID, customer.ID))

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, customer.ID).Error)
	require.NotNil(t, reloaded.CurrentTierID)
	assert.Equal(t, vip.ID, *reloaded.CurrentTierID)
}

func TestSweepPeriodicReviewDowngrades(t *testing.T) {
	db := setupTestDB(t)
	business := seedBusiness(t, db, "resto-sweep-review")
	seedTierConfig(t, db, business, models.TierBasisSpend, models.DowngradePeriodicReview)
	months := 3
	require.NoError(t, db.Model(business).Update("tier_period_months", months).Error)
	bronze := seedTier(t, db, business.ID, "Bronze", 1, "0", "")
	gold := seedTier(t, db, business.ID, "Gold", 2, "500", "")
	customer := seedCustomer(t, db, business.ID, 0)
	require.NoError(t, db.Model(customer).Update("current_tier_id", gold.ID).Error)

	// Spend besar tapi sudah keluar window.
	seedPaidOrder(t, db, business.ID, customer.ID, "600.00", time.Now().AddDate(-1, 0, 0))

	svc := NewTierService(db)
	svc.ProcessTierSweep()

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, customer.ID).Error)
	require.NotNil(t, reloaded.CurrentTierID)
	assert.Equal(t, bronze.ID, *reloaded.CurrentTierID)
}

func TestSweepAfterInactivityRemovesTier(t *testing.T) {
	db := setupTestDB(t)
	business := seedBusiness(t, db, "resto-sweep-inactive")
	seedTierConfig(t, db, business, models.TierBasisSpend, models.DowngradeAfterInactivity)
	months := 2
	require.NoError(t, db.Model(business).Update("inactivity_period_months", months).Error)
	gold := seedTier(t, db, business.ID, "Gold", 2, "0", "")

	stale := seedCustomer(t, db, business.ID, 0)
	lastSeen := time.Now().AddDate(0, -6, 0)
	require.NoError(t, db.Model(stale).Updates(map[string]interface{}{
		"current_tier_id":  gold.ID,
		"last_activity_at": lastSeen,
	}).Error)

	fresh := models.Customer{BusinessID: business.ID, Name: "Fresh", Email: "fresh@test.local", IsActive: true}
	require.NoError(t, db.Create(&fresh).Error)
	now := time.Now()
	require.NoError(t, db.Model(&fresh).Updates(map[string]interface{}{
		"current_tier_id":  gold.ID,
		"last_activity_at": now,
	}).Error)

	// Tanpa last_activity_at inaktivitas tidak bisa dinilai; tier dibiarkan.
	neverSeen := models.Customer{BusinessID: business.ID, Name: "Never Seen", Email: "neverseen@test.local", IsActive: true}
	require.NoError(t, db.Create(&neverSeen).Error)
	require.NoError(t, db.Model(&neverSeen).Update("current_tier_id", gold.ID).Error)

	svc := NewTierService(db)
	svc.ProcessTierSweep()

	var reloadedStale, reloadedFresh, reloadedNeverSeen models.Customer
	require.NoError(t, db.First(&reloadedStale, stale.ID).Error)
	require.NoError(t, db.First(&reloadedFresh, fresh.ID).Error)
	require.NoError(t, db.First(&reloadedNeverSeen, neverSeen.ID).Error)
	assert.Nil(t, reloadedStale.CurrentTierID)
	require.NotNil(t, reloadedFresh.CurrentTierID)
	assert.Equal(t, gold.ID, *reloadedFresh.CurrentTierID)
	require.NotNil(t, reloadedNeverSeen.CurrentTierID)
	assert.Equal(t, gold.ID, *reloadedNeverSeen.CurrentTierID)
}
