package services

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
	"github.com/ordelo-app/ordelo/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// setupTestDB -> SQLite in-memory per test, semua model dimigrasi.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Table{},
		&models.Customer{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.ModifierGroup{},
		&models.ModifierOption{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemModifier{},
		&models.Tier{},
		&models.TierBenefit{},
		&models.Reward{},
		&models.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedBusiness(t *testing.T, db *gorm.DB, slug string) *models.Business {
	t.Helper()
	business := models.Business{
		Slug:             slug,
		Name:             "Test Resto " + slug,
		IsActive:         true,
		IsOrderingActive: true,
		IsLoyaltyActive:  true,
		PointsPerEuro:    decimal.NewFromInt(1),
	}
	if err := db.Create(&business).Error; err != nil {
		t.Fatalf("failed to seed business: %v", err)
	}
	return &business
}

func seedMenuItem(t *testing.T, db *gorm.DB, businessID uint, name string, price string) *models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		BusinessID:  businessID,
		Name:        name,
		Price:       mustDecimal(t, price),
		IsAvailable: true,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to seed menu item: %v", err)
	}
	return &item
}

func seedModifierGroup(t *testing.T, db *gorm.DB, itemID uint, name, uiType string, min, max int, required bool, options map[string]string) *models.ModifierGroup {
	t.Helper()
	group := models.ModifierGroup{
		MenuItemID:    itemID,
		Name:          name,
		UIType:        uiType,
		MinSelections: min,
		MaxSelections: max,
		IsRequired:    required,
	}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("failed to seed modifier group: %v", err)
	}
	for optName, adjustment := range options {
		option := models.ModifierOption{
			GroupID:         group.ID,
			Name:            optName,
			PriceAdjustment: mustDecimal(t, adjustment),
			IsAvailable:     true,
		}
		if err := db.Create(&option).Error; err != nil {
			t.Fatalf("failed to seed modifier option: %v", err)
		}
		group.Options = append(group.Options, option)
	}
	return &group
}

func seedCustomer(t *testing.T, db *gorm.DB, businessID uint, points int) *models.Customer {
	t.Helper()
	customer := models.Customer{
		BusinessID: businessID,
		Name:       "Test Customer",
		Email:      fmt.Sprintf("customer-%d@test.local", points),
		IsActive:   true,
		Points:     points,
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return &customer
}

func seedTier(t *testing.T, db *gorm.DB, businessID uint, name string, level int, minValue string, multiplier string) *models.Tier {
	t.Helper()
	tier := models.Tier{
		BusinessID: businessID,
		Name:       name,
		Level:      level,
		MinValue:   mustDecimal(t, minValue),
		IsActive:   true,
	}
	if err := db.Create(&tier).Error; err != nil {
		t.Fatalf("failed to seed tier: %v", err)
	}
	if multiplier != "" {
		benefit := models.TierBenefit{
			TierID:   tier.ID,
			Type:     models.TierBenefitPointsMultiplier,
			Value:    multiplier,
			IsActive: true,
		}
		if err := db.Create(&benefit).Error; err != nil {
			t.Fatalf("failed to seed tier benefit: %v", err)
		}
		tier.Benefits = append(tier.Benefits, benefit)
	}
	return &tier
}

func seedTable(t *testing.T, db *gorm.DB, businessID uint, identifier string) *models.Table {
	t.Helper()
	table := models.Table{
		BusinessID: businessID,
		Identifier: identifier,
		Status:     models.TableStatusAvailable,
	}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return &table
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", value, err)
	}
	return d
}
