package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
	"github.com/ordelo-app/ordelo/services"
	"github.com/ordelo-app/ordelo/utils"
)

type CustomerController struct {
	DB    *gorm.DB
	tiers *services.TierService
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db, tiers: services.NewTierService(db)}
}

// GetCustomer -> ringkasan loyalty seorang pelanggan untuk staff
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	businessID, ok := contextUint(c, "businessID")
	if !ok {
		return
	}
	customerID, ok := parseUintParam(c, "customer_id")
	if !ok {
		return
	}

	var customer models.Customer
	err := cc.DB.Preload("CurrentTier.Benefits").
		Where("id = ? AND business_id = ?", customerID, businessID).
		First(&customer).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer data", customer)
}

// GetCustomerActivity -> riwayat points pelanggan, terbaru dulu
func (cc *CustomerController) GetCustomerActivity(c *gin.Context) {
	businessID, ok := contextUint(c, "businessID")
	if !ok {
		return
	}
	customerID, ok := parseUintParam(c, "customer_id")
	if !ok {
		return
	}

	var logs []models.ActivityLog
	err := cc.DB.Where("business_id = ? AND customer_id = ?", businessID, customerID).
		Order("created_at desc").
		Limit(100).
		Find(&logs).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer activity", logs)
}

// RecalculateTier -> trigger manual perhitungan tier oleh admin
func (cc *CustomerController) RecalculateTier(c *gin.Context) {
	businessID, ok := contextUint(c, "businessID")
	if !ok {
		return
	}
	customerID, ok := parseUintParam(c, "customer_id")
	if !ok {
		return
	}

	if err := cc.tiers.RecalculateCustomerTier(businessID, customerID); err != nil {
		respondServiceError(c, err)
		return
	}

	var customer models.Customer
	if err := cc.DB.Preload("CurrentTier").First(&customer, customerID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Tier recalculated", gin.H{
		"customer_id":      customer.ID,
		"current_tier_id":  customer.CurrentTierID,
		"tier_achieved_at": customer.TierAchievedAt,
	})
}

// GetTiers -> daftar tier aktif tenant, level menurun
func (cc *CustomerController) GetTiers(c *gin.Context) {
	businessID, ok := contextUint(c, "businessID")
	if !ok {
		return
	}

	var tiers []models.Tier
	err := cc.DB.Preload("Benefits").
		Where("business_id = ? AND is_active = ?", businessID, true).
		Order("level desc").
		Find(&tiers).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of tiers", tiers)
}
