package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
	"github.com/ordelo-app/ordelo/services"
	"github.com/ordelo-app/ordelo/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetPublicMenu -> katalog menu untuk klien: kategori aktif beserta
// item tersedia dan grup modifier-nya
func (mc *MenuController) GetPublicMenu(c *gin.Context) {
	businessSlug := c.Param("business_slug")

	var business models.Business
	if err := mc.DB.Where("slug = ?", businessSlug).First(&business).Error; err != nil {
		respondServiceError(c, services.ErrBusinessNotFound)
		return
	}
	if !business.IsActive || !business.IsOrderingActive {
		respondServiceError(c, services.ErrOrderingDisabled)
		return
	}

	var categories []models.MenuCategory
	err := mc.DB.Where("business_id = ? AND is_active = ?", business.ID, true).
		Preload("Items", "is_available = ?", true).
		Preload("Items.ModifierGroups", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("Items.ModifierGroups.Options", "is_available = ?", true).
		Order("position asc").
		Find(&categories).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu", gin.H{
		"business": gin.H{
			"slug": business.Slug,
			"name": business.Name,
		},
		"categories": categories,
	})
}
