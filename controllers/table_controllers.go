package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/models"
	"github.com/ordelo-app/ordelo/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> menambahkan meja baru. Identifier kosong diisi UUID
// supaya bisa langsung dipakai di QR code meja.
func (tc *TableController) CreateTable(c *gin.Context) {
	businessID, ok := contextUint(c, "businessID")
	if !ok {
		return
	}

	var req struct {
		Identifier string `json:"identifier"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		BusinessID: businessID,
		Identifier: req.Identifier,
		Status:     models.TableStatusAvailable,
	}
	if table.Identifier == "" {
		table.Identifier = uuid.NewString()
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %s (business=%d)", table.Identifier, businessID)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> seluruh meja milik tenant
func (tc *TableController) GetAllTables(c *gin.Context) {
	businessID, ok := contextUint(c, "businessID")
	if !ok {
		return
	}

	var tables []models.Table
	if err := tc.DB.Where("business_id = ?", businessID).Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// UpdateTableStatus -> update status meja secara manual
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	businessID, ok := contextUint(c, "businessID")
	if !ok {
		return
	}
	tableID, ok := parseUintParam(c, "table_id")
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status" binding:"required,oneof=available occupied pending_payment"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.Where("id = ? AND business_id = ?", tableID, businessID).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.Status = body.Status
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d status changed to %s", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// DeleteTable -> menghapus meja
func (tc *TableController) DeleteTable(c *gin.Context) {
	businessID, ok := contextUint(c, "businessID")
	if !ok {
		return
	}
	tableID, ok := parseUintParam(c, "table_id")
	if !ok {
		return
	}

	var table models.Table
	if err := tc.DB.Where("id = ? AND business_id = ?", tableID, businessID).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"table_id": table.ID})
}
