package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/services"
	"github.com/ordelo-app/ordelo/utils"
)

type WaiterController struct {
	DB     *gorm.DB
	waiter *services.WaiterService
}

func NewWaiterController(db *gorm.DB) *WaiterController {
	return &WaiterController{DB: db, waiter: services.NewWaiterService(db)}
}

// GetReadyItems -> item siap saji untuk layar pelayan
func (wc *WaiterController) GetReadyItems(c *gin.Context) {
	businessID, ok := contextUint(c, "businessID")
	if !ok {
		return
	}

	items, err := wc.waiter.GetReadyItems(businessID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ready items", items)
}

// MarkItemServed -> pelayan menyajikan item yang sudah ready
func (wc *WaiterController) MarkItemServed(c *gin.Context) {
	businessID, ok := contextUint(c, "businessID")
	if !ok {
		return
	}
	userID, ok := contextUint(c, "userID")
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "item_id")
	if !ok {
		return
	}

	item, err := wc.waiter.MarkOrderItemServed(businessID, userID, itemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item served", item)
}

// UpdateItemStatus -> jalur dapur: pending_kds -> preparing -> ready
func (wc *WaiterController) UpdateItemStatus(c *gin.Context) {
	businessID, ok := contextUint(c, "businessID")
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "item_id")
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := wc.waiter.UpdateOrderItemStatus(businessID, itemID, body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item status updated", item)
}
