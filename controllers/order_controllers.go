package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/services"
	"github.com/ordelo-app/ordelo/utils"
)

type OrderController struct {
	DB           *gorm.DB
	creation     *services.OrderCreationService
	modification *services.OrderModificationService
	payment      *services.OrderPaymentService
	status       *services.OrderStatusService
	waiter       *services.WaiterService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:           db,
		creation:     services.NewOrderCreationService(db),
		modification: services.NewOrderModificationService(db),
		payment:      services.NewOrderPaymentService(db),
		status:       services.NewOrderStatusService(db),
		waiter:       services.NewWaiterService(db),
	}
}

// CreateOrder -> endpoint publik pembuatan order dari menu digital
func (oc *OrderController) CreateOrder(c *gin.Context) {
	businessSlug := c.Param("business_slug")

	var payload services.CreateOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.creation.CreateOrder(businessSlug, payload, nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

// AddItemsToOrder -> endpoint publik menambah item ke order berjalan
func (oc *OrderController) AddItemsToOrder(c *gin.Context) {
	businessSlug := c.Param("business_slug")
	orderID, ok := parseUintParam(c, "order_id")
	if !ok {
		return
	}

	var payload services.AddItemsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.modification.AddItemsToOrder(businessSlug, orderID, payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Items added to order", order)
}

// GetOrderStatus -> status order untuk klien, tanpa auth
func (oc *OrderController) GetOrderStatus(c *gin.Context) {
	businessSlug := c.Param("business_slug")
	orderID, ok := parseUintParam(c, "order_id")
	if !ok {
		return
	}

	status, err := oc.status.GetPublicOrderStatus(businessSlug, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status", status)
}

// RequestBill -> klien meminta tagihan
func (oc *OrderController) RequestBill(c *gin.Context) {
	businessSlug := c.Param("business_slug")
	orderID, ok := parseUintParam(c, "order_id")
	if !ok {
		return
	}

	var body struct {
		PaymentPreference string `json:"payment_preference"`
	}
	// body opsional
	_ = c.ShouldBindJSON(&body)

	order, err := oc.payment.RequestBill(businessSlug, orderID, body.PaymentPreference)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bill requested", order)
}

// GetOrders -> daftar order milik tenant staff, filter status opsional
func (oc *OrderController) GetOrders(c *gin.Context) {
	businessID, ok := contextUint(c, "businessID")
	if !ok {
		return
	}

	var statuses []string
	if raw := c.Query("status"); raw != "" {
		statuses = strings.Split(raw, ",")
	}

	orders, err := oc.waiter.GetOrdersForStaff(businessID, statuses)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// RequestBillByStaff -> staff membuka tagihan atas nama meja
func (oc *OrderController) RequestBillByStaff(c *gin.Context) {
	businessID, ok := contextUint(c, "businessID")
	if !ok {
		return
	}
	orderID, ok := parseUintParam(c, "order_id")
	if !ok {
		return
	}

	var body struct {
		PaymentPreference string `json:"payment_preference"`
	}
	// body opsional
	_ = c.ShouldBindJSON(&body)

	order, err := oc.payment.RequestBillByStaff(businessID, orderID, body.PaymentPreference)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bill requested", order)
}

// MarkOrderAsPaid -> kasir menandai order lunas
func (oc *OrderController) MarkOrderAsPaid(c *gin.Context) {
	businessID, ok := contextUint(c, "businessID")
	if !ok {
		return
	}
	userID, ok := contextUint(c, "userID")
	if !ok {
		return
	}
	orderID, ok := parseUintParam(c, "order_id")
	if !ok {
		return
	}

	var body struct {
		PaymentMethod string `json:"payment_method"`
	}
	_ = c.ShouldBindJSON(&body)

	order, err := oc.payment.MarkOrderAsPaid(businessID, userID, orderID, body.PaymentMethod)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order marked as paid", order)
}
