package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/controllers"
	"github.com/ordelo-app/ordelo/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())

	// Rate limiter global; limiter per-group menumpuk di atasnya.
	globalLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(globalLimiter.RateLimit())

	userController := controllers.NewUserController(db)
	orderController := controllers.NewOrderController(db)
	waiterController := controllers.NewWaiterController(db)
	tableController := controllers.NewTableController(db)
	customerController := controllers.NewCustomerController(db)
	menuController := controllers.NewMenuController(db)

	// Rate limiter umum untuk endpoint publik
	publicLimiter := middlewares.NewRateLimiter(60, 60)

	// Endpoint publik per tenant, dipakai klien dari QR code meja
	public := r.Group("/api/v1/public/:business_slug")
	public.Use(publicLimiter.RateLimit())
	{
		public.GET("/menu", menuController.GetPublicMenu)
		public.POST("/orders", orderController.CreateOrder)
		public.POST("/orders/:order_id/items", orderController.AddItemsToOrder)
		public.GET("/orders/:order_id/status", orderController.GetOrderStatus)
		public.POST("/orders/:order_id/request-bill", orderController.RequestBill)
	}

	// Auth
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middlewares.NewStrictRateLimiter(), userController.Login)
	}

	// Endpoint staff, butuh JWT
	staff := r.Group("/api/v1/staff")
	staff.Use(middlewares.AuthMiddleware())
	{
		staff.GET("/profile", userController.GetProfile)

		staff.GET("/orders", orderController.GetOrders)
		staff.POST("/orders/:order_id/request-bill", orderController.RequestBillByStaff)
		staff.POST("/orders/:order_id/mark-paid", orderController.MarkOrderAsPaid)

		staff.GET("/order-items/ready", waiterController.GetReadyItems)
		staff.PATCH("/order-items/:item_id/status", middlewares.RequireRoles("waiter", "kitchen"), waiterController.UpdateItemStatus)
		staff.POST("/order-items/:item_id/serve", middlewares.RequireRoles("waiter"), waiterController.MarkItemServed)

		staff.GET("/customers/:customer_id", customerController.GetCustomer)
		staff.GET("/customers/:customer_id/activity", customerController.GetCustomerActivity)
		staff.GET("/tiers", customerController.GetTiers)

		// Hanya admin
		admin := staff.Group("")
		admin.Use(middlewares.RequireRoles("admin"))
		{
			admin.POST("/register", userController.Register)
			admin.POST("/customers/:customer_id/recalculate-tier", customerController.RecalculateTier)

			admin.POST("/tables", tableController.CreateTable)
			admin.GET("/tables", tableController.GetAllTables)
			admin.PATCH("/tables/:table_id/status", tableController.UpdateTableStatus)
			admin.DELETE("/tables/:table_id", tableController.DeleteTable)
		}
	}

	return r
}
