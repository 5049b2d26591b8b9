package router

import (
	"github.com/bramasto/tablepos/controllers"
	"github.com/bramasto/tablepos/events"
	"github.com/bramasto/tablepos/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires every route. The API-wide limiter must be attached here,
// before routes register, or Gin never folds it into their handler chains.
func SetupRouter(db *gorm.DB, apiLimiter *middlewares.RateLimiter) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(apiLimiter.RateLimit())

	userCtrl := controllers.NewUserController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	itemCtrl := controllers.NewItemController(db)
	tableCtrl := controllers.NewTableController(db)
	sessionCtrl := controllers.NewSessionController(db)
	orderCtrl := controllers.NewOrderController(db)
	orderItemCtrl := controllers.NewOrderItemController(db)
	analyticsCtrl := controllers.NewAnalyticsController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "OK"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Reads need no authentication
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/categories/:cat_id", categoryCtrl.GetCategoryByID)

	r.GET("/items", itemCtrl.GetAllItems)
	r.GET("/items/:item_id", itemCtrl.GetItemByID)

	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)

	r.GET("/sessions", sessionCtrl.GetAllSessions)
	r.GET("/sessions/:session_id", sessionCtrl.GetSessionByID)

	r.GET("/orders", orderCtrl.GetAllOrders)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/private", userCtrl.GetPrivateData)
	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/users", middlewares.RequireAdmin(), userCtrl.GetAllUsers)

	// CATEGORIES
	auth.POST("/categories", categoryCtrl.CreateCategory)
	auth.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

	// ITEMS
	auth.POST("/items", itemCtrl.CreateItem)
	auth.PATCH("/items/:item_id", itemCtrl.UpdateItem)
	auth.DELETE("/items/:item_id", itemCtrl.DeleteItem)

	// TABLES
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// SESSIONS
	auth.POST("/sessions", sessionCtrl.StartSession)
	auth.POST("/sessions/:session_id/end", sessionCtrl.EndSession)
	auth.PATCH("/sessions/:session_id", sessionCtrl.UpdateSession)

	// ORDERS
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

	// ORDER ITEMS
	auth.POST("/order-items", orderItemCtrl.AddOrderItem)
	auth.PATCH("/order-items/:item_id", orderItemCtrl.UpdateOrderItemQuantity)
	auth.DELETE("/order-items/:item_id", orderItemCtrl.RemoveOrderItem)

	// ANALYTICS
	auth.GET("/analytics/daily-summary", analyticsCtrl.GetDailySummary)
	auth.GET("/analytics/popular-items", analyticsCtrl.GetPopularItems)

	// Dashboard event feed
	auth.GET("/ws", events.Handler)

	return r
}
