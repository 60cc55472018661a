package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/papagsgrill/pos-app/config"
	"github.com/papagsgrill/pos-app/controllers"
	"github.com/papagsgrill/pos-app/feed"
	"github.com/papagsgrill/pos-app/middlewares"
)

// SetupRouter wires the HTTP surface. The hub is injected so main and the
// order monitor share the same one.
func SetupRouter(db *gorm.DB, hub *feed.Hub, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	menuCtrl := controllers.NewMenuController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)
	if cfg != nil && cfg.SnapshotLimit > 0 {
		orderCtrl.SnapshotLimit = cfg.SnapshotLimit
	}
	userCtrl := controllers.NewUserController(db)
	feedCtrl := controllers.NewFeedController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES (customer)
	// ----------------------------------------------------------------

	// Catalog is read-only and cacheable for offline fallback.
	r.GET("/menu", menuCtrl.GetCatalog)
	r.GET("/menu/by-category", menuCtrl.GetMenusByCategory)

	// Cart and checkout are writes: never served from any cache.
	cartRoutes := r.Group("/cart")
	cartRoutes.Use(middlewares.NoStore())
	{
		cartRoutes.GET("", cartCtrl.GetCart)
		cartRoutes.POST("/items", cartCtrl.AddItem)
		cartRoutes.PATCH("/items", cartCtrl.ChangeQuantity)
		cartRoutes.DELETE("/items", cartCtrl.RemoveItem)
		cartRoutes.DELETE("", cartCtrl.ClearCart)
	}

	orderRoutes := r.Group("/orders")
	orderRoutes.Use(middlewares.NoStore())
	{
		orderRoutes.POST("", orderCtrl.Checkout)
		orderRoutes.GET("/:code", orderCtrl.GetOrderByCode)
	}

	// Credential endpoints get the strict limiter.
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      STAFF ROUTES
	// ----------------------------------------------------------------

	// Feed websocket authenticates via query token.
	r.GET("/staff/ws", middlewares.WebSocketAuthMiddleware(), feedCtrl.Handler)

	staff := r.Group("/staff")
	staff.Use(middlewares.AuthMiddleware(), middlewares.NoStore())
	{
		staff.GET("/profile", userCtrl.GetProfile)
		staff.POST("/logout", userCtrl.Logout)

		staff.GET("/orders", middlewares.RequireRole("staff"), orderCtrl.GetRecentOrders)
		staff.PATCH("/orders/:order_id/status", middlewares.RequireRole("staff"), orderCtrl.UpdateOrderStatus)

		staff.POST("/register", middlewares.RequireRole("admin"), userCtrl.Register)
		staff.DELETE("/orders/:order_id", middlewares.RequireRole("admin"), orderCtrl.DeleteOrder)
	}

	return r
}
