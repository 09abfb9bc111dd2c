package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dineease/restaurant-backend/controllers"
	"github.com/dineease/restaurant-backend/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// 50 requests per second per IP across the whole API. Must be attached
	// before any route is registered or it never runs.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	bookingCtrl := controllers.NewBookingController(db)
	reviewCtrl := controllers.NewReviewController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
		public.POST("/password/forgot", userCtrl.ForgotPasswordVerify)
		public.POST("/password/reset", userCtrl.SetNewPassword)
	}

	// Browsing needs no login
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/foods", menuCtrl.GetAllFoods)
	r.GET("/foods/:food_id", menuCtrl.GetFoodByID)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)
	r.GET("/tables/:table_id/reviews", reviewCtrl.GetTableReviews)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)

		// CART
		auth.GET("/cart", cartCtrl.ViewCart)
		auth.POST("/cart/items", cartCtrl.AddToCart)
		auth.PATCH("/cart/items/:item_id", cartCtrl.UpdateCartItem)
		auth.DELETE("/cart/items/:item_id", cartCtrl.RemoveCartItem)

		// BOOKINGS
		auth.POST("/bookings", bookingCtrl.CreateBooking)
		auth.GET("/bookings", bookingCtrl.GetMyBookings)
		auth.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
		auth.DELETE("/bookings/:booking_id", bookingCtrl.CancelBooking)

		// REVIEWS
		auth.POST("/tables/:table_id/reviews", reviewCtrl.SubmitReview)

		// ORDERS
		auth.POST("/orders/checkout", orderCtrl.Checkout)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.POST("/orders/:order_id/seen", orderCtrl.MarkOrderSeen)

		// NOTIFICATIONS
		auth.GET("/notifications", notificationCtrl.GetMyNotifications)
		auth.GET("/notifications/unread-count", notificationCtrl.GetUnreadCount)
		auth.POST("/notifications/:notif_id/read", notificationCtrl.MarkNotificationRead)
	}

	// ----------------------------------------------------------------
	//                      STAFF ROUTES
	// ----------------------------------------------------------------
	staff := r.Group("/staff")
	staff.Use(middlewares.AuthMiddleware(), middlewares.StaffOnly())
	{
		// TABLES
		staff.GET("/tables", tableCtrl.GetAllTablesAdmin)
		staff.POST("/tables", tableCtrl.CreateTable)
		staff.PATCH("/tables/:table_id", tableCtrl.UpdateTable)

		// CATALOG
		staff.POST("/categories", categoryCtrl.CreateCategory)
		staff.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		staff.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)
		staff.POST("/foods", menuCtrl.CreateFood)
		staff.PATCH("/foods/:food_id", menuCtrl.UpdateFood)
		staff.DELETE("/foods/:food_id", menuCtrl.DeleteFood)

		// ORDERS
		staff.GET("/orders", orderCtrl.GetAllOrders)
		staff.GET("/orders/stats", orderCtrl.GetOrderStats)
		staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	}

	return r
}
