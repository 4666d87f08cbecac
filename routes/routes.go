package routes

import (
	"urbanserv/configs"
	"urbanserv/controllers"
	"urbanserv/middlewares"
	"urbanserv/pkg/razorpay"
	"urbanserv/repository"
	"urbanserv/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	cartRepo := repository.NewCartRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Gateway client
	gateway := razorpay.New(cfg.RazorpayKeyID, cfg.RazorpayKeySecret,
		cfg.RazorpayWebhookSecret, cfg.RazorpayBaseURL, cfg.GatewayTimeout)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	catalogSvc := services.NewCatalogService(catalogRepo, cfg.CatalogCacheTTL)
	cartSvc := services.NewCartService(db, cartRepo, catalogSvc)
	checkoutSvc := services.NewCheckoutService(db, userRepo, cartRepo, catalogSvc, orderRepo, paymentRepo)
	paymentSvc := services.NewPaymentService(db, orderRepo, paymentRepo, gateway)
	orderSvc := services.NewOrderService(db, orderRepo, paymentRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	catalogCtrl := controllers.NewCatalogController(catalogSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc)
	paymentCtrl := controllers.NewPaymentController(paymentSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	webhookCtrl := controllers.NewWebhookController(paymentSvc)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Catalog (public reads)
	r.GET("/services", catalogCtrl.ListServices)
	r.GET("/menu", catalogCtrl.ListMenu)

	// Webhook: no session; the body signature is the only authentication
	r.POST("/webhooks/razorpay", webhookCtrl.Handle)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)

	// Profile
	profile := r.Group("/profile", auth)
	{
		profile.GET("", authCtrl.Me)
		profile.PATCH("", authCtrl.UpdateMe)
	}

	// Cart
	cart := r.Group("/cart", auth)
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("/items", cartCtrl.Add)
		cart.PATCH("/items/:id", cartCtrl.UpdateQuantity)
		cart.DELETE("/items/:id", cartCtrl.Remove)
		cart.DELETE("", cartCtrl.Clear)
	}

	// Checkout + payment sub-flow
	u := r.Group("/", auth)
	{
		u.POST("/checkout", checkoutCtrl.Checkout)
		u.POST("/payments/intent", paymentCtrl.CreateIntent)
		u.POST("/payments/verify", paymentCtrl.Verify)
	}

	// Orders
	orders := r.Group("/orders", auth)
	{
		orders.GET("", orderCtrl.History)
		orders.GET("/:id", orderCtrl.Detail)
		orders.GET("/:id/payment-status", paymentCtrl.Status)
		orders.POST("/:id/cancel", orderCtrl.Cancel)
	}

	// Admin-style catalog cache invalidation
	r.POST("/catalog/refresh", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"), catalogCtrl.Refresh)
}
