// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/interfaces/http/handlers"
	"github.com/boffobaby/inventory-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRoutes wires every route group under /api/v1.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, cfg)
	SetupUserRoutes(rg, db, cfg)
	SetupCatalogRoutes(rg, db, cfg)
	SetupCompanyRoutes(rg, db, cfg)
	SetupGoodsRequestRoutes(rg, db, cfg)
	SetupResellerRoutes(rg, db, redisClient, cfg)
	SetupPaymentRoutes(rg, db, cfg)
	SetupLedgerRoutes(rg, db, cfg)
	SetupAdminRoutes(rg, db, redisClient, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.Profile)
			protected.PUT("/change-password", authHandler.ChangePassword)
		}
	}
}

// SetupUserRoutes sets up admin user management routes
func SetupUserRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	userHandler := handlers.NewUserHandler(db, cfg)

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		users.GET("", userHandler.List)
		users.POST("", userHandler.Create)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}
}

// SetupCatalogRoutes sets up product routes
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)

	products := rg.Group("/products")
	products.Use(middleware.AuthMiddleware(cfg))
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)

		admin := products.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("", productHandler.Create)
			admin.PUT("/:id", productHandler.Update)
			admin.DELETE("/:id", productHandler.Delete)
		}
	}
}

// SetupCompanyRoutes sets up company stock routes (admin only)
func SetupCompanyRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	companyHandler := handlers.NewCompanyHandler(db, cfg)
	distributionHandler := handlers.NewDistributionHandler(db, cfg)

	company := rg.Group("/company")
	company.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		company.POST("/stock-purchase", companyHandler.CreateStockPurchase)
		// The batches table reads from the same path it purchases on.
		company.GET("/stock-purchase", companyHandler.ListBatches)
		company.GET("/batches", companyHandler.ListBatches)
		company.GET("/stock", companyHandler.GetStock)

		company.POST("/stock-distributions", distributionHandler.Create)
		company.GET("/stock-distributions", distributionHandler.List)
	}
}

// SetupGoodsRequestRoutes sets up the goods-request workflow routes
func SetupGoodsRequestRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	requestHandler := handlers.NewGoodsRequestHandler(db, cfg)

	requests := rg.Group("/good-requests")
	requests.Use(middleware.AuthMiddleware(cfg))
	{
		requests.GET("", requestHandler.List)
		requests.GET("/:id", requestHandler.Get)
		// PUT is role-dispatched: admin decides, reseller edits the payload.
		requests.PUT("/:id", requestHandler.Update)

		reseller := requests.Group("")
		reseller.Use(middleware.ResellerMiddleware())
		{
			reseller.POST("", requestHandler.Create)
			reseller.DELETE("/:id", requestHandler.Cancel)
		}
	}
}

// SetupResellerRoutes sets up reseller sales, stock and page-data routes
func SetupResellerRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	saleHandler := handlers.NewSaleHandler(db, cfg)
	pageDataHandler := handlers.NewPageDataHandler(db, cfg, redisClient)

	resellers := rg.Group("/resellers")
	resellers.Use(middleware.AuthMiddleware(cfg))
	{
		resellers.GET("", saleHandler.List)
		resellers.GET("/stock", saleHandler.ListStock)

		reseller := resellers.Group("")
		reseller.Use(middleware.ResellerMiddleware())
		{
			reseller.POST("", saleHandler.Record)
			reseller.GET("/stock/form", saleHandler.StockForm)
			reseller.PUT("/stock-threshold/:id", saleHandler.UpdateThreshold)
			reseller.GET("/page-data/:page", pageDataHandler.ResellerPage)
		}
	}
}

// SetupPaymentRoutes sets up payment routes
func SetupPaymentRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	paymentHandler := handlers.NewPaymentHandler(db, cfg)

	payments := rg.Group("/payments")
	payments.Use(middleware.AuthMiddleware(cfg))
	{
		payments.GET("", paymentHandler.List)

		admin := payments.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("", paymentHandler.Record)
		}
	}
}

// SetupLedgerRoutes sets up the stock movement ledger routes (admin only)
func SetupLedgerRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	movementHandler := handlers.NewStockMovementHandler(db, cfg)

	movements := rg.Group("/stock-movements")
	movements.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		movements.GET("", movementHandler.List)
	}
}

// SetupAdminRoutes sets up the admin reseller view and page-data routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	resellerHandler := handlers.NewResellerHandler(db, cfg)
	pageDataHandler := handlers.NewPageDataHandler(db, cfg, redisClient)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.GET("/resellers", resellerHandler.List)
		admin.GET("/resellers/:id", resellerHandler.Get)
		admin.GET("/resellers/:id/statement.pdf", resellerHandler.Statement)

		admin.GET("/page-data/:page", pageDataHandler.AdminPage)
	}
}
