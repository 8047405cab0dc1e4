// internal/router/router.go
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/noodl/inventory/internal/config"
	"github.com/noodl/inventory/internal/handlers"
	"github.com/noodl/inventory/internal/middleware"
	"github.com/noodl/inventory/internal/services"
)

const version = "1.0.0"

// Services is the wired service graph behind the HTTP surface.
type Services struct {
	Metrics   *services.Metrics
	Catalog   *services.CatalogService
	Purchases *services.PurchaseService
	Thaws     *services.ThawService
	Waste     *services.WasteService
	Alerts    *services.AlertService
	Dashboard *services.DashboardService
	Storage   *services.StorageService
	Reports   *services.ReportService
}

func NewServices(db *gorm.DB, cfg *config.Config, storage *services.StorageService, now services.Clock) *Services {
	metrics := services.NewMetrics()
	policy := services.AlertPolicy{
		WindowDays:           cfg.Alerts.WindowDays,
		ExpiredThresholdDays: cfg.Alerts.ExpiredThresholdDays,
	}

	catalog := services.NewCatalogService(db)
	purchases := services.NewPurchaseService(db, catalog, metrics)
	thaws := services.NewThawService(db, purchases, metrics, now)
	waste := services.NewWasteService(db, catalog, purchases, thaws, metrics, now)
	alerts := services.NewAlertService(catalog, purchases, thaws, policy, metrics, now)

	return &Services{
		Metrics:   metrics,
		Catalog:   catalog,
		Purchases: purchases,
		Thaws:     thaws,
		Waste:     waste,
		Alerts:    alerts,
		Dashboard: services.NewDashboardService(catalog, purchases, waste, alerts, now),
		Storage:   storage,
		Reports:   services.NewReportService(alerts, storage, now),
	}
}

func Initialize(ctx context.Context, db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	storageService, err := services.NewStorageService(cfg.AWS)
	if err != nil {
		return nil, err
	}

	svc := NewServices(db, cfg, storageService, time.Now)
	return Setup(ctx, svc, cfg), nil
}

// Setup mounts the routes. ctx bounds the rate limiter's cleanup loop.
func Setup(ctx context.Context, svc *Services, cfg *config.Config) *gin.Engine {
	// Initialize handlers
	productHandler := handlers.NewProductHandler(svc.Catalog)
	purchaseHandler := handlers.NewPurchaseHandler(svc.Purchases)
	thawHandler := handlers.NewThawHandler(svc.Thaws)
	wasteHandler := handlers.NewWasteHandler(svc.Waste)
	alertHandler := handlers.NewAlertHandler(svc.Alerts, svc.Dashboard)
	reportHandler := handlers.NewReportHandler(svc.Reports)

	limiter := middleware.NewRateLimiterFromConfig(cfg.RateLimit)
	go limiter.Run(ctx)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(svc.Metrics))
	r.Use(middleware.CORS(cfg.Frontend))
	r.Use(middleware.I18nMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(svc.Metrics.Registry, promhttp.HandlerOpts{})))

	// API v1 routes
	v1 := r.Group("/v1")
	v1.Use(limiter.Middleware())
	{
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.POST("", productHandler.CreateProduct)
			products.GET("/:id", productHandler.GetProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
		}

		purchases := v1.Group("/purchases")
		{
			purchases.GET("", purchaseHandler.GetPurchases)
			purchases.POST("", purchaseHandler.CreatePurchase)
			purchases.GET("/:id", purchaseHandler.GetPurchase)
			purchases.PUT("/:id", purchaseHandler.UpdatePurchase)
		}

		thawed := v1.Group("/thawed")
		{
			thawed.GET("", thawHandler.GetThawedBatches)
			thawed.POST("", thawHandler.ThawPortions)
			thawed.GET("/:id", thawHandler.GetThawedBatch)
		}

		waste := v1.Group("/waste")
		{
			waste.GET("", wasteHandler.GetWasteEntries)
			waste.POST("", wasteHandler.RecordWaste)
		}

		v1.GET("/alerts", alertHandler.GetAlerts)
		v1.GET("/dashboard", alertHandler.GetDashboard)

		reports := v1.Group("/reports")
		{
			reports.GET("/inventory", reportHandler.DownloadInventory)
			reports.POST("/inventory/archive", reportHandler.ArchiveInventory)
		}
	}

	return r
}
