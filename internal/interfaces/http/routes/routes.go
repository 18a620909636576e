// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/retailops-backend/internal/cache"
	"github.com/your-org/retailops-backend/internal/config"
	"github.com/your-org/retailops-backend/internal/interfaces/http/handlers"
	"github.com/your-org/retailops-backend/internal/interfaces/http/middleware"
	"github.com/your-org/retailops-backend/internal/pkg/auth"
	"github.com/your-org/retailops-backend/internal/pkg/lock"
	"gorm.io/gorm"
)

// SetupRoutes wires every API route. All routes require authentication;
// mutating routes additionally carry a role guard.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, locker lock.Locker, estimateCache cache.EstimateCache) {
	stockRequestHandler := handlers.NewStockRequestHandler(db, cfg, locker)
	productionHandler := handlers.NewProductionHandler(db, cfg, locker)
	estimateHandler := handlers.NewEstimateHandler(db, cfg, estimateCache)
	salesHandler := handlers.NewSalesHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db, cfg)

	rg.Use(middleware.AuthMiddleware(cfg))

	stockRequests := rg.Group("/stock-requests")
	{
		stockRequests.POST("", middleware.RequireRoles(auth.RoleStoreRep), stockRequestHandler.Create)
		stockRequests.GET("", stockRequestHandler.List)
		stockRequests.GET("/:id", stockRequestHandler.Get)
		stockRequests.POST("/:id/fulfill", middleware.RequireRoles(auth.RoleProductionLead), stockRequestHandler.Fulfill)
		stockRequests.POST("/:id/cancel", middleware.RequireRoles(auth.RoleStoreRep), stockRequestHandler.Cancel)
	}

	productionRecords := rg.Group("/production-records")
	{
		productionRecords.POST("", middleware.RequireRoles(auth.RoleProductionLead), productionHandler.Submit)
		productionRecords.GET("", productionHandler.List)
		productionRecords.GET("/:id", productionHandler.Get)
		productionRecords.POST("/:id/approve", middleware.RequireRoles(auth.RoleProductionLead), productionHandler.Approve)
	}

	rg.GET("/stores/:id/stock-estimate", estimateHandler.GetStoreEstimate)

	salesRecords := rg.Group("/sales-records")
	{
		salesRecords.POST("", middleware.RequireRoles(auth.RoleStoreRep), salesHandler.Record)
		salesRecords.GET("", salesHandler.List)
	}

	catalogGroup := rg.Group("/catalog")
	{
		catalogGroup.GET("/skus", catalogHandler.ListSKUs)
		catalogGroup.GET("/stores", catalogHandler.ListStores)
		catalogGroup.GET("/production-houses", catalogHandler.ListProductionHouses)
	}

	productionHouses := rg.Group("/production-houses")
	{
		productionHouses.GET("/:id/inventory", catalogHandler.GetHouseInventory)
		productionHouses.GET("/:id/movements", catalogHandler.ListHouseMovements)
	}
}
