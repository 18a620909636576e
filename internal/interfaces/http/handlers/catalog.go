// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/retailops-backend/internal/config"
	"github.com/your-org/retailops-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// CatalogHandler handles reference data endpoints
type CatalogHandler struct {
	catalogService *catalog.Service
	config         *config.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(db *gorm.DB, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalog.NewService(db, cfg),
		config:         cfg,
	}
}

// ListSKUs handles GET /catalog/skus
func (h *CatalogHandler) ListSKUs(c *gin.Context) {
	skus, err := h.catalogService.ListSKUs()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": skus,
	})
}

// ListStores handles GET /catalog/stores
func (h *CatalogHandler) ListStores(c *gin.Context) {
	stores, err := h.catalogService.ListStores()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": stores,
	})
}

// ListProductionHouses handles GET /catalog/production-houses
func (h *CatalogHandler) ListProductionHouses(c *gin.Context) {
	houses, err := h.catalogService.ListProductionHouses()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": houses,
	})
}

// GetHouseInventory handles GET /production-houses/:id/inventory
func (h *CatalogHandler) GetHouseInventory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	house, err := h.catalogService.GetProductionHouse(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"production_house_id": house.ID,
			"name":                house.Name,
			"inventory":           house.Inventory,
		},
	})
}

// ListHouseMovements handles GET /production-houses/:id/movements
func (h *CatalogHandler) ListHouseMovements(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	movements, err := h.catalogService.ListMovements(id, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": movements,
	})
}
