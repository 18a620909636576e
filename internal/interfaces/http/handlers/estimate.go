// internal/interfaces/http/handlers/estimate.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/retailops-backend/internal/cache"
	"github.com/your-org/retailops-backend/internal/config"
	"github.com/your-org/retailops-backend/internal/domain/catalog"
	"github.com/your-org/retailops-backend/internal/domain/sales"
	"github.com/your-org/retailops-backend/internal/domain/stockestimate"
	"gorm.io/gorm"
)

// EstimateHandler handles store stock estimate endpoints
type EstimateHandler struct {
	estimateService *stockestimate.Service
	config          *config.Config
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(db *gorm.DB, cfg *config.Config, estimateCache cache.EstimateCache) *EstimateHandler {
	catalogService := catalog.NewService(db, cfg)
	salesService := sales.NewService(db, cfg)
	return &EstimateHandler{
		estimateService: stockestimate.NewService(db, cfg, catalogService, salesService, estimateCache),
		config:          cfg,
	}
}

// GetStoreEstimate handles GET /stores/:id/stock-estimate
func (h *EstimateHandler) GetStoreEstimate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	snapshot, err := h.estimateService.EstimateStoreStock(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": snapshot,
	})
}
