// internal/interfaces/http/handlers/production.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/retailops-backend/internal/config"
	"github.com/your-org/retailops-backend/internal/domain/production"
	"github.com/your-org/retailops-backend/internal/interfaces/http/middleware"
	"github.com/your-org/retailops-backend/internal/pkg/lock"
	"gorm.io/gorm"
)

// ProductionHandler handles production record endpoints
type ProductionHandler struct {
	productionService *production.Service
	config            *config.Config
}

// NewProductionHandler creates a new production handler
func NewProductionHandler(db *gorm.DB, cfg *config.Config, locker lock.Locker) *ProductionHandler {
	return &ProductionHandler{
		productionService: production.NewService(db, cfg, locker),
		config:            cfg,
	}
}

// Submit handles POST /production-records
func (h *ProductionHandler) Submit(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req production.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	record, err := h.productionService.Submit(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Production record submitted successfully",
		"data":    record,
	})
}

// List handles GET /production-records
func (h *ProductionHandler) List(c *gin.Context) {
	var req production.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	records, total, err := h.productionService.List(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, paginated(records, req.Page, req.Limit, total))
}

// Get handles GET /production-records/:id
func (h *ProductionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	record, err := h.productionService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": record,
	})
}

// Approve handles POST /production-records/:id/approve
func (h *ProductionHandler) Approve(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	record, err := h.productionService.Approve(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Production record approved successfully",
		"data":    record,
	})
}
