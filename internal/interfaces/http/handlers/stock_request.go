// internal/interfaces/http/handlers/stock_request.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/retailops-backend/internal/config"
	"github.com/your-org/retailops-backend/internal/domain/stockrequest"
	"github.com/your-org/retailops-backend/internal/interfaces/http/middleware"
	"github.com/your-org/retailops-backend/internal/pkg/lock"
	"gorm.io/gorm"
)

// StockRequestHandler handles stock request endpoints
type StockRequestHandler struct {
	stockRequestService *stockrequest.Service
	config              *config.Config
}

// NewStockRequestHandler creates a new stock request handler
func NewStockRequestHandler(db *gorm.DB, cfg *config.Config, locker lock.Locker) *StockRequestHandler {
	return &StockRequestHandler{
		stockRequestService: stockrequest.NewService(db, cfg, locker),
		config:              cfg,
	}
}

// Create handles POST /stock-requests
func (h *StockRequestHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req stockrequest.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	request, err := h.stockRequestService.Create(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Stock request created successfully",
		"data":    request,
	})
}

// List handles GET /stock-requests
func (h *StockRequestHandler) List(c *gin.Context) {
	var req stockrequest.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	requests, total, err := h.stockRequestService.List(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, paginated(requests, req.Page, req.Limit, total))
}

// Get handles GET /stock-requests/:id
func (h *StockRequestHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	request, err := h.stockRequestService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": request,
	})
}

// Fulfill handles POST /stock-requests/:id/fulfill
func (h *StockRequestHandler) Fulfill(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req stockrequest.FulfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	request, err := h.stockRequestService.Fulfill(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock request fulfilled successfully",
		"data":    request,
	})
}

// Cancel handles POST /stock-requests/:id/cancel
func (h *StockRequestHandler) Cancel(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	request, err := h.stockRequestService.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock request cancelled successfully",
		"data":    request,
	})
}
