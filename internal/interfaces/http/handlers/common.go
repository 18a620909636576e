// internal/interfaces/http/handlers/common.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/retailops-backend/internal/pkg/apperror"
)

// respondError maps a domain error to its HTTP status. Unclassified
// errors become opaque 500s so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}

// pathID parses a numeric :id path parameter
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(id), true
}

// paginated wraps a list response with pagination metadata
func paginated(data interface{}, page, limit int, total int64) gin.H {
	return gin.H{
		"data": data,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	}
}
