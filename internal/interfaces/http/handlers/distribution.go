// internal/interfaces/http/handlers/distribution.go
package handlers

import (
	"net/http"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/distribution"
	"github.com/boffobaby/inventory-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DistributionHandler handles stock distribution endpoints
type DistributionHandler struct {
	distributionService *distribution.Service
	config              *config.Config
}

// NewDistributionHandler creates a new distribution handler
func NewDistributionHandler(db *gorm.DB, cfg *config.Config) *DistributionHandler {
	return &DistributionHandler{
		distributionService: distribution.NewService(db, cfg),
		config:              cfg,
	}
}

// Create handles POST /company/stock-distributions
func (h *DistributionHandler) Create(c *gin.Context) {
	var req distribution.DistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid distribution data: "+err.Error())
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	dist, err := h.distributionService.Distribute(&req, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Stock distributed successfully",
		"data":    dist,
	})
}

// List handles GET /company/stock-distributions
func (h *DistributionHandler) List(c *gin.Context) {
	var req distribution.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid query parameters")
		return
	}

	rows, pg, err := h.distributionService.List(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       rows,
		"pagination": pg,
	})
}
