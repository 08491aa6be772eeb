// internal/interfaces/http/handlers/pagedata.go
package handlers

import (
	"net/http"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/payment"
	"github.com/boffobaby/inventory-backend/internal/domain/stats"
	"github.com/boffobaby/inventory-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// PageDataHandler serves the per-page aggregate bundles the dashboards poll
type PageDataHandler struct {
	statsService *stats.Service
	config       *config.Config
}

// NewPageDataHandler creates a new page-data handler
func NewPageDataHandler(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *PageDataHandler {
	return &PageDataHandler{
		statsService: stats.NewService(db, cfg, redisClient, payment.NewService(db, cfg)),
		config:       cfg,
	}
}

// AdminPage handles GET /admin/page-data/:page
func (h *PageDataHandler) AdminPage(c *gin.Context) {
	page := c.Param("page")

	bundle, err := h.statsService.AdminPage(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	// The client reads data.<page>.
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{page: bundle},
	})
}

// ResellerPage handles GET /resellers/page-data/:page
func (h *PageDataHandler) ResellerPage(c *gin.Context) {
	page := c.Param("page")
	userID, _ := middleware.GetUserIDFromContext(c)

	bundle, err := h.statsService.ResellerPage(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{page: bundle},
	})
}
