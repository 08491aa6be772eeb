// internal/interfaces/http/handlers/company.go
package handlers

import (
	"net/http"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/catalog"
	"github.com/boffobaby/inventory-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CompanyHandler handles company stock endpoints: purchases (batches) and
// the derived per-product stock view.
type CompanyHandler struct {
	catalogService *catalog.Service
	config         *config.Config
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(db *gorm.DB, cfg *config.Config) *CompanyHandler {
	return &CompanyHandler{
		catalogService: catalog.NewService(db, cfg),
		config:         cfg,
	}
}

// CreateStockPurchase handles POST /company/stock-purchase
func (h *CompanyHandler) CreateStockPurchase(c *gin.Context) {
	var req catalog.BatchCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid stock purchase data: "+err.Error())
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	batch, err := h.catalogService.CreateBatch(&req, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Stock purchase recorded successfully",
		"data":    batch,
	})
}

// ListBatches handles GET /company/batches
func (h *CompanyHandler) ListBatches(c *gin.Context) {
	var req catalog.BatchListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid query parameters")
		return
	}

	batches, pg, err := h.catalogService.ListBatches(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       batches,
		"pagination": pg,
	})
}

// GetStock handles GET /company/stock
func (h *CompanyHandler) GetStock(c *gin.Context) {
	rows, err := h.catalogService.GetCompanyStock()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}
