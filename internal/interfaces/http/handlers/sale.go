// internal/interfaces/http/handlers/sale.go
package handlers

import (
	"net/http"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/catalog"
	"github.com/boffobaby/inventory-backend/internal/domain/sales"
	"github.com/boffobaby/inventory-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SaleHandler handles reseller sales and stock endpoints
type SaleHandler struct {
	salesService   *sales.Service
	catalogService *catalog.Service
	config         *config.Config
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(db *gorm.DB, cfg *config.Config) *SaleHandler {
	return &SaleHandler{
		salesService:   sales.NewService(db, cfg),
		catalogService: catalog.NewService(db, cfg),
		config:         cfg,
	}
}

// Record handles POST /resellers
func (h *SaleHandler) Record(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req sales.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid sale data: "+err.Error())
		return
	}

	sale, err := h.salesService.Record(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sale recorded successfully",
		"data":    sale,
	})
}

// List handles GET /resellers. Resellers see their own sales; an admin may
// filter any reseller.
func (h *SaleHandler) List(c *gin.Context) {
	var req sales.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid query parameters")
		return
	}

	if !middleware.IsAdminFromContext(c) {
		userID, _ := middleware.GetUserIDFromContext(c)
		req.ResellerID = userID
	}

	rows, pg, err := h.salesService.List(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       rows,
		"pagination": pg,
	})
}

// ListStock handles GET /resellers/stock
func (h *SaleHandler) ListStock(c *gin.Context) {
	var req catalog.ResellerStockListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid query parameters")
		return
	}

	if !middleware.IsAdminFromContext(c) {
		userID, _ := middleware.GetUserIDFromContext(c)
		req.ResellerID = userID
	}

	rows, pg, err := h.catalogService.ListResellerStock(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       rows,
		"pagination": pg,
	})
}

// StockForm handles GET /resellers/stock/form
func (h *SaleHandler) StockForm(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	helpers, err := h.catalogService.StockFormHelpers(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": helpers})
}

// ThresholdRequest is the stock threshold update body
type ThresholdRequest struct {
	LowStockThreshold *int `json:"low_stock_threshold" binding:"required"`
}

// UpdateThreshold handles PUT /resellers/stock-threshold/:id where :id is
// the product.
func (h *SaleHandler) UpdateThreshold(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	var req ThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "low_stock_threshold is required")
		return
	}

	row, err := h.catalogService.UpdateResellerThreshold(userID, productID, *req.LowStockThreshold)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Threshold updated successfully",
		"data":    row,
	})
}
