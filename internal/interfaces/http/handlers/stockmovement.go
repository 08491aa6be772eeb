// internal/interfaces/http/handlers/stockmovement.go
package handlers

import (
	"net/http"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/ledger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StockMovementHandler handles the read side of the movement ledger
type StockMovementHandler struct {
	ledgerService *ledger.Service
	config        *config.Config
}

// NewStockMovementHandler creates a new stock movement handler
func NewStockMovementHandler(db *gorm.DB, cfg *config.Config) *StockMovementHandler {
	return &StockMovementHandler{
		ledgerService: ledger.NewService(db, cfg),
		config:        cfg,
	}
}

// List handles GET /stock-movements
func (h *StockMovementHandler) List(c *gin.Context) {
	var req ledger.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid query parameters")
		return
	}

	rows, pg, err := h.ledgerService.List(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       rows,
		"pagination": pg,
	})
}
