// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"net/http"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/payment"
	"github.com/boffobaby/inventory-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentService *payment.Service
	config         *config.Config
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(db *gorm.DB, cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{
		paymentService: payment.NewService(db, cfg),
		config:         cfg,
	}
}

// Record handles POST /payments (admin)
func (h *PaymentHandler) Record(c *gin.Context) {
	var req payment.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid payment data: "+err.Error())
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	p, err := h.paymentService.Record(&req, payment.RecordedByAdmin, &actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment recorded successfully",
		"data":    p,
	})
}

// List handles GET /payments. Resellers are scoped to their own payments.
func (h *PaymentHandler) List(c *gin.Context) {
	var req payment.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid query parameters")
		return
	}

	if !middleware.IsAdminFromContext(c) {
		userID, _ := middleware.GetUserIDFromContext(c)
		req.ResellerID = userID
	}

	rows, pg, err := h.paymentService.List(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       rows,
		"pagination": pg,
	})
}
