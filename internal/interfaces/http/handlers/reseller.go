// internal/interfaces/http/handlers/reseller.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/distribution"
	"github.com/boffobaby/inventory-backend/internal/domain/payment"
	"github.com/boffobaby/inventory-backend/internal/domain/user"
	"github.com/boffobaby/inventory-backend/internal/pkg/pdf"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ResellerHandler handles the admin view of resellers: account positions
// and printable statements.
type ResellerHandler struct {
	userService         *user.Service
	paymentService      *payment.Service
	distributionService *distribution.Service
	pdfService          *pdf.Service
	config              *config.Config
}

// NewResellerHandler creates a new reseller handler
func NewResellerHandler(db *gorm.DB, cfg *config.Config) *ResellerHandler {
	return &ResellerHandler{
		userService:         user.NewService(db, cfg),
		paymentService:      payment.NewService(db, cfg),
		distributionService: distribution.NewService(db, cfg),
		pdfService:          pdf.NewService(cfg),
		config:              cfg,
	}
}

// resellerWithAccount pairs a reseller with their derived account.
type resellerWithAccount struct {
	*user.User
	Account *payment.Account `json:"account"`
}

// List handles GET /admin/resellers
func (h *ResellerHandler) List(c *gin.Context) {
	var req user.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid query parameters")
		return
	}
	req.Role = user.RoleReseller

	users, pg, err := h.userService.List(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	rows := make([]resellerWithAccount, 0, len(users))
	for i := range users {
		account, err := h.paymentService.AccountFor(users[i].ID)
		if err != nil {
			respondError(c, err)
			return
		}
		rows = append(rows, resellerWithAccount{User: &users[i], Account: account})
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       rows,
		"pagination": pg,
	})
}

// Get handles GET /admin/resellers/:id
func (h *ResellerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	u, err := h.userService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !u.IsReseller() {
		c.JSON(http.StatusNotFound, gin.H{"message": "Reseller not found"})
		return
	}

	account, err := h.paymentService.AccountFor(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resellerWithAccount{User: u, Account: account},
	})
}

// Statement handles GET /admin/resellers/:id/statement.pdf
func (h *ResellerHandler) Statement(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	u, err := h.userService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !u.IsReseller() {
		c.JSON(http.StatusNotFound, gin.H{"message": "Reseller not found"})
		return
	}

	account, err := h.paymentService.AccountFor(id)
	if err != nil {
		respondError(c, err)
		return
	}

	distReq := &distribution.ListRequest{ResellerID: id}
	distReq.Limit = 100
	distributions, _, err := h.distributionService.List(distReq)
	if err != nil {
		respondError(c, err)
		return
	}

	payReq := &payment.ListRequest{ResellerID: id}
	payReq.Limit = 100
	payments, _, err := h.paymentService.List(payReq)
	if err != nil {
		respondError(c, err)
		return
	}

	buf, err := h.pdfService.GenerateStatement(u, account, distributions, payments)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("statement-%d.pdf", id)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
