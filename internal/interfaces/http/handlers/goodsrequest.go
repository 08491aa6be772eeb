// internal/interfaces/http/handlers/goodsrequest.go
package handlers

import (
	"net/http"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/distribution"
	"github.com/boffobaby/inventory-backend/internal/domain/goodsrequest"
	"github.com/boffobaby/inventory-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GoodsRequestHandler handles the goods-request workflow
type GoodsRequestHandler struct {
	requestService *goodsrequest.Service
	config         *config.Config
}

// NewGoodsRequestHandler creates a new goods-request handler
func NewGoodsRequestHandler(db *gorm.DB, cfg *config.Config) *GoodsRequestHandler {
	return &GoodsRequestHandler{
		requestService: goodsrequest.NewService(db, cfg, distribution.NewService(db, cfg)),
		config:         cfg,
	}
}

// Create handles POST /good-requests (reseller)
func (h *GoodsRequestHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req goodsrequest.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	r, err := h.requestService.Create(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Goods request submitted successfully",
		"data":    r,
	})
}

// List handles GET /good-requests. Admins see every request; resellers only
// their own.
func (h *GoodsRequestHandler) List(c *gin.Context) {
	var req goodsrequest.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid query parameters")
		return
	}

	if !middleware.IsAdminFromContext(c) {
		userID, _ := middleware.GetUserIDFromContext(c)
		req.ResellerID = userID
	}

	rows, pg, err := h.requestService.List(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       rows,
		"pagination": pg,
	})
}

// Get handles GET /good-requests/:id
func (h *GoodsRequestHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	r, err := h.requestService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	if !middleware.IsAdminFromContext(c) {
		userID, _ := middleware.GetUserIDFromContext(c)
		if r.ResellerID != userID {
			c.JSON(http.StatusNotFound, gin.H{"message": "Goods request not found"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": r})
}

// Update handles PUT /good-requests/:id. The body is role-dispatched: an
// admin sends {status, comment} to decide, a reseller sends {data} to
// replace the payload of their pending request.
func (h *GoodsRequestHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	if middleware.IsAdminFromContext(c) {
		var req goodsrequest.DecideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Status and comment are required")
			return
		}

		r, err := h.requestService.Decide(id, userID, &req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Goods request " + r.Status,
			"data":    r,
		})
		return
	}

	var req goodsrequest.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	r, err := h.requestService.Update(id, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Goods request updated successfully",
		"data":    r,
	})
}

// Cancel handles DELETE /good-requests/:id (reseller)
func (h *GoodsRequestHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	r, err := h.requestService.Cancel(id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Goods request cancelled successfully",
		"data":    r,
	})
}
