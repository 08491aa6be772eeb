// internal/domain/goodsrequest/service.go
package goodsrequest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/distribution"
	"github.com/boffobaby/inventory-backend/internal/pkg/apperrors"
	"github.com/boffobaby/inventory-backend/internal/pkg/dbutil"
	"github.com/boffobaby/inventory-backend/internal/pkg/pagination"
	"gorm.io/gorm"
)

// Decisions an admin can take on a pending request
const (
	DecisionApprove = "APPROVED"
	DecisionReject  = "REJECTED"
)

// Service handles the goods-request lifecycle
type Service struct {
	db            *gorm.DB
	config        *config.Config
	distributions *distribution.Service
}

// NewService creates a new goods-request service
func NewService(db *gorm.DB, cfg *config.Config, distributions *distribution.Service) *Service {
	return &Service{
		db:            db,
		config:        cfg,
		distributions: distributions,
	}
}

// CreateRequest represents goods-request creation data
type CreateRequest struct {
	Data []RequestLine `json:"data" binding:"required"`
}

// UpdateRequest replaces the payload wholesale (reseller, while pending)
type UpdateRequest struct {
	Data []RequestLine `json:"data" binding:"required"`
}

// DecideRequest is the admin decision body
type DecideRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// ListRequest represents goods-request list query parameters
type ListRequest struct {
	pagination.Params
	Status     string `form:"status"`
	ResellerID uint   `form:"reseller_id"`
}

func validateLines(lines []RequestLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("request payload is empty: %w", apperrors.ErrValidation)
	}
	for i, line := range lines {
		if line.ProductID == 0 {
			return fmt.Errorf("line %d has no product: %w", i+1, apperrors.ErrValidation)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("line %d quantity must be positive: %w", i+1, apperrors.ErrValidation)
		}
	}
	return nil
}

// Create opens a new PENDING request for the reseller.
func (s *Service) Create(resellerID uint, req *CreateRequest) (*GoodsRequest, error) {
	if err := validateLines(req.Data); err != nil {
		return nil, err
	}

	r := &GoodsRequest{
		ResellerID: resellerID,
		Payload:    req.Data,
		Status:     StatusPending,
	}
	if err := s.db.Create(r).Error; err != nil {
		return nil, fmt.Errorf("failed to create goods request: %w", err)
	}
	return r, nil
}

// Get retrieves a single request by ID
func (s *Service) Get(id uint) (*GoodsRequest, error) {
	var r GoodsRequest
	if err := s.db.Preload("User").First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("goods request %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve goods request: %w", err)
	}
	return &r, nil
}

// Update replaces the payload of an open request. Only the owning reseller
// may update, and only while PENDING and not cancelled.
func (s *Service) Update(id, resellerID uint, req *UpdateRequest) (*GoodsRequest, error) {
	if err := validateLines(req.Data); err != nil {
		return nil, err
	}

	var r GoodsRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, id, &r); err != nil {
			return err
		}
		if r.ResellerID != resellerID {
			return fmt.Errorf("goods request %d: %w", id, apperrors.ErrNotFound)
		}
		if !r.IsOpen() {
			return fmt.Errorf("goods request %d is no longer pending: %w", id, apperrors.ErrInvalidTransition)
		}

		r.Payload = req.Data
		return tx.Model(&r).Update("payload", r.Payload).Error
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Cancel flags an open request as cancelled. Terminal: the status stays
// PENDING but no decide/update/cancel may follow.
func (s *Service) Cancel(id, resellerID uint) (*GoodsRequest, error) {
	var r GoodsRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, id, &r); err != nil {
			return err
		}
		if r.ResellerID != resellerID {
			return fmt.Errorf("goods request %d: %w", id, apperrors.ErrNotFound)
		}
		if !r.IsOpen() {
			return fmt.Errorf("goods request %d is no longer pending: %w", id, apperrors.ErrInvalidTransition)
		}

		now := time.Now().UTC()
		r.Cancelled = true
		r.CancelledAt = &now
		return tx.Model(&r).Updates(map[string]interface{}{
			"cancelled":    true,
			"cancelled_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Decide approves or rejects an open request. Approval creates one
// distribution per payload line inside the same transaction; if any line
// cannot be covered by company stock the whole decision rolls back and the
// request stays PENDING.
func (s *Service) Decide(id uint, adminID uint, req *DecideRequest) (*GoodsRequest, error) {
	decision := strings.ToUpper(strings.TrimSpace(req.Status))
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, fmt.Errorf("unknown decision %q: %w", req.Status, apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.Comment) == "" {
		return nil, fmt.Errorf("a decision comment is required: %w", apperrors.ErrValidation)
	}

	var r GoodsRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, id, &r); err != nil {
			return err
		}
		if !r.IsOpen() {
			return fmt.Errorf("goods request %d is no longer pending: %w", id, apperrors.ErrInvalidTransition)
		}

		if decision == DecisionApprove {
			for _, line := range r.Payload {
				_, err := s.distributions.DistributeTx(tx, &distribution.DistributeRequest{
					ResellerID: r.ResellerID,
					ProductID:  line.ProductID,
					Quantity:   line.Quantity,
					UnitPrice:  line.PriceRequested,
					Note:       fmt.Sprintf("goods request #%d", r.ID),
				}, adminID)
				if err != nil {
					return fmt.Errorf("line for product %d: %w", line.ProductID, err)
				}
			}
		}

		r.Status = decision
		r.Comment = req.Comment
		r.DecidedBy = &adminID
		return tx.Model(&r).Updates(map[string]interface{}{
			"status":     decision,
			"comment":    req.Comment,
			"decided_by": adminID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// List retrieves requests with filtering and pagination. Pass resellerID 0
// for the admin view of all requests.
func (s *Service) List(req *ListRequest) ([]GoodsRequest, pagination.Pagination, error) {
	req.Normalize()

	var rows []GoodsRequest
	var total int64

	query := s.db.Model(&GoodsRequest{}).Preload("User")
	if req.Status != "" && req.Status != "all" {
		if strings.EqualFold(req.Status, "cancelled") {
			query = query.Where("cancelled = ?", true)
		} else {
			query = query.Where("status = ? AND cancelled = ?", strings.ToUpper(req.Status), false)
		}
	}
	if req.ResellerID > 0 {
		query = query.Where("reseller_id = ?", req.ResellerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to count goods requests: %w", err)
	}

	if err := query.Order("created_at DESC, id DESC").Offset(req.Offset()).Limit(req.Limit).Find(&rows).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to retrieve goods requests: %w", err)
	}

	return rows, pagination.Build(req.Params, total), nil
}

// lockRequest loads the request under a row lock so concurrent
// decide/cancel/update calls serialize.
func lockRequest(tx *gorm.DB, id uint, dest *GoodsRequest) error {
	err := dbutil.ForUpdate(tx).First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("goods request %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock goods request: %w", err)
	}
	return nil
}
