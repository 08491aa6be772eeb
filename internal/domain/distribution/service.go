// internal/domain/distribution/service.go
package distribution

import (
	"errors"
	"fmt"
	"strings"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/catalog"
	"github.com/boffobaby/inventory-backend/internal/domain/ledger"
	"github.com/boffobaby/inventory-backend/internal/domain/user"
	"github.com/boffobaby/inventory-backend/internal/pkg/apperrors"
	"github.com/boffobaby/inventory-backend/internal/pkg/dates"
	"github.com/boffobaby/inventory-backend/internal/pkg/dbutil"
	"github.com/boffobaby/inventory-backend/internal/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service handles stock distribution business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new distribution service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// DistributeRequest represents distribution creation data
type DistributeRequest struct {
	ResellerID      uint    `json:"reseller_id" binding:"required"`
	ProductID       uint    `json:"product_id" binding:"required"`
	Quantity        int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice       float64 `json:"unit_price" binding:"required,gt=0"`
	DateDistributed string  `json:"date_distributed" binding:"required"`
	Note            string  `json:"note"`
}

// ListRequest represents distribution list query parameters
type ListRequest struct {
	pagination.Params
	ResellerID uint   `form:"reseller_id"`
	ProductID  uint   `form:"product_id"`
	Search     string `form:"search"`
	FromDate   string `form:"from_date"`
	ToDate     string `form:"to_date"`
}

// Distribute moves stock from company batches to a reseller in one atomic
// transaction: batch decrements (FIFO), reseller stock increment, the paired
// ledger rows and the distribution record commit together or not at all.
func (s *Service) Distribute(req *DistributeRequest, actorID uint) (*StockDistribution, error) {
	var dist *StockDistribution
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		dist, err = s.DistributeTx(tx, req, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Product").Preload("User").First(dist, dist.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload distribution: %w", err)
	}
	return dist, nil
}

// DistributeTx runs the distribution inside the caller's transaction. The
// goods-request approval path uses this to keep the status flip and all its
// distributions in one commit.
func (s *Service) DistributeTx(tx *gorm.DB, req *DistributeRequest, actorID uint) (*StockDistribution, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", apperrors.ErrValidation)
	}

	var reseller user.User
	if err := tx.First(&reseller, req.ResellerID).Error; err != nil {
		return nil, fmt.Errorf("reseller %d: %w", req.ResellerID, apperrors.ErrNotFound)
	}
	if !reseller.IsReseller() {
		return nil, fmt.Errorf("user %d is not a reseller: %w", req.ResellerID, apperrors.ErrValidation)
	}

	dateDistributed, err := dates.ParseOrNow(req.DateDistributed)
	if err != nil {
		return nil, fmt.Errorf("invalid date_distributed: %w", apperrors.ErrValidation)
	}

	// Lock the product's open batches in FIFO order. Concurrent
	// distributions for the same product serialize here.
	var batches []catalog.ProductBatch
	if err := dbutil.ForUpdate(tx).
		Where("product_id = ? AND remaining_quantity > 0", req.ProductID).
		Order("date_received ASC, id ASC").
		Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("failed to lock batches: %w", err)
	}

	available := 0
	for _, b := range batches {
		available += b.RemainingQuantity
	}
	if available < req.Quantity {
		return nil, fmt.Errorf("product %d has %d units across batches, requested %d: %w",
			req.ProductID, available, req.Quantity, apperrors.ErrInsufficientStock)
	}

	remaining := req.Quantity
	for i := range batches {
		if remaining == 0 {
			break
		}
		take := batches[i].RemainingQuantity
		if take > remaining {
			take = remaining
		}
		batches[i].RemainingQuantity -= take
		remaining -= take

		if err := tx.Model(&catalog.ProductBatch{}).
			Where("id = ?", batches[i].ID).
			Update("remaining_quantity", batches[i].RemainingQuantity).Error; err != nil {
			return nil, fmt.Errorf("failed to decrement batch %d: %w", batches[i].ID, err)
		}
	}

	// Upsert the reseller stock row under lock.
	var stock catalog.ResellerStock
	err = dbutil.ForUpdate(tx).
		Where("reseller_id = ? AND product_id = ?", req.ResellerID, req.ProductID).
		First(&stock).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		stock = catalog.ResellerStock{
			ResellerID: req.ResellerID,
			ProductID:  req.ProductID,
			Quantity:   req.Quantity,
		}
		if err := tx.Create(&stock).Error; err != nil {
			return nil, fmt.Errorf("failed to create reseller stock: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to lock reseller stock: %w", err)
	default:
		stock.Quantity += req.Quantity
		if err := tx.Model(&catalog.ResellerStock{}).
			Where("id = ?", stock.ID).
			Update("quantity", stock.Quantity).Error; err != nil {
			return nil, fmt.Errorf("failed to increment reseller stock: %w", err)
		}
	}

	// Paired ledger rows share one correlation id.
	correlationID := uuid.NewString()
	resellerID := req.ResellerID

	if _, err := ledger.AppendTx(tx, ledger.Entry{
		ProductID:     req.ProductID,
		OwnerType:     ledger.OwnerCompany,
		MovementType:  ledger.MovementOut,
		Source:        ledger.SourceDistribution,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		Note:          req.Note,
		CorrelationID: correlationID,
		UserID:        &actorID,
	}); err != nil {
		return nil, err
	}
	if _, err := ledger.AppendTx(tx, ledger.Entry{
		ProductID:     req.ProductID,
		OwnerType:     ledger.OwnerReseller,
		OwnerID:       &resellerID,
		MovementType:  ledger.MovementIn,
		Source:        ledger.SourceDistribution,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		Note:          req.Note,
		CorrelationID: correlationID,
		UserID:        &actorID,
	}); err != nil {
		return nil, err
	}

	dist := &StockDistribution{
		ResellerID:      req.ResellerID,
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		TotalPrice:      float64(req.Quantity) * req.UnitPrice,
		DateDistributed: dateDistributed,
	}
	if err := tx.Create(dist).Error; err != nil {
		return nil, fmt.Errorf("failed to create distribution: %w", err)
	}
	return dist, nil
}

// List retrieves distributions with filtering and pagination
func (s *Service) List(req *ListRequest) ([]StockDistribution, pagination.Pagination, error) {
	req.Normalize()

	var rows []StockDistribution
	var total int64

	query := s.db.Model(&StockDistribution{}).
		Preload("Product").
		Preload("User")

	if req.ResellerID > 0 {
		query = query.Where("reseller_id = ?", req.ResellerID)
	}
	if req.ProductID > 0 {
		query = query.Where("product_id = ?", req.ProductID)
	}
	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("product_id IN (?)", s.db.Model(&catalog.Product{}).Select("id").Where("LOWER(name) LIKE ?", search))
	}
	if req.FromDate != "" {
		from, err := dates.Parse(req.FromDate)
		if err != nil {
			return nil, pagination.Pagination{}, fmt.Errorf("invalid from_date: %w", err)
		}
		query = query.Where("date_distributed >= ?", from)
	}
	if req.ToDate != "" {
		to, err := dates.Parse(req.ToDate)
		if err != nil {
			return nil, pagination.Pagination{}, fmt.Errorf("invalid to_date: %w", err)
		}
		query = query.Where("date_distributed <= ?", to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to count distributions: %w", err)
	}

	if err := query.Order("date_distributed DESC, id DESC").Offset(req.Offset()).Limit(req.Limit).Find(&rows).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to retrieve distributions: %w", err)
	}

	return rows, pagination.Build(req.Params, total), nil
}
