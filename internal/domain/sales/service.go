// internal/domain/sales/service.go
package sales

import (
	"errors"
	"fmt"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/catalog"
	"github.com/boffobaby/inventory-backend/internal/domain/ledger"
	"github.com/boffobaby/inventory-backend/internal/pkg/apperrors"
	"github.com/boffobaby/inventory-backend/internal/pkg/dates"
	"github.com/boffobaby/inventory-backend/internal/pkg/dbutil"
	"github.com/boffobaby/inventory-backend/internal/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service handles sale recording
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new sales service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// RecordRequest represents sale creation data
type RecordRequest struct {
	ProductID    uint    `json:"product_id" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required,gt=0"`
	SellingPrice float64 `json:"selling_price" binding:"required,gt=0"`
	DateSold     string  `json:"date_sold" binding:"required"`
}

// ListRequest represents sale list query parameters
type ListRequest struct {
	pagination.Params
	ResellerID uint   `form:"reseller_id"`
	ProductID  uint   `form:"product_id"`
	FromDate   string `form:"from_date"`
	ToDate     string `form:"to_date"`
}

// Record decrements the reseller's stock and writes the sale plus its OUT
// movement in one transaction. The stock row is locked so two concurrent
// sales cannot jointly oversell.
func (s *Service) Record(resellerID uint, req *RecordRequest) (*Sale, error) {
	dateSold, err := dates.ParseOrNow(req.DateSold)
	if err != nil {
		return nil, fmt.Errorf("invalid date_sold: %w", apperrors.ErrValidation)
	}

	sale := &Sale{
		ResellerID:   resellerID,
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		SellingPrice: req.SellingPrice,
		TotalAmount:  float64(req.Quantity) * req.SellingPrice,
		DateSold:     dateSold,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var stock catalog.ResellerStock
		err := dbutil.ForUpdate(tx).
			Where("reseller_id = ? AND product_id = ?", resellerID, req.ProductID).
			First(&stock).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("no stock of product %d: %w", req.ProductID, apperrors.ErrInsufficientStock)
		}
		if err != nil {
			return fmt.Errorf("failed to lock reseller stock: %w", err)
		}

		if stock.Quantity < req.Quantity {
			return fmt.Errorf("have %d units of product %d, requested %d: %w",
				stock.Quantity, req.ProductID, req.Quantity, apperrors.ErrInsufficientStock)
		}

		if err := tx.Model(&catalog.ResellerStock{}).
			Where("id = ?", stock.ID).
			Update("quantity", stock.Quantity-req.Quantity).Error; err != nil {
			return fmt.Errorf("failed to decrement reseller stock: %w", err)
		}

		if _, err := ledger.AppendTx(tx, ledger.Entry{
			ProductID:     req.ProductID,
			OwnerType:     ledger.OwnerReseller,
			OwnerID:       &resellerID,
			MovementType:  ledger.MovementOut,
			Source:        ledger.SourceSale,
			Quantity:      req.Quantity,
			UnitPrice:     req.SellingPrice,
			CorrelationID: uuid.NewString(),
			UserID:        &resellerID,
		}); err != nil {
			return err
		}

		if err := tx.Create(sale).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Product").First(sale, sale.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload sale: %w", err)
	}
	return sale, nil
}

// List retrieves sales with filtering and pagination
func (s *Service) List(req *ListRequest) ([]Sale, pagination.Pagination, error) {
	req.Normalize()

	var rows []Sale
	var total int64

	query := s.db.Model(&Sale{}).
		Preload("Product").
		Preload("User")

	if req.ResellerID > 0 {
		query = query.Where("reseller_id = ?", req.ResellerID)
	}
	if req.ProductID > 0 {
		query = query.Where("product_id = ?", req.ProductID)
	}
	if req.FromDate != "" {
		from, err := dates.Parse(req.FromDate)
		if err != nil {
			return nil, pagination.Pagination{}, fmt.Errorf("invalid from_date: %w", err)
		}
		query = query.Where("date_sold >= ?", from)
	}
	if req.ToDate != "" {
		to, err := dates.Parse(req.ToDate)
		if err != nil {
			return nil, pagination.Pagination{}, fmt.Errorf("invalid to_date: %w", err)
		}
		query = query.Where("date_sold <= ?", to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to count sales: %w", err)
	}

	if err := query.Order("date_sold DESC, id DESC").Offset(req.Offset()).Limit(req.Limit).Find(&rows).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	return rows, pagination.Build(req.Params, total), nil
}
