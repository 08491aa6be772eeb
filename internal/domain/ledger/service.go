// internal/domain/ledger/service.go
package ledger

import (
	"fmt"
	"strings"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/pkg/dates"
	"github.com/boffobaby/inventory-backend/internal/pkg/pagination"
	"gorm.io/gorm"
)

// Service handles the stock movement ledger
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new ledger service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Entry describes one movement to append.
type Entry struct {
	ProductID     uint
	OwnerType     string
	OwnerID       *uint
	MovementType  string
	Source        string
	Quantity      int
	UnitPrice     float64
	Note          string
	CorrelationID string
	UserID        *uint
}

// ListRequest represents ledger list query parameters
type ListRequest struct {
	pagination.Params
	Type      string `form:"movement_type"`
	Source    string `form:"source"`
	OwnerType string `form:"owner_type"`
	ProductID uint   `form:"product_id"`
	OwnerID   uint   `form:"owner_id"`
	Search    string `form:"search"`
	FromDate  string `form:"from_date"`
	ToDate    string `form:"to_date"`
}

// AppendTx appends one movement row inside the caller's transaction. The
// ledger is append-only; this is the only write path.
func AppendTx(tx *gorm.DB, e Entry) (*StockMovement, error) {
	m := &StockMovement{
		ProductID:     e.ProductID,
		OwnerType:     e.OwnerType,
		OwnerID:       e.OwnerID,
		MovementType:  e.MovementType,
		Source:        e.Source,
		Quantity:      e.Quantity,
		UnitPrice:     e.UnitPrice,
		Note:          e.Note,
		CorrelationID: e.CorrelationID,
		UserID:        e.UserID,
	}
	if err := tx.Create(m).Error; err != nil {
		return nil, fmt.Errorf("failed to append stock movement: %w", err)
	}
	return m, nil
}

// List retrieves movements with filtering and pagination
func (s *Service) List(req *ListRequest) ([]StockMovement, pagination.Pagination, error) {
	req.Normalize()

	var movements []StockMovement
	var total int64

	query := s.db.Model(&StockMovement{}).
		Preload("Product").
		Preload("User")

	if req.Type != "" && req.Type != "all" {
		query = query.Where("movement_type = ?", req.Type)
	}
	if req.Source != "" && req.Source != "all" {
		query = query.Where("source = ?", req.Source)
	}
	if req.OwnerType != "" && req.OwnerType != "all" {
		query = query.Where("owner_type = ?", req.OwnerType)
	}
	if req.ProductID > 0 {
		query = query.Where("product_id = ?", req.ProductID)
	}
	if req.OwnerID > 0 {
		query = query.Where("owner_id = ?", req.OwnerID)
	}
	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("product_id IN (?)", s.db.Model(&ProductInfo{}).Select("id").Where("LOWER(name) LIKE ?", search))
	}
	if req.FromDate != "" {
		from, err := dates.Parse(req.FromDate)
		if err != nil {
			return nil, pagination.Pagination{}, fmt.Errorf("invalid from_date: %w", err)
		}
		query = query.Where("created_at >= ?", from)
	}
	if req.ToDate != "" {
		to, err := dates.Parse(req.ToDate)
		if err != nil {
			return nil, pagination.Pagination{}, fmt.Errorf("invalid to_date: %w", err)
		}
		query = query.Where("created_at <= ?", to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to count stock movements: %w", err)
	}

	if err := query.Order("created_at DESC, id DESC").Offset(req.Offset()).Limit(req.Limit).Find(&movements).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to retrieve stock movements: %w", err)
	}

	return movements, pagination.Build(req.Params, total), nil
}
