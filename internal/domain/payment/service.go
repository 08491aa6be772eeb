// internal/domain/payment/service.go
package payment

import (
	"fmt"
	"strings"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/distribution"
	"github.com/boffobaby/inventory-backend/internal/domain/sales"
	"github.com/boffobaby/inventory-backend/internal/domain/user"
	"github.com/boffobaby/inventory-backend/internal/pkg/apperrors"
	"github.com/boffobaby/inventory-backend/internal/pkg/dates"
	"github.com/boffobaby/inventory-backend/internal/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service handles payments and derived reseller accounts
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new payment service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// RecordRequest represents payment creation data
type RecordRequest struct {
	ResellerID uint    `json:"reseller_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Method     string  `json:"method" binding:"required"`
	Reference  string  `json:"reference"`
	DatePaid   string  `json:"date_paid" binding:"required"`
}

// ListRequest represents payment list query parameters
type ListRequest struct {
	pagination.Params
	ResellerID uint   `form:"reseller_id"`
	Method     string `form:"method"`
	RecordedBy string `form:"recorded_by"`
	Search     string `form:"search"`
	FromDate   string `form:"date_from"`
	ToDate     string `form:"date_to"`
}

// Record appends a payment. recordedBy is ADMIN for dashboard entries and
// SYSTEM for automated ones; actorID is nil for SYSTEM.
func (s *Service) Record(req *RecordRequest, recordedBy string, actorID *uint) (*Payment, error) {
	if req.Method != MethodMpesa && req.Method != MethodCash {
		return nil, fmt.Errorf("unknown payment method %q: %w", req.Method, apperrors.ErrValidation)
	}

	var reseller user.User
	if err := s.db.First(&reseller, req.ResellerID).Error; err != nil {
		return nil, fmt.Errorf("reseller %d: %w", req.ResellerID, apperrors.ErrNotFound)
	}
	if !reseller.IsReseller() {
		return nil, fmt.Errorf("user %d is not a reseller: %w", req.ResellerID, apperrors.ErrValidation)
	}

	datePaid, err := dates.Parse(req.DatePaid)
	if err != nil {
		return nil, fmt.Errorf("invalid date_paid: %w", apperrors.ErrValidation)
	}

	reference := req.Reference
	if reference == "" {
		reference = uuid.NewString()
	}

	p := &Payment{
		ResellerID:       req.ResellerID,
		Amount:           req.Amount,
		Method:           req.Method,
		Reference:        reference,
		RecordedBy:       recordedBy,
		RecordedByUserID: actorID,
		DatePaid:         datePaid,
	}
	if err := s.db.Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	p.User = &reseller
	return p, nil
}

// List retrieves payments with filtering and pagination
func (s *Service) List(req *ListRequest) ([]Payment, pagination.Pagination, error) {
	req.Normalize()

	var rows []Payment
	var total int64

	query := s.db.Model(&Payment{}).Preload("User")
	if req.ResellerID > 0 {
		query = query.Where("reseller_id = ?", req.ResellerID)
	}
	if req.Method != "" && req.Method != "all" {
		query = query.Where("method = ?", req.Method)
	}
	if req.RecordedBy != "" && req.RecordedBy != "all" {
		query = query.Where("recorded_by = ?", req.RecordedBy)
	}
	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where(
			"LOWER(reference) LIKE ? OR reseller_id IN (?)",
			search,
			s.db.Model(&user.User{}).Select("id").Where("LOWER(name) LIKE ?", search),
		)
	}
	if req.FromDate != "" {
		from, err := dates.Parse(req.FromDate)
		if err != nil {
			return nil, pagination.Pagination{}, fmt.Errorf("invalid from_date: %w", err)
		}
		query = query.Where("date_paid >= ?", from)
	}
	if req.ToDate != "" {
		to, err := dates.Parse(req.ToDate)
		if err != nil {
			return nil, pagination.Pagination{}, fmt.Errorf("invalid to_date: %w", err)
		}
		query = query.Where("date_paid <= ?", to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to count payments: %w", err)
	}

	if err := query.Order("date_paid DESC, id DESC").Offset(req.Offset()).Limit(req.Limit).Find(&rows).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to retrieve payments: %w", err)
	}

	return rows, pagination.Build(req.Params, total), nil
}

// productTotals is an internal aggregation row.
type productTotals struct {
	ProductID uint
	Units     int
	Value     float64
}

// AccountFor computes the derived account for one reseller. Balance is
// total_value_received minus total_paid; COGS values units sold at the
// reseller's average received unit price per product.
func (s *Service) AccountFor(resellerID uint) (*Account, error) {
	account := &Account{ResellerID: resellerID}

	var received []productTotals
	err := s.db.Model(&distribution.StockDistribution{}).
		Select("product_id, COALESCE(SUM(quantity), 0) AS units, COALESCE(SUM(total_price), 0) AS value").
		Where("reseller_id = ?", resellerID).
		Group("product_id").
		Scan(&received).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate distributions: %w", err)
	}

	var sold []productTotals
	err = s.db.Model(&sales.Sale{}).
		Select("product_id, COALESCE(SUM(quantity), 0) AS units, COALESCE(SUM(total_amount), 0) AS value").
		Where("reseller_id = ?", resellerID).
		Group("product_id").
		Scan(&sold).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	avgCost := make(map[uint]float64, len(received))
	for _, row := range received {
		account.TotalStockReceived += row.Units
		account.TotalValueReceived += row.Value
		if row.Units > 0 {
			avgCost[row.ProductID] = row.Value / float64(row.Units)
		}
	}
	for _, row := range sold {
		account.TotalSalesValue += row.Value
		account.TotalCOGS += float64(row.Units) * avgCost[row.ProductID]
	}

	var paid float64
	err = s.db.Model(&Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("reseller_id = ?", resellerID).
		Scan(&paid).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}
	account.TotalPaid = paid

	// Sales value deliberately excluded: proceeds belong to the reseller.
	account.Balance = account.TotalValueReceived - account.TotalPaid

	return account, nil
}
