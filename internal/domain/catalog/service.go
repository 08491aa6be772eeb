// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/ledger"
	"github.com/boffobaby/inventory-backend/internal/pkg/apperrors"
	"github.com/boffobaby/inventory-backend/internal/pkg/dates"
	"github.com/boffobaby/inventory-backend/internal/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service handles product, batch and stock-view business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	pagination.Params
	Category string `form:"category"`
	Search   string `form:"search"`
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	Name              string  `json:"name" binding:"required"`
	Description       string  `json:"description"`
	Price             float64 `json:"price" binding:"required,gt=0"`
	Category          string  `json:"category" binding:"required"`
	Unit              string  `json:"unit" binding:"required"`
	LowStockThreshold int     `json:"low_stock_threshold"`
}

// ProductUpdateRequest represents product update data
type ProductUpdateRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Price             *float64 `json:"price"`
	Category          *string  `json:"category"`
	Unit              *string  `json:"unit"`
	LowStockThreshold *int     `json:"low_stock_threshold"`
}

// BatchCreateRequest represents a stock purchase (new batch)
type BatchCreateRequest struct {
	ProductID     uint    `json:"product_id" binding:"required"`
	BatchNumber   string  `json:"batch_number" binding:"required"`
	Quantity      int     `json:"quantity" binding:"required,gt=0"`
	PurchasePrice float64 `json:"purchase_price" binding:"required,gt=0"`
	DateReceived  string  `json:"date_received" binding:"required"`
	Note          string  `json:"note"`
}

// BatchListRequest represents batch list query parameters
type BatchListRequest struct {
	pagination.Params
	ProductID   uint   `form:"product_id"`
	BatchNumber string `form:"batch_number"`
	Search      string `form:"search"`
	InStock     string `form:"in_stock"`
}

// ResellerStockListRequest represents reseller stock query parameters
type ResellerStockListRequest struct {
	pagination.Params
	ResellerID uint   `form:"reseller_id"`
	Search     string `form:"search"`
	InStock    string `form:"in_stock"`
}

// StockFormHelper feeds the reseller sale form: what can be sold and how much
// of it is left.
type StockFormHelper struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	Quantity          int    `json:"quantity"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

// PRODUCTS

// ListProducts retrieves products with filtering and pagination
func (s *Service) ListProducts(req *ProductListRequest) ([]Product, pagination.Pagination, error) {
	req.Normalize()

	var products []Product
	var total int64

	query := s.db.Model(&Product{})
	if req.Category != "" && req.Category != "all" {
		query = query.Where("category = ?", req.Category)
	}
	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to count products: %w", err)
	}

	if err := query.Order("created_at DESC").Offset(req.Offset()).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to retrieve products: %w", err)
	}

	return products, pagination.Build(req.Params, total), nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var p Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &p, nil
}

// CreateProduct creates a new product
func (s *Service) CreateProduct(req *ProductCreateRequest) (*Product, error) {
	p := &Product{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		Category:          req.Category,
		Unit:              req.Unit,
		LowStockThreshold: req.LowStockThreshold,
	}
	if err := s.db.Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

// UpdateProduct applies partial updates to a product
func (s *Service) UpdateProduct(id uint, req *ProductUpdateRequest) (*Product, error) {
	p, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("price must be positive: %w", apperrors.ErrValidation)
		}
		p.Price = *req.Price
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Unit != nil {
		p.Unit = *req.Unit
	}
	if req.LowStockThreshold != nil {
		p.LowStockThreshold = *req.LowStockThreshold
	}

	if err := s.db.Save(p).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

// DeleteProduct soft-deletes a product. Refused while batches or movements
// still reference it.
func (s *Service) DeleteProduct(id uint) error {
	p, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	var batchCount int64
	if err := s.db.Model(&ProductBatch{}).Where("product_id = ?", id).Count(&batchCount).Error; err != nil {
		return fmt.Errorf("failed to check product batches: %w", err)
	}
	var movementCount int64
	if err := s.db.Model(&ledger.StockMovement{}).Where("product_id = ?", id).Count(&movementCount).Error; err != nil {
		return fmt.Errorf("failed to check stock movements: %w", err)
	}
	if batchCount > 0 || movementCount > 0 {
		return fmt.Errorf("product %d has batches or movements referencing it: %w", id, apperrors.ErrConflict)
	}

	if err := s.db.Delete(p).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// BATCHES

// CreateBatch records a stock purchase: the batch row and its company IN
// movement commit together or not at all.
func (s *Service) CreateBatch(req *BatchCreateRequest, actorID uint) (*ProductBatch, error) {
	if _, err := s.GetProduct(req.ProductID); err != nil {
		return nil, err
	}

	dateReceived, err := dates.Parse(req.DateReceived)
	if err != nil {
		return nil, fmt.Errorf("invalid date_received: %w", apperrors.ErrValidation)
	}

	var existing ProductBatch
	if err := s.db.Where("batch_number = ?", req.BatchNumber).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("batch number %q already exists: %w", req.BatchNumber, apperrors.ErrConflict)
	}

	batch := &ProductBatch{
		ProductID:         req.ProductID,
		BatchNumber:       req.BatchNumber,
		Quantity:          req.Quantity,
		RemainingQuantity: req.Quantity,
		PurchasePrice:     req.PurchasePrice,
		DateReceived:      dateReceived,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return fmt.Errorf("failed to create batch: %w", err)
		}

		_, err := ledger.AppendTx(tx, ledger.Entry{
			ProductID:     req.ProductID,
			OwnerType:     ledger.OwnerCompany,
			MovementType:  ledger.MovementIn,
			Source:        ledger.SourcePurchase,
			Quantity:      req.Quantity,
			UnitPrice:     req.PurchasePrice,
			Note:          req.Note,
			CorrelationID: uuid.NewString(),
			UserID:        &actorID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Product").First(batch, batch.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload batch: %w", err)
	}
	return batch, nil
}

// ListBatches retrieves batches with filtering and pagination
func (s *Service) ListBatches(req *BatchListRequest) ([]ProductBatch, pagination.Pagination, error) {
	req.Normalize()

	var batches []ProductBatch
	var total int64

	query := s.db.Model(&ProductBatch{}).Preload("Product")
	if req.ProductID > 0 {
		query = query.Where("product_id = ?", req.ProductID)
	}
	if req.BatchNumber != "" {
		query = query.Where("batch_number = ?", req.BatchNumber)
	}
	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where(
			"LOWER(batch_number) LIKE ? OR product_id IN (?)",
			search,
			s.db.Model(&Product{}).Select("id").Where("LOWER(name) LIKE ?", search),
		)
	}
	switch req.InStock {
	case "true", "in":
		query = query.Where("remaining_quantity > 0")
	case "false", "out":
		query = query.Where("remaining_quantity <= 0")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to count batches: %w", err)
	}

	// FIFO visibility: oldest received first
	if err := query.Order("date_received ASC, id ASC").Offset(req.Offset()).Limit(req.Limit).Find(&batches).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to retrieve batches: %w", err)
	}

	return batches, pagination.Build(req.Params, total), nil
}

// COMPANY STOCK

// GetCompanyStock aggregates remaining batch quantities per product.
func (s *Service) GetCompanyStock() ([]CompanyStock, error) {
	var rows []CompanyStock
	err := s.db.Model(&ProductBatch{}).
		Select("product_batches.product_id, COALESCE(SUM(product_batches.remaining_quantity), 0) AS quantity, products.category AS product_category").
		Joins("JOIN products ON products.id = product_batches.product_id").
		Group("product_batches.product_id, products.category").
		Order("product_batches.product_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate company stock: %w", err)
	}

	for i := range rows {
		var p Product
		if err := s.db.First(&p, rows[i].ProductID).Error; err == nil {
			rows[i].Product = &p
		}
	}
	return rows, nil
}

// RESELLER STOCK

// ListResellerStock retrieves reseller stock rows with filtering
func (s *Service) ListResellerStock(req *ResellerStockListRequest) ([]ResellerStock, pagination.Pagination, error) {
	req.Normalize()

	var rows []ResellerStock
	var total int64

	query := s.db.Model(&ResellerStock{}).Preload("Product")
	if req.ResellerID > 0 {
		query = query.Where("reseller_id = ?", req.ResellerID)
	}
	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("product_id IN (?)", s.db.Model(&Product{}).Select("id").Where("LOWER(name) LIKE ?", search))
	}
	switch req.InStock {
	case "true", "in":
		query = query.Where("quantity > 0")
	case "false", "out":
		query = query.Where("quantity <= 0")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to count reseller stock: %w", err)
	}

	if err := query.Order("product_id ASC").Offset(req.Offset()).Limit(req.Limit).Find(&rows).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to retrieve reseller stock: %w", err)
	}

	return rows, pagination.Build(req.Params, total), nil
}

// StockFormHelpers lists what a reseller currently holds, for the sale form.
func (s *Service) StockFormHelpers(resellerID uint) ([]StockFormHelper, error) {
	var rows []ResellerStock
	if err := s.db.Preload("Product").Where("reseller_id = ? AND quantity > 0", resellerID).Order("product_id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve stock form helpers: %w", err)
	}

	helpers := make([]StockFormHelper, 0, len(rows))
	for _, row := range rows {
		h := StockFormHelper{
			ID:                row.ProductID,
			Quantity:          row.Quantity,
			LowStockThreshold: row.LowStockThreshold,
		}
		if row.Product != nil {
			h.Name = row.Product.Name
			if h.LowStockThreshold == 0 {
				h.LowStockThreshold = row.Product.LowStockThreshold
			}
		}
		helpers = append(helpers, h)
	}
	return helpers, nil
}

// UpdateResellerThreshold sets a reseller's own low-stock threshold for a
// product they hold.
func (s *Service) UpdateResellerThreshold(resellerID, productID uint, threshold int) (*ResellerStock, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("threshold must be non-negative: %w", apperrors.ErrValidation)
	}

	var row ResellerStock
	if err := s.db.Where("reseller_id = ? AND product_id = ?", resellerID, productID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no stock of product %d: %w", productID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve reseller stock: %w", err)
	}

	row.LowStockThreshold = threshold
	if err := s.db.Save(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to update threshold: %w", err)
	}
	return &row, nil
}
