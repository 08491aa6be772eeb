// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog product
type Product struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Name              string         `gorm:"not null;size:255" json:"name"`
	Description       string         `gorm:"type:text" json:"description,omitempty"`
	Price             float64        `gorm:"not null" json:"price"`
	Category          string         `gorm:"not null;size:100;index" json:"category"`
	Unit              string         `gorm:"not null;size:50" json:"unit"`
	LowStockThreshold int            `gorm:"default:10" json:"low_stock_threshold"`
	Deleted           bool           `gorm:"-" json:"deleted"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProductBatch represents a discrete purchase lot, consumed FIFO by
// distributions. RemainingQuantity only ever decreases and never goes
// negative.
type ProductBatch struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProductID         uint      `gorm:"not null;index" json:"product_id"`
	BatchNumber       string    `gorm:"uniqueIndex;not null;size:100" json:"batch_number"`
	Quantity          int       `gorm:"not null" json:"quantity"`
	RemainingQuantity int       `gorm:"not null" json:"remaining_quantity"`
	PurchasePrice     float64   `gorm:"not null" json:"purchase_price"`
	DateReceived      time.Time `gorm:"not null;index" json:"date_received"`
	CreatedAt         time.Time `json:"created_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"product,omitempty"`
}

// ResellerStock is the per (reseller, product) quantity on hand. Increased by
// distributions, decreased by sales; quantity >= 0 at all times.
type ResellerStock struct {
	ID                uint      `gorm:"primaryKey" json:"-"`
	ResellerID        uint      `gorm:"not null;uniqueIndex:idx_reseller_product" json:"reseller_id"`
	ProductID         uint      `gorm:"not null;uniqueIndex:idx_reseller_product" json:"product_id"`
	Quantity          int       `gorm:"not null;default:0" json:"quantity"`
	LowStockThreshold int       `gorm:"default:0" json:"low_stock_threshold,omitempty"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// CompanyStock is the derived per-product aggregate of remaining batch
// quantities. Never stored; always reconstructed from product_batches.
type CompanyStock struct {
	ProductID       uint     `json:"product_id"`
	Quantity        int      `json:"quantity"`
	ProductCategory string   `json:"product_category,omitempty"`
	Product         *Product `gorm:"-" json:"product,omitempty"`
}

// TableName overrides
func (Product) TableName() string       { return "products" }
func (ProductBatch) TableName() string  { return "product_batches" }
func (ResellerStock) TableName() string { return "reseller_stocks" }

// AfterFind surfaces soft deletion as the deleted flag the dashboards read.
func (p *Product) AfterFind(tx *gorm.DB) error {
	p.Deleted = p.DeletedAt.Valid
	return nil
}

// IsLowStock reports whether the reseller row is at or under its threshold,
// falling back to the product threshold when the reseller has not set one.
func (rs *ResellerStock) IsLowStock() bool {
	threshold := rs.LowStockThreshold
	if threshold == 0 && rs.Product != nil {
		threshold = rs.Product.LowStockThreshold
	}
	return rs.Quantity <= threshold
}
