// internal/domain/distribution/entity.go
package distribution

import (
	"time"

	"github.com/boffobaby/inventory-backend/internal/domain/catalog"
	"github.com/boffobaby/inventory-backend/internal/domain/user"
)

// StockDistribution records a transfer of stock from company batches to a
// reseller. TotalPrice is fixed at creation as quantity * unit_price and
// never recomputed.
type StockDistribution struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ResellerID      uint      `gorm:"not null;index" json:"reseller_id"`
	ProductID       uint      `gorm:"not null;index" json:"product_id"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	UnitPrice       float64   `gorm:"not null" json:"unit_price"`
	TotalPrice      float64   `gorm:"not null" json:"total_price"`
	DateDistributed time.Time `gorm:"not null;index" json:"date_distributed"`
	CreatedAt       time.Time `json:"created_at"`

	// Relationships
	Product *catalog.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	User    *user.User       `gorm:"foreignKey:ResellerID" json:"user,omitempty"`
}

// TableName overrides the table name
func (StockDistribution) TableName() string { return "stock_distributions" }
