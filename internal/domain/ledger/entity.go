// internal/domain/ledger/entity.go
package ledger

import (
	"time"

	"github.com/boffobaby/inventory-backend/internal/domain/user"
)

// Movement directions
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// Movement sources
const (
	SourcePurchase     = "PURCHASE"
	SourceDistribution = "DISTRIBUTION"
	SourceSale         = "SALE"
)

// Stock owners
const (
	OwnerCompany  = "COMPANY"
	OwnerReseller = "RESELLER"
)

// StockMovement is one row of the append-only audit trail. Every stock
// quantity in the system can be reconstructed from these rows alone.
// No update or delete path exists.
type StockMovement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductID     uint      `gorm:"not null;index" json:"product_id"`
	OwnerType     string    `gorm:"not null;size:20;index" json:"owner_type"`
	OwnerID       *uint     `gorm:"index" json:"owner_id,omitempty"`
	MovementType  string    `gorm:"not null;size:10;index" json:"movement_type"`
	Source        string    `gorm:"not null;size:20;index" json:"source"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	UnitPrice     float64   `gorm:"not null" json:"unit_price"`
	Note          string    `gorm:"size:500" json:"note,omitempty"`
	CorrelationID string    `gorm:"size:36;index" json:"correlation_id,omitempty"`
	UserID        *uint     `json:"-"` // nil means system-generated
	CreatedAt     time.Time `gorm:"index" json:"created_at"`

	// Relationships
	Product *ProductInfo `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	User    *user.User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// ProductInfo is a read-only projection of the products table, kept local to
// avoid a dependency on the catalog package.
type ProductInfo struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Unit              string  `json:"unit"`
	Category          string  `json:"category"`
	LowStockThreshold int     `json:"low_stock_threshold"`
}

// TableName overrides
func (StockMovement) TableName() string { return "stock_movements" }
func (ProductInfo) TableName() string   { return "products" }
