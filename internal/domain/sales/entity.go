// internal/domain/sales/entity.go
package sales

import (
	"time"

	"github.com/boffobaby/inventory-backend/internal/domain/catalog"
	"github.com/boffobaby/inventory-backend/internal/domain/user"
)

// Sale records a reseller selling from their own stock. TotalAmount is fixed
// at creation as quantity * selling_price.
type Sale struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ResellerID   uint      `gorm:"not null;index" json:"reseller_id"`
	ProductID    uint      `gorm:"not null;index" json:"product_id"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	SellingPrice float64   `gorm:"not null" json:"selling_price"`
	TotalAmount  float64   `gorm:"not null" json:"total_amount"`
	DateSold     time.Time `gorm:"not null;index" json:"date_sold"`
	CreatedAt    time.Time `json:"created_at"`

	// Relationships
	Product *catalog.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	User    *user.User       `gorm:"foreignKey:ResellerID" json:"user,omitempty"`
}

// TableName overrides the table name
func (Sale) TableName() string { return "sales" }
