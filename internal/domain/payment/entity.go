// internal/domain/payment/entity.go
package payment

import (
	"time"

	"github.com/boffobaby/inventory-backend/internal/domain/user"
)

// Payment methods
const (
	MethodMpesa = "MPESA"
	MethodCash  = "CASH"
)

// Who recorded the payment. SYSTEM rows come from automated processes and
// carry no acting user.
const (
	RecordedByAdmin  = "ADMIN"
	RecordedBySystem = "SYSTEM"
)

// Payment is an append-only record of money received from a reseller.
// No update or delete path exists.
type Payment struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ResellerID       uint      `gorm:"not null;index" json:"reseller_id"`
	Amount           float64   `gorm:"not null" json:"amount"`
	Method           string    `gorm:"not null;size:20;index" json:"method"`
	Reference        string    `gorm:"size:100" json:"reference,omitempty"`
	RecordedBy       string    `gorm:"not null;size:20" json:"recorded_by"`
	RecordedByUserID *uint     `json:"-"`
	DatePaid         time.Time `gorm:"not null;index" json:"date_paid"`
	CreatedAt        time.Time `json:"created_at"`

	// Relationships
	User *user.User `gorm:"foreignKey:ResellerID" json:"user,omitempty"`
}

// TableName overrides the table name
func (Payment) TableName() string { return "payments" }

// Account is the derived financial position of a reseller. Balance is what
// the reseller owes the company: value of goods received minus payments
// made. Sales proceeds belong to the reseller and never enter the balance.
type Account struct {
	ResellerID         uint    `json:"reseller_id"`
	TotalStockReceived int     `json:"total_stock_received"`
	TotalValueReceived float64 `json:"total_value_received"`
	TotalSalesValue    float64 `json:"total_sales_value"`
	TotalPaid          float64 `json:"total_paid"`
	TotalCOGS          float64 `json:"total_cogs"`
	Balance            float64 `json:"balance"`
}
