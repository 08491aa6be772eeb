// internal/domain/goodsrequest/entity.go
package goodsrequest

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boffobaby/inventory-backend/internal/domain/user"
)

// Statuses of a goods request. Cancellation is a separate flag, not a
// status: the dashboards read status and cancelled independently, and a
// cancelled request keeps showing status PENDING underneath its badge.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// RequestLine is one product line of a goods request payload.
type RequestLine struct {
	ProductID      uint    `json:"product_id"`
	ProductName    string  `json:"product_name"`
	Quantity       int     `json:"quantity"`
	PriceRequested float64 `json:"price_requested"`
}

// RequestLines is the ordered payload, stored as a JSON column.
type RequestLines []RequestLine

// Value implements driver.Valuer
func (l RequestLines) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *RequestLines) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into RequestLines", value)
	}
}

// GoodsRequest is a reseller's request for additional stock, pending an
// admin decision.
type GoodsRequest struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	ResellerID  uint         `gorm:"not null;index" json:"reseller_id"`
	Payload     RequestLines `gorm:"type:jsonb;not null" json:"payload"`
	Status      string       `gorm:"not null;size:20;index;default:'PENDING'" json:"status"`
	Cancelled   bool         `gorm:"not null;default:false;index" json:"cancelled"`
	CancelledAt *time.Time   `json:"cancelled_at,omitempty"`
	Comment     string       `gorm:"size:500" json:"comment,omitempty"`
	DecidedBy   *uint        `json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relationships
	User *user.User `gorm:"foreignKey:ResellerID" json:"user,omitempty"`
}

// TableName overrides the table name
func (GoodsRequest) TableName() string { return "goods_requests" }

// IsOpen reports whether the request can still be updated, cancelled or
// decided.
func (r *GoodsRequest) IsOpen() bool {
	return r.Status == StatusPending && !r.Cancelled
}
