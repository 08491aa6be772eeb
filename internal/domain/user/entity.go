// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Roles known to the system. Resellers carry the legacy "staff" role name
// that the dashboards check against.
const (
	RoleAdmin    = "admin"
	RoleReseller = "staff"
)

// User represents an admin or reseller account
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Email       string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password    string         `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	PhoneNumber string         `gorm:"size:20" json:"phone_number"`
	Role        string         `gorm:"not null;size:20;index" json:"role"`
	Deleted     bool           `gorm:"-" json:"deleted"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to handle business logic before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Email should be lowercase
	u.Email = strings.ToLower(u.Email)
	return nil
}

// AfterFind surfaces soft deletion as the deleted flag the dashboards read.
func (u *User) AfterFind(tx *gorm.DB) error {
	u.Deleted = u.DeletedAt.Valid
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsReseller reports whether the user holds the reseller (staff) role.
func (u *User) IsReseller() bool {
	return u.Role == RoleReseller
}
