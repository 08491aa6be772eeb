// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"
	"strings"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/pkg/apperrors"
	"github.com/boffobaby/inventory-backend/internal/pkg/auth"
	"github.com/boffobaby/inventory-backend/internal/pkg/pagination"
	"gorm.io/gorm"
)

// Service handles user business logic
type Service struct {
	db        *gorm.DB
	config    *config.Config
	passwords *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:        db,
		config:    cfg,
		passwords: auth.NewPasswordManager(cfg),
	}
}

// ListRequest represents user list query parameters
type ListRequest struct {
	pagination.Params
	Role   string `form:"role"`
	Search string `form:"search"`
}

// CreateRequest represents user creation data
type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required,min=10"`
	Role        string `json:"role" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// UpdateRequest represents user update data
type UpdateRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Role        *string `json:"role"`
}

// ChangePasswordRequest represents a password change for the current user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// List retrieves users with role filter, search and pagination
func (s *Service) List(req *ListRequest) ([]User, pagination.Pagination, error) {
	req.Normalize()

	var users []User
	var total int64

	query := s.db.Model(&User{})
	if req.Role != "" && req.Role != "all" {
		query = query.Where("role = ?", req.Role)
	}
	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone_number LIKE ?", search, search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to count users: %w", err)
	}

	if err := query.Order("created_at DESC").Offset(req.Offset()).Limit(req.Limit).Find(&users).Error; err != nil {
		return nil, pagination.Pagination{}, fmt.Errorf("failed to retrieve users: %w", err)
	}

	return users, pagination.Build(req.Params, total), nil
}

// Get retrieves a single user by ID
func (s *Service) Get(id uint) (*User, error) {
	var u User
	if err := s.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return &u, nil
}

// GetByEmail retrieves a single user by email
func (s *Service) GetByEmail(email string) (*User, error) {
	var u User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", email, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return &u, nil
}

// Create creates a new user with a hashed password
func (s *Service) Create(req *CreateRequest) (*User, error) {
	if req.Role != RoleAdmin && req.Role != RoleReseller {
		return nil, fmt.Errorf("unknown role %q: %w", req.Role, apperrors.ErrValidation)
	}

	var existing User
	if err := s.db.Where("email = ?", strings.ToLower(req.Email)).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("email %s already registered: %w", req.Email, apperrors.ErrConflict)
	}

	hashed, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:        req.Name,
		Email:       strings.ToLower(req.Email),
		Password:    hashed,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	}
	if err := s.db.Create(u).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// Update applies partial updates to a user
func (s *Service) Update(id uint, req *UpdateRequest) (*User, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = strings.ToLower(*req.Email)
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = *req.PhoneNumber
	}
	if req.Role != nil {
		if *req.Role != RoleAdmin && *req.Role != RoleReseller {
			return nil, fmt.Errorf("unknown role %q: %w", *req.Role, apperrors.ErrValidation)
		}
		u.Role = *req.Role
	}

	if err := s.db.Save(u).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

// Delete soft-deletes a user. Deleting your own account is refused.
func (s *Service) Delete(id, actorID uint) error {
	if id == actorID {
		return fmt.Errorf("cannot delete your own account: %w", apperrors.ErrValidation)
	}
	u, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(u).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// Authenticate verifies credentials and returns the user
func (s *Service) Authenticate(email, password string) (*User, error) {
	u, err := s.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", apperrors.ErrValidation)
	}
	if err := s.passwords.VerifyPassword(password, u.Password); err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", apperrors.ErrValidation)
	}
	return u, nil
}

// ChangePassword verifies the current password and stores a new hash
func (s *Service) ChangePassword(id uint, req *ChangePasswordRequest) error {
	u, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.passwords.VerifyPassword(req.CurrentPassword, u.Password); err != nil {
		return fmt.Errorf("current password is incorrect: %w", apperrors.ErrValidation)
	}
	hashed, err := s.passwords.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.db.Model(u).Update("password", hashed).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
