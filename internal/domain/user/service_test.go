// internal/domain/user/service_test.go
package user

import (
	"testing"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/pkg/apperrors"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	cfg := &config.Config{}
	cfg.Security.BcryptCost = bcrypt.MinCost
	return NewService(db, cfg)
}

func createReseller(t *testing.T, svc *Service) *User {
	t.Helper()
	u, err := svc.Create(&CreateRequest{
		Name:        "Jane Reseller",
		Email:       "jane@example.com",
		PhoneNumber: "+254711000111",
		Role:        RoleReseller,
		Password:    "secret123",
	})
	require.NoError(t, err)
	return u
}

func TestCreateHashesPasswordAndLowercasesEmail(t *testing.T) {
	svc := newTestService(t)

	u, err := svc.Create(&CreateRequest{
		Name:        "Jane Reseller",
		Email:       "Jane@Example.COM",
		PhoneNumber: "+254711000111",
		Role:        RoleReseller,
		Password:    "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.NotEqual(t, "secret123", u.Password)

	authed, err := svc.Authenticate("Jane@Example.COM", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, authed.ID)
}

func TestCreateRejectsDuplicateEmailAndUnknownRole(t *testing.T) {
	svc := newTestService(t)
	createReseller(t, svc)

	_, err := svc.Create(&CreateRequest{
		Name:        "Dupe",
		Email:       "JANE@example.com",
		PhoneNumber: "+254711000222",
		Role:        RoleReseller,
		Password:    "secret123",
	})
	require.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.Create(&CreateRequest{
		Name:        "Odd",
		Email:       "odd@example.com",
		PhoneNumber: "+254711000333",
		Role:        "superuser",
		Password:    "secret123",
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	createReseller(t, svc)

	_, err := svc.Authenticate("jane@example.com", "wrong")
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Authenticate("nobody@example.com", "secret123")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	svc := newTestService(t)
	u := createReseller(t, svc)

	err := svc.ChangePassword(u.ID, &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret1",
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	require.NoError(t, svc.ChangePassword(u.ID, &ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret1",
	}))

	_, err = svc.Authenticate("jane@example.com", "newsecret1")
	require.NoError(t, err)
}

func TestDeleteRefusesSelf(t *testing.T) {
	svc := newTestService(t)
	u := createReseller(t, svc)

	err := svc.Delete(u.ID, u.ID)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	require.NoError(t, svc.Delete(u.ID, u.ID+1000))
	_, err = svc.Get(u.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListFiltersByRoleAndSearch(t *testing.T) {
	svc := newTestService(t)
	createReseller(t, svc)

	_, err := svc.Create(&CreateRequest{
		Name:        "Boss",
		Email:       "boss@example.com",
		PhoneNumber: "+254711000999",
		Role:        RoleAdmin,
		Password:    "secret123",
	})
	require.NoError(t, err)

	rows, _, err := svc.List(&ListRequest{Role: RoleReseller})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Jane Reseller", rows[0].Name)

	rows, _, err = svc.List(&ListRequest{Search: "boss"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, RoleAdmin, rows[0].Role)
}
