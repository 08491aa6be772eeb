// internal/domain/goodsrequest/service_test.go
package goodsrequest

import (
	"testing"
	"time"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/catalog"
	"github.com/boffobaby/inventory-backend/internal/domain/distribution"
	"github.com/boffobaby/inventory-backend/internal/domain/ledger"
	"github.com/boffobaby/inventory-backend/internal/domain/user"
	"github.com/boffobaby/inventory-backend/internal/pkg/apperrors"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db       *gorm.DB
	svc      *Service
	reseller *user.User
	admin    *user.User
	product  *catalog.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&user.User{},
		&catalog.Product{},
		&catalog.ProductBatch{},
		&catalog.ResellerStock{},
		&ledger.StockMovement{},
		&distribution.StockDistribution{},
		&GoodsRequest{},
	))

	cfg := &config.Config{}
	f := &fixture{
		db:  db,
		svc: NewService(db, cfg, distribution.NewService(db, cfg)),
	}

	f.admin = &user.User{
		Name:        "Admin",
		Email:       "admin@example.com",
		Password:    "irrelevant",
		PhoneNumber: "+254711000000",
		Role:        user.RoleAdmin,
	}
	require.NoError(t, db.Create(f.admin).Error)

	f.reseller = &user.User{
		Name:        "Jane Reseller",
		Email:       "jane@example.com",
		Password:    "irrelevant",
		PhoneNumber: "+254711000111",
		Role:        user.RoleReseller,
	}
	require.NoError(t, db.Create(f.reseller).Error)

	f.product = &catalog.Product{
		Name:     "Baby Romper",
		Price:    150,
		Category: "clothing",
		Unit:     "pcs",
	}
	require.NoError(t, db.Create(f.product).Error)

	return f
}

func (f *fixture) seedBatch(t *testing.T, qty int) {
	t.Helper()
	require.NoError(t, f.db.Create(&catalog.ProductBatch{
		ProductID:         f.product.ID,
		BatchNumber:       "B-" + time.Now().Format("150405.000000000"),
		Quantity:          qty,
		RemainingQuantity: qty,
		PurchasePrice:     80,
		DateReceived:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}).Error)
}

func (f *fixture) openRequest(t *testing.T, qty int) *GoodsRequest {
	t.Helper()
	r, err := f.svc.Create(f.reseller.ID, &CreateRequest{
		Data: []RequestLine{{ProductID: f.product.ID, Quantity: qty, PriceRequested: 120}},
	})
	require.NoError(t, err)
	return r
}

func TestCreateStartsPending(t *testing.T) {
	f := newFixture(t)

	r := f.openRequest(t, 5)
	assert.Equal(t, StatusPending, r.Status)
	assert.False(t, r.Cancelled)
	assert.True(t, r.IsOpen())
}

func TestCreateRejectsEmptyPayload(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(f.reseller.ID, &CreateRequest{Data: []RequestLine{}})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.Create(f.reseller.ID, &CreateRequest{
		Data: []RequestLine{{ProductID: f.product.ID, Quantity: 0}},
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestApproveCreatesDistributions(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(t, 50)
	r := f.openRequest(t, 5)

	decided, err := f.svc.Decide(r.ID, f.admin.ID, &DecideRequest{
		Status:  "approved",
		Comment: "stock available",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, decided.Status)

	var dists []distribution.StockDistribution
	require.NoError(t, f.db.Find(&dists).Error)
	require.Len(t, dists, 1)
	assert.Equal(t, f.reseller.ID, dists[0].ResellerID)
	assert.Equal(t, 5, dists[0].Quantity)
	assert.Equal(t, float64(120), dists[0].UnitPrice)

	var stock catalog.ResellerStock
	require.NoError(t, f.db.Where("reseller_id = ?", f.reseller.ID).First(&stock).Error)
	assert.Equal(t, 5, stock.Quantity)
}

func TestApproveRollsBackOnInsufficientStock(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(t, 3)
	r := f.openRequest(t, 5)

	_, err := f.svc.Decide(r.ID, f.admin.ID, &DecideRequest{
		Status:  "APPROVED",
		Comment: "trying anyway",
	})
	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	var got GoodsRequest
	require.NoError(t, f.db.First(&got, r.ID).Error)
	assert.Equal(t, StatusPending, got.Status, "failed approval leaves the request open")

	var distCount int64
	f.db.Model(&distribution.StockDistribution{}).Count(&distCount)
	assert.Zero(t, distCount)

	var batch catalog.ProductBatch
	require.NoError(t, f.db.Where("product_id = ?", f.product.ID).First(&batch).Error)
	assert.Equal(t, 3, batch.RemainingQuantity)
}

func TestDecideIsOnce(t *testing.T) {
	f := newFixture(t)
	r := f.openRequest(t, 5)

	_, err := f.svc.Decide(r.ID, f.admin.ID, &DecideRequest{Status: "REJECTED", Comment: "no"})
	require.NoError(t, err)

	_, err = f.svc.Decide(r.ID, f.admin.ID, &DecideRequest{Status: "REJECTED", Comment: "again"})
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestDecideRequiresComment(t *testing.T) {
	f := newFixture(t)
	r := f.openRequest(t, 5)

	_, err := f.svc.Decide(r.ID, f.admin.ID, &DecideRequest{Status: "REJECTED", Comment: "   "})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.Decide(r.ID, f.admin.ID, &DecideRequest{Status: "MAYBE", Comment: "?"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCancelBlocksFurtherTransitions(t *testing.T) {
	f := newFixture(t)
	r := f.openRequest(t, 5)

	cancelled, err := f.svc.Cancel(r.ID, f.reseller.ID)
	require.NoError(t, err)
	assert.True(t, cancelled.Cancelled)
	assert.Equal(t, StatusPending, cancelled.Status, "cancellation keeps the status")
	require.NotNil(t, cancelled.CancelledAt)

	_, err = f.svc.Decide(r.ID, f.admin.ID, &DecideRequest{Status: "APPROVED", Comment: "too late"})
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = f.svc.Update(r.ID, f.reseller.ID, &UpdateRequest{
		Data: []RequestLine{{ProductID: f.product.ID, Quantity: 1}},
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = f.svc.Cancel(r.ID, f.reseller.ID)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestUpdateReplacesPayloadWhilePending(t *testing.T) {
	f := newFixture(t)
	r := f.openRequest(t, 5)

	updated, err := f.svc.Update(r.ID, f.reseller.ID, &UpdateRequest{
		Data: []RequestLine{{ProductID: f.product.ID, Quantity: 9, PriceRequested: 110}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Payload, 1)
	assert.Equal(t, 9, updated.Payload[0].Quantity)

	var got GoodsRequest
	require.NoError(t, f.db.First(&got, r.ID).Error)
	require.Len(t, got.Payload, 1)
	assert.Equal(t, 9, got.Payload[0].Quantity)
}

func TestUpdateAndCancelEnforceOwnership(t *testing.T) {
	f := newFixture(t)
	r := f.openRequest(t, 5)

	other := &user.User{
		Name:        "Other",
		Email:       "other@example.com",
		Password:    "irrelevant",
		PhoneNumber: "+254711000222",
		Role:        user.RoleReseller,
	}
	require.NoError(t, f.db.Create(other).Error)

	_, err := f.svc.Update(r.ID, other.ID, &UpdateRequest{
		Data: []RequestLine{{ProductID: f.product.ID, Quantity: 1}},
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.svc.Cancel(r.ID, other.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListFiltersByStatusAndCancelled(t *testing.T) {
	f := newFixture(t)
	f.seedBatch(t, 50)

	open := f.openRequest(t, 1)
	approved := f.openRequest(t, 2)
	toCancel := f.openRequest(t, 3)

	_, err := f.svc.Decide(approved.ID, f.admin.ID, &DecideRequest{Status: "APPROVED", Comment: "ok"})
	require.NoError(t, err)
	_, err = f.svc.Cancel(toCancel.ID, f.reseller.ID)
	require.NoError(t, err)

	rows, _, err := f.svc.List(&ListRequest{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, open.ID, rows[0].ID)

	rows, _, err = f.svc.List(&ListRequest{Status: "cancelled"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, toCancel.ID, rows[0].ID)

	rows, _, err = f.svc.List(&ListRequest{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
