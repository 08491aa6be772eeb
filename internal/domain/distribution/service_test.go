// internal/domain/distribution/service_test.go
package distribution

import (
	"testing"
	"time"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/catalog"
	"github.com/boffobaby/inventory-backend/internal/domain/ledger"
	"github.com/boffobaby/inventory-backend/internal/domain/user"
	"github.com/boffobaby/inventory-backend/internal/pkg/apperrors"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
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
		&StockDistribution{},
	))
	return db
}

func seedReseller(t *testing.T, db *gorm.DB) *user.User {
	t.Helper()
	u := &user.User{
		Name:        "Jane Reseller",
		Email:       "jane@example.com",
		Password:    "irrelevant",
		PhoneNumber: "+254711000111",
		Role:        user.RoleReseller,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedProduct(t *testing.T, db *gorm.DB) *catalog.Product {
	t.Helper()
	p := &catalog.Product{
		Name:     "Baby Romper",
		Price:    150,
		Category: "clothing",
		Unit:     "pcs",
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedBatch(t *testing.T, db *gorm.DB, productID uint, number string, qty int, received time.Time) *catalog.ProductBatch {
	t.Helper()
	b := &catalog.ProductBatch{
		ProductID:         productID,
		BatchNumber:       number,
		Quantity:          qty,
		RemainingQuantity: qty,
		PurchasePrice:     80,
		DateReceived:      received,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func TestDistributeConsumesBatchesFIFO(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller := seedReseller(t, db)
	product := seedProduct(t, db)

	b1 := seedBatch(t, db, product.ID, "B1", 30, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	b2 := seedBatch(t, db, product.ID, "B2", 20, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC))

	dist, err := svc.Distribute(&DistributeRequest{
		ResellerID:      reseller.ID,
		ProductID:       product.ID,
		Quantity:        35,
		UnitPrice:       100,
		DateDistributed: "2025-01-10",
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, float64(3500), dist.TotalPrice)

	var got catalog.ProductBatch
	require.NoError(t, db.First(&got, b1.ID).Error)
	assert.Equal(t, 0, got.RemainingQuantity, "oldest batch drains first")
	got = catalog.ProductBatch{}
	require.NoError(t, db.First(&got, b2.ID).Error)
	assert.Equal(t, 15, got.RemainingQuantity)

	var stock catalog.ResellerStock
	require.NoError(t, db.Where("reseller_id = ? AND product_id = ?", reseller.ID, product.ID).First(&stock).Error)
	assert.Equal(t, 35, stock.Quantity)
}

func TestDistributeTieBreaksOnBatchID(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller := seedReseller(t, db)
	product := seedProduct(t, db)

	sameDay := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	b1 := seedBatch(t, db, product.ID, "B1", 10, sameDay)
	b2 := seedBatch(t, db, product.ID, "B2", 10, sameDay)

	_, err := svc.Distribute(&DistributeRequest{
		ResellerID:      reseller.ID,
		ProductID:       product.ID,
		Quantity:        10,
		UnitPrice:       100,
		DateDistributed: "2025-02-02",
	}, 1)
	require.NoError(t, err)

	var got catalog.ProductBatch
	require.NoError(t, db.First(&got, b1.ID).Error)
	assert.Equal(t, 0, got.RemainingQuantity)
	got = catalog.ProductBatch{}
	require.NoError(t, db.First(&got, b2.ID).Error)
	assert.Equal(t, 10, got.RemainingQuantity)
}

func TestDistributeInsufficientStockIsAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller := seedReseller(t, db)
	product := seedProduct(t, db)

	seedBatch(t, db, product.ID, "B1", 30, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Distribute(&DistributeRequest{
		ResellerID:      reseller.ID,
		ProductID:       product.ID,
		Quantity:        31,
		UnitPrice:       100,
		DateDistributed: "2025-01-10",
	}, 1)
	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	var batch catalog.ProductBatch
	require.NoError(t, db.Where("batch_number = ?", "B1").First(&batch).Error)
	assert.Equal(t, 30, batch.RemainingQuantity, "nothing consumed on failure")

	var stockCount int64
	db.Model(&catalog.ResellerStock{}).Count(&stockCount)
	assert.Zero(t, stockCount)

	var movementCount int64
	db.Model(&ledger.StockMovement{}).Count(&movementCount)
	assert.Zero(t, movementCount)
}

func TestDistributeWritesPairedLedgerRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller := seedReseller(t, db)
	product := seedProduct(t, db)
	seedBatch(t, db, product.ID, "B1", 50, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Distribute(&DistributeRequest{
		ResellerID:      reseller.ID,
		ProductID:       product.ID,
		Quantity:        20,
		UnitPrice:       100,
		DateDistributed: "2025-01-10",
	}, 1)
	require.NoError(t, err)

	var movements []ledger.StockMovement
	require.NoError(t, db.Order("id ASC").Find(&movements).Error)
	require.Len(t, movements, 2)

	out, in := movements[0], movements[1]
	assert.Equal(t, ledger.MovementOut, out.MovementType)
	assert.Equal(t, ledger.OwnerCompany, out.OwnerType)
	assert.Nil(t, out.OwnerID)

	assert.Equal(t, ledger.MovementIn, in.MovementType)
	assert.Equal(t, ledger.OwnerReseller, in.OwnerType)
	require.NotNil(t, in.OwnerID)
	assert.Equal(t, reseller.ID, *in.OwnerID)

	assert.Equal(t, out.CorrelationID, in.CorrelationID, "paired rows share one correlation id")
	assert.Equal(t, ledger.SourceDistribution, out.Source)
	assert.Equal(t, ledger.SourceDistribution, in.Source)
}

func TestDistributeIncrementsExistingStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller := seedReseller(t, db)
	product := seedProduct(t, db)
	seedBatch(t, db, product.ID, "B1", 50, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	for i := 0; i < 2; i++ {
		_, err := svc.Distribute(&DistributeRequest{
			ResellerID:      reseller.ID,
			ProductID:       product.ID,
			Quantity:        10,
			UnitPrice:       100,
			DateDistributed: "2025-01-10",
		}, 1)
		require.NoError(t, err)
	}

	var rows []catalog.ResellerStock
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1, "one stock row per reseller and product")
	assert.Equal(t, 20, rows[0].Quantity)
}

func TestListSearchesProductName(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller := seedReseller(t, db)
	product := seedProduct(t, db)
	seedBatch(t, db, product.ID, "B1", 50, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	other := &catalog.Product{
		Name:     "Feeding Bottle",
		Price:    90,
		Category: "feeding",
		Unit:     "pcs",
	}
	require.NoError(t, db.Create(other).Error)
	seedBatch(t, db, other.ID, "B2", 50, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	for _, id := range []uint{product.ID, other.ID} {
		_, err := svc.Distribute(&DistributeRequest{
			ResellerID:      reseller.ID,
			ProductID:       id,
			Quantity:        5,
			UnitPrice:       100,
			DateDistributed: "2025-01-10",
		}, 1)
		require.NoError(t, err)
	}

	rows, _, err := svc.List(&ListRequest{Search: "bottle"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, other.ID, rows[0].ProductID)

	rows, _, err = svc.List(&ListRequest{Search: "socks"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDistributeRejectsNonReseller(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	product := seedProduct(t, db)
	seedBatch(t, db, product.ID, "B1", 50, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	admin := &user.User{
		Name:        "Admin",
		Email:       "admin@example.com",
		Password:    "irrelevant",
		PhoneNumber: "+254711000000",
		Role:        user.RoleAdmin,
	}
	require.NoError(t, db.Create(admin).Error)

	_, err := svc.Distribute(&DistributeRequest{
		ResellerID:      admin.ID,
		ProductID:       product.ID,
		Quantity:        10,
		UnitPrice:       100,
		DateDistributed: "2025-01-10",
	}, 1)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}
