// internal/domain/sales/service_test.go
package sales

import (
	"testing"

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
		&catalog.ResellerStock{},
		&ledger.StockMovement{},
		&Sale{},
	))
	return db
}

func seedStock(t *testing.T, db *gorm.DB, qty int) (*user.User, *catalog.Product) {
	t.Helper()

	reseller := &user.User{
		Name:        "Jane Reseller",
		Email:       "jane@example.com",
		Password:    "irrelevant",
		PhoneNumber: "+254711000111",
		Role:        user.RoleReseller,
	}
	require.NoError(t, db.Create(reseller).Error)

	product := &catalog.Product{
		Name:     "Baby Romper",
		Price:    150,
		Category: "clothing",
		Unit:     "pcs",
	}
	require.NoError(t, db.Create(product).Error)

	require.NoError(t, db.Create(&catalog.ResellerStock{
		ResellerID: reseller.ID,
		ProductID:  product.ID,
		Quantity:   qty,
	}).Error)

	return reseller, product
}

func TestRecordDecrementsStockAndWritesLedger(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller, product := seedStock(t, db, 10)

	sale, err := svc.Record(reseller.ID, &RecordRequest{
		ProductID:    product.ID,
		Quantity:     4,
		SellingPrice: 200,
		DateSold:     "2025-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, float64(800), sale.TotalAmount)

	var stock catalog.ResellerStock
	require.NoError(t, db.Where("reseller_id = ?", reseller.ID).First(&stock).Error)
	assert.Equal(t, 6, stock.Quantity)

	var movements []ledger.StockMovement
	require.NoError(t, db.Find(&movements).Error)
	require.Len(t, movements, 1, "a sale writes a single OUT row")
	assert.Equal(t, ledger.MovementOut, movements[0].MovementType)
	assert.Equal(t, ledger.OwnerReseller, movements[0].OwnerType)
	assert.Equal(t, ledger.SourceSale, movements[0].Source)
	assert.Equal(t, 4, movements[0].Quantity)
}

func TestRecordRejectsOversell(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller, product := seedStock(t, db, 3)

	_, err := svc.Record(reseller.ID, &RecordRequest{
		ProductID:    product.ID,
		Quantity:     4,
		SellingPrice: 200,
		DateSold:     "2025-03-01",
	})
	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	var stock catalog.ResellerStock
	require.NoError(t, db.Where("reseller_id = ?", reseller.ID).First(&stock).Error)
	assert.Equal(t, 3, stock.Quantity, "failed sale leaves stock untouched")

	var saleCount int64
	db.Model(&Sale{}).Count(&saleCount)
	assert.Zero(t, saleCount)
}

func TestRecordRejectsUnknownStockRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller, _ := seedStock(t, db, 3)

	_, err := svc.Record(reseller.ID, &RecordRequest{
		ProductID:    9999,
		Quantity:     1,
		SellingPrice: 200,
		DateSold:     "2025-03-01",
	})
	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)
}

func TestRecordCanSellOut(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller, product := seedStock(t, db, 5)

	_, err := svc.Record(reseller.ID, &RecordRequest{
		ProductID:    product.ID,
		Quantity:     5,
		SellingPrice: 200,
		DateSold:     "2025-03-01",
	})
	require.NoError(t, err)

	var stock catalog.ResellerStock
	require.NoError(t, db.Where("reseller_id = ?", reseller.ID).First(&stock).Error)
	assert.Equal(t, 0, stock.Quantity)
}

func TestListScopesByReseller(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller, product := seedStock(t, db, 10)

	other := &user.User{
		Name:        "Other",
		Email:       "other@example.com",
		Password:    "irrelevant",
		PhoneNumber: "+254711000222",
		Role:        user.RoleReseller,
	}
	require.NoError(t, db.Create(other).Error)
	require.NoError(t, db.Create(&catalog.ResellerStock{
		ResellerID: other.ID,
		ProductID:  product.ID,
		Quantity:   10,
	}).Error)

	for _, id := range []uint{reseller.ID, other.ID} {
		_, err := svc.Record(id, &RecordRequest{
			ProductID:    product.ID,
			Quantity:     1,
			SellingPrice: 200,
			DateSold:     "2025-03-01",
		})
		require.NoError(t, err)
	}

	rows, page, err := svc.List(&ListRequest{ResellerID: reseller.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, reseller.ID, rows[0].ResellerID)
	assert.Equal(t, int64(1), page.Total)
}
