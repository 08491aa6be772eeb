// internal/domain/payment/service_test.go
package payment

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/catalog"
	"github.com/boffobaby/inventory-backend/internal/domain/distribution"
	"github.com/boffobaby/inventory-backend/internal/domain/ledger"
	"github.com/boffobaby/inventory-backend/internal/domain/sales"
	"github.com/boffobaby/inventory-backend/internal/domain/user"
	"github.com/boffobaby/inventory-backend/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
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
		&distribution.StockDistribution{},
		&sales.Sale{},
		&Payment{},
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

func seedDistribution(t *testing.T, db *gorm.DB, resellerID, productID uint, qty int, unitPrice float64) {
	t.Helper()
	require.NoError(t, db.Create(&distribution.StockDistribution{
		ResellerID:      resellerID,
		ProductID:       productID,
		Quantity:        qty,
		UnitPrice:       unitPrice,
		TotalPrice:      float64(qty) * unitPrice,
		DateDistributed: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}).Error)
}

func seedSale(t *testing.T, db *gorm.DB, resellerID, productID uint, qty int, sellingPrice float64) {
	t.Helper()
	require.NoError(t, db.Create(&sales.Sale{
		ResellerID:   resellerID,
		ProductID:    productID,
		Quantity:     qty,
		SellingPrice: sellingPrice,
		TotalAmount:  float64(qty) * sellingPrice,
		DateSold:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}).Error)
}

func TestRecordValidatesMethodAndReseller(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller := seedReseller(t, db)
	adminID := uint(1)

	_, err := svc.Record(&RecordRequest{
		ResellerID: reseller.ID,
		Amount:     100,
		Method:     "CHEQUE",
		DatePaid:   "2025-02-05",
	}, RecordedByAdmin, &adminID)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Record(&RecordRequest{
		ResellerID: 9999,
		Amount:     100,
		Method:     MethodCash,
		DatePaid:   "2025-02-05",
	}, RecordedByAdmin, &adminID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	p, err := svc.Record(&RecordRequest{
		ResellerID: reseller.ID,
		Amount:     100,
		Method:     MethodMpesa,
		Reference:  "QX12AB34",
		DatePaid:   "2025-02-05",
	}, RecordedByAdmin, &adminID)
	require.NoError(t, err)
	assert.Equal(t, RecordedByAdmin, p.RecordedBy)
	assert.Equal(t, "QX12AB34", p.Reference)
}

func TestRecordGeneratesReferenceWhenMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller := seedReseller(t, db)

	p, err := svc.Record(&RecordRequest{
		ResellerID: reseller.ID,
		Amount:     50,
		Method:     MethodCash,
		DatePaid:   "2025-02-05",
	}, RecordedBySystem, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, p.Reference)
	assert.Nil(t, p.RecordedByUserID)
}

func TestAccountForBalanceExcludesSalesValue(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller := seedReseller(t, db)

	seedDistribution(t, db, reseller.ID, 1, 30, 100) // value 3000
	seedSale(t, db, reseller.ID, 1, 10, 250)         // proceeds 2500, not owed

	adminID := uint(1)
	_, err := svc.Record(&RecordRequest{
		ResellerID: reseller.ID,
		Amount:     1200,
		Method:     MethodMpesa,
		DatePaid:   "2025-02-05",
	}, RecordedByAdmin, &adminID)
	require.NoError(t, err)

	account, err := svc.AccountFor(reseller.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, account.TotalStockReceived)
	assert.Equal(t, float64(3000), account.TotalValueReceived)
	assert.Equal(t, float64(2500), account.TotalSalesValue)
	assert.Equal(t, float64(1200), account.TotalPaid)
	assert.Equal(t, float64(1800), account.Balance, "balance ignores sales proceeds")
}

func TestAccountForCOGSUsesAverageReceivedPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller := seedReseller(t, db)

	// 10 @ 100 and 10 @ 200 average to 150 per unit.
	seedDistribution(t, db, reseller.ID, 1, 10, 100)
	seedDistribution(t, db, reseller.ID, 1, 10, 200)
	seedSale(t, db, reseller.ID, 1, 4, 300)

	account, err := svc.AccountFor(reseller.ID)
	require.NoError(t, err)
	assert.InDelta(t, 600, account.TotalCOGS, 0.001, "4 units at the 150 average")
	assert.InDelta(t, 1200, account.TotalSalesValue, 0.001)
}

func TestAccountForEmptyReseller(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller := seedReseller(t, db)

	account, err := svc.AccountFor(reseller.ID)
	require.NoError(t, err)
	assert.Zero(t, account.TotalStockReceived)
	assert.Zero(t, account.Balance)
	assert.Zero(t, account.TotalCOGS)
}

func TestAccountForSeparatesProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller := seedReseller(t, db)

	seedDistribution(t, db, reseller.ID, 1, 10, 100)
	seedDistribution(t, db, reseller.ID, 2, 10, 500)
	seedSale(t, db, reseller.ID, 1, 5, 150)

	account, err := svc.AccountFor(reseller.ID)
	require.NoError(t, err)
	assert.InDelta(t, 500, account.TotalCOGS, 0.001, "cost of product 1 only, at its own average")
}

func TestListFiltersByRecordedBy(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller := seedReseller(t, db)
	adminID := uint(1)

	_, err := svc.Record(&RecordRequest{
		ResellerID: reseller.ID,
		Amount:     10,
		Method:     MethodCash,
		DatePaid:   "2025-02-05",
	}, RecordedByAdmin, &adminID)
	require.NoError(t, err)
	_, err = svc.Record(&RecordRequest{
		ResellerID: reseller.ID,
		Amount:     20,
		Method:     MethodMpesa,
		DatePaid:   "2025-02-06",
	}, RecordedBySystem, nil)
	require.NoError(t, err)

	rows, _, err := svc.List(&ListRequest{RecordedBy: RecordedBySystem})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(20), rows[0].Amount)

	rows, _, err = svc.List(&ListRequest{RecordedBy: "all"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestListSearchesResellerNameAndReference(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller := seedReseller(t, db)

	other := &user.User{
		Name:        "Mary Wanjiku",
		Email:       "mary@example.com",
		Password:    "irrelevant",
		PhoneNumber: "+254711000222",
		Role:        user.RoleReseller,
	}
	require.NoError(t, db.Create(other).Error)

	adminID := uint(1)
	_, err := svc.Record(&RecordRequest{
		ResellerID: reseller.ID,
		Amount:     10,
		Method:     MethodCash,
		Reference:  "QX12AB34",
		DatePaid:   "2025-02-05",
	}, RecordedByAdmin, &adminID)
	require.NoError(t, err)
	_, err = svc.Record(&RecordRequest{
		ResellerID: other.ID,
		Amount:     20,
		Method:     MethodMpesa,
		Reference:  "ZZ99YY88",
		DatePaid:   "2025-02-06",
	}, RecordedByAdmin, &adminID)
	require.NoError(t, err)

	rows, _, err := svc.List(&ListRequest{Search: "wanjiku"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, other.ID, rows[0].ResellerID)

	rows, _, err = svc.List(&ListRequest{Search: "qx12"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, reseller.ID, rows[0].ResellerID)
}

func TestListRequestQueryBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet,
		"/payments?search=jane&recorded_by=ADMIN&method=CASH&date_from=2025-02-01&date_to=2025-02-28", nil)

	var req ListRequest
	require.NoError(t, c.ShouldBindQuery(&req))
	assert.Equal(t, "jane", req.Search)
	assert.Equal(t, RecordedByAdmin, req.RecordedBy)
	assert.Equal(t, MethodCash, req.Method)
	assert.Equal(t, "2025-02-01", req.FromDate)
	assert.Equal(t, "2025-02-28", req.ToDate)
}

func TestListFiltersByMethod(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, &config.Config{})
	reseller := seedReseller(t, db)
	adminID := uint(1)

	for _, method := range []string{MethodCash, MethodMpesa, MethodMpesa} {
		_, err := svc.Record(&RecordRequest{
			ResellerID: reseller.ID,
			Amount:     10,
			Method:     method,
			DatePaid:   "2025-02-05",
		}, RecordedByAdmin, &adminID)
		require.NoError(t, err)
	}

	rows, page, err := svc.List(&ListRequest{Method: MethodMpesa})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, int64(2), page.Total)
}
