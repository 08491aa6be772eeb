// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/boffobaby/inventory-backend/internal/domain/catalog"
	"github.com/boffobaby/inventory-backend/internal/domain/distribution"
	"github.com/boffobaby/inventory-backend/internal/domain/goodsrequest"
	"github.com/boffobaby/inventory-backend/internal/domain/ledger"
	"github.com/boffobaby/inventory-backend/internal/domain/payment"
	"github.com/boffobaby/inventory-backend/internal/domain/sales"
	"github.com/boffobaby/inventory-backend/internal/domain/user"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	logrus.Info("Running database auto-migrations")

	// Dependency order: users and products first, movement tables after.
	models := []interface{}{
		&user.User{},
		&catalog.Product{},
		&catalog.ProductBatch{},
		&catalog.ResellerStock{},
		&ledger.StockMovement{},
		&distribution.StockDistribution{},
		&goodsrequest.GoodsRequest{},
		&sales.Sale{},
		&payment.Payment{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	logrus.Info("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		// FIFO consumption scans batches by product in received order.
		"CREATE INDEX IF NOT EXISTS idx_product_batches_fifo ON product_batches(product_id, date_received, id)",
		"CREATE INDEX IF NOT EXISTS idx_product_batches_remaining ON product_batches(product_id, remaining_quantity)",

		// Ledger queries filter by product, owner, and time.
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_product_created ON stock_movements(product_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_owner ON stock_movements(owner_type, owner_id)",
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_correlation ON stock_movements(correlation_id)",

		// Distribution and sales history per reseller.
		"CREATE INDEX IF NOT EXISTS idx_stock_distributions_reseller_date ON stock_distributions(reseller_id, date_distributed DESC)",
		"CREATE INDEX IF NOT EXISTS idx_sales_reseller_date ON sales(reseller_id, date_sold DESC)",

		// Goods request triage on the admin dashboard.
		"CREATE INDEX IF NOT EXISTS idx_goods_requests_status ON goods_requests(status, cancelled)",
		"CREATE INDEX IF NOT EXISTS idx_goods_requests_reseller ON goods_requests(reseller_id, created_at DESC)",

		// Payment history and balance aggregation.
		"CREATE INDEX IF NOT EXISTS idx_payments_reseller_date ON payments(reseller_id, date_paid DESC)",
	}

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			logrus.WithError(err).Warn("failed to create index")
		}
	}

	return nil
}

// SeedInitialData inserts the bootstrap admin account. Intended for
// development environments; production admins are created out of band.
func (m *Migration) SeedInitialData() error {
	return m.seedAdminUser()
}

func (m *Migration) seedAdminUser() error {
	var existing user.User
	result := m.db.Where("email = ?", "admin@boffobaby.local").First(&existing)
	if result.Error == nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := user.User{
		Name:        "Administrator",
		Email:       "admin@boffobaby.local",
		Password:    string(hashedPassword),
		PhoneNumber: "+254700000000",
		Role:        user.RoleAdmin,
	}

	if err := m.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logrus.WithField("email", admin.Email).Info("seeded bootstrap admin user")
	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	logrus.Warn("dropping all database tables")

	// Reverse dependency order.
	tables := []string{
		"payments",
		"sales",
		"goods_requests",
		"stock_distributions",
		"stock_movements",
		"reseller_stocks",
		"product_batches",
		"products",
		"users",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			logrus.WithError(err).WithField("table", table).Warn("failed to drop table")
		}
	}

	return nil
}

// GetTableInfo logs row counts per table, a debugging aid for migrations.
func (m *Migration) GetTableInfo() error {
	var tables []string
	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		logrus.WithFields(logrus.Fields{"table": table, "rows": count}).Info("table info")
	}

	return nil
}
