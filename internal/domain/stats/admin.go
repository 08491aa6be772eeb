// internal/domain/stats/admin.go
package stats

import (
	"fmt"
	"time"

	"github.com/boffobaby/inventory-backend/internal/domain/catalog"
	"github.com/boffobaby/inventory-backend/internal/domain/distribution"
	"github.com/boffobaby/inventory-backend/internal/domain/goodsrequest"
	"github.com/boffobaby/inventory-backend/internal/domain/ledger"
	"github.com/boffobaby/inventory-backend/internal/domain/payment"
	"github.com/boffobaby/inventory-backend/internal/domain/sales"
	"github.com/boffobaby/inventory-backend/internal/domain/user"
)

const (
	recentActivityLimit = 10
	topResellerLimit    = 5
	chartDays           = 7
)

// companyStockRow joins batch remainders with product metadata.
type companyStockRow struct {
	ProductID         uint
	ProductName       string
	Quantity          int
	LowStockThreshold int
}

func (s *Service) companyStockRows() ([]companyStockRow, error) {
	var rows []companyStockRow
	err := s.db.Model(&catalog.ProductBatch{}).
		Select("product_batches.product_id, products.name AS product_name, COALESCE(SUM(product_batches.remaining_quantity), 0) AS quantity, products.low_stock_threshold").
		Joins("JOIN products ON products.id = product_batches.product_id AND products.deleted_at IS NULL").
		Group("product_batches.product_id, products.name, products.low_stock_threshold").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate company stock: %w", err)
	}
	return rows, nil
}

func (s *Service) adminDashboard() (*AdminDashboardStats, error) {
	out := &AdminDashboardStats{
		RecentActivities: []RecentActivity{},
		StockAlerts:      []StockAlert{},
		TopResellers:     []TopReseller{},
		WeeklyStockChart: []StockChartData{},
	}

	if err := s.db.Model(&user.User{}).Where("role = ?", user.RoleReseller).Count(&out.ActiveResellers).Error; err != nil {
		return nil, fmt.Errorf("failed to count resellers: %w", err)
	}

	stock, err := s.companyStockRows()
	if err != nil {
		return nil, err
	}
	for _, row := range stock {
		out.TotalCompanyStock += int64(row.Quantity)
		if row.Quantity <= row.LowStockThreshold {
			out.CompanyLowStock++
			alertType := "low_stock"
			if row.Quantity == 0 {
				alertType = "out_of_stock"
			}
			out.StockAlerts = append(out.StockAlerts, StockAlert{
				ID:                row.ProductID,
				ProductName:       row.ProductName,
				Quantity:          row.Quantity,
				LowStockThreshold: row.LowStockThreshold,
				AlertType:         alertType,
			})
		}
	}

	if err := s.db.Model(&payment.Payment{}).
		Select("COALESCE(SUM(amount), 0)").Scan(&out.PaymentReceived).Error; err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}

	var dist struct {
		Units int64
		Value float64
	}
	err = s.db.Model(&distribution.StockDistribution{}).
		Select("COALESCE(SUM(quantity), 0) AS units, COALESCE(SUM(total_price), 0) AS value").
		Scan(&dist).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate distributions: %w", err)
	}
	out.StockDistributedUnits = dist.Units
	out.TotalValueDistributed = dist.Value

	err = s.db.Model(&goodsrequest.GoodsRequest{}).
		Where("status = ? AND cancelled = ?", goodsrequest.StatusPending, false).
		Count(&out.TotalPendingRequests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count pending requests: %w", err)
	}

	if out.RecentActivities, err = s.recentActivities(); err != nil {
		return nil, err
	}
	if out.TopResellers, err = s.topResellers(); err != nil {
		return nil, err
	}
	if out.WeeklyStockChart, err = s.weeklyStockChart(); err != nil {
		return nil, err
	}

	return out, nil
}

// recentActivities renders the newest ledger rows as a human-readable feed.
func (s *Service) recentActivities() ([]RecentActivity, error) {
	var movements []ledger.StockMovement
	err := s.db.Preload("Product").Preload("User").
		Order("created_at DESC, id DESC").
		Limit(recentActivityLimit).
		Find(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent movements: %w", err)
	}

	activities := make([]RecentActivity, 0, len(movements))
	for _, m := range movements {
		productName := fmt.Sprintf("product #%d", m.ProductID)
		if m.Product != nil {
			productName = m.Product.Name
		}

		var title, description string
		switch m.Source {
		case ledger.SourcePurchase:
			title = "Stock purchase"
			description = fmt.Sprintf("%d units of %s received into company stock", m.Quantity, productName)
		case ledger.SourceDistribution:
			if m.MovementType == ledger.MovementIn {
				title = "Stock distributed"
				description = fmt.Sprintf("%d units of %s delivered to a reseller", m.Quantity, productName)
			} else {
				title = "Stock distributed"
				description = fmt.Sprintf("%d units of %s left company stock", m.Quantity, productName)
			}
		case ledger.SourceSale:
			title = "Sale recorded"
			description = fmt.Sprintf("%d units of %s sold", m.Quantity, productName)
		default:
			title = "Stock movement"
			description = fmt.Sprintf("%d units of %s", m.Quantity, productName)
		}

		activities = append(activities, RecentActivity{
			ID:          m.ID,
			Title:       title,
			Description: description,
			Type:        m.Source,
			CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		})
	}
	return activities, nil
}

type resellerSalesRow struct {
	ResellerID uint
	Name       string
	Value      float64
}

// topResellers ranks by all-time sales value and attaches current stock
// value and a 30-day performance trend.
func (s *Service) topResellers() ([]TopReseller, error) {
	var ranked []resellerSalesRow
	err := s.db.Model(&sales.Sale{}).
		Select("sales.reseller_id, users.name, COALESCE(SUM(sales.total_amount), 0) AS value").
		Joins("JOIN users ON users.id = sales.reseller_id").
		Group("sales.reseller_id, users.name").
		Order("value DESC").
		Limit(topResellerLimit).
		Scan(&ranked).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank resellers: %w", err)
	}

	now := time.Now()
	windowStart := now.AddDate(0, 0, -30)
	previousStart := now.AddDate(0, 0, -60)

	top := make([]TopReseller, 0, len(ranked))
	for _, row := range ranked {
		var stockValue float64
		err := s.db.Model(&catalog.ResellerStock{}).
			Select("COALESCE(SUM(reseller_stocks.quantity * products.price), 0)").
			Joins("JOIN products ON products.id = reseller_stocks.product_id").
			Where("reseller_stocks.reseller_id = ?", row.ResellerID).
			Scan(&stockValue).Error
		if err != nil {
			return nil, fmt.Errorf("failed to value reseller stock: %w", err)
		}

		var current, previous float64
		err = s.db.Model(&sales.Sale{}).
			Select("COALESCE(SUM(total_amount), 0)").
			Where("reseller_id = ? AND date_sold >= ?", row.ResellerID, windowStart).
			Scan(&current).Error
		if err != nil {
			return nil, fmt.Errorf("failed to sum current window: %w", err)
		}
		err = s.db.Model(&sales.Sale{}).
			Select("COALESCE(SUM(total_amount), 0)").
			Where("reseller_id = ? AND date_sold >= ? AND date_sold < ?", row.ResellerID, previousStart, windowStart).
			Scan(&previous).Error
		if err != nil {
			return nil, fmt.Errorf("failed to sum previous window: %w", err)
		}

		var performance float64
		switch {
		case previous > 0:
			performance = (current - previous) / previous * 100
		case current > 0:
			performance = 100
		}

		top = append(top, TopReseller{
			ID:              row.ResellerID,
			Name:            row.Name,
			TotalSalesValue: row.Value,
			StockValue:      stockValue,
			Performance:     performance,
		})
	}
	return top, nil
}

// weeklyStockChart buckets the last seven days of company movements by day.
// Bucketing happens in Go so the query stays portable across SQL dialects.
func (s *Service) weeklyStockChart() ([]StockChartData, error) {
	start := time.Now().AddDate(0, 0, -(chartDays - 1)).Truncate(24 * time.Hour)

	var movements []ledger.StockMovement
	err := s.db.Model(&ledger.StockMovement{}).
		Select("movement_type, source, quantity, created_at").
		Where("owner_type = ? AND created_at >= ?", ledger.OwnerCompany, start).
		Find(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly movements: %w", err)
	}

	inByDay := make(map[string]int, chartDays)
	outByDay := make(map[string]int, chartDays)
	for _, m := range movements {
		day := m.CreatedAt.Format("2006-01-02")
		switch m.MovementType {
		case ledger.MovementIn:
			inByDay[day] += m.Quantity
		case ledger.MovementOut:
			outByDay[day] += m.Quantity
		}
	}

	chart := make([]StockChartData, 0, chartDays)
	for i := 0; i < chartDays; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		chart = append(chart, StockChartData{
			Date:        day,
			InStock:     inByDay[day],
			Distributed: outByDay[day],
		})
	}
	return chart, nil
}

func (s *Service) productsStats() (*ProductsStats, error) {
	out := &ProductsStats{}

	stock, err := s.companyStockRows()
	if err != nil {
		return nil, err
	}
	byProduct := make(map[uint]int, len(stock))
	for _, row := range stock {
		byProduct[row.ProductID] = row.Quantity
		out.TotalUnits += int64(row.Quantity)
	}

	var products []catalog.Product
	if err := s.db.Select("id, low_stock_threshold").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	for _, p := range products {
		quantity := byProduct[p.ID]
		if quantity == 0 {
			out.OutOfStock++
		} else if quantity <= p.LowStockThreshold {
			out.LowStockItems++
		}
	}
	return out, nil
}

func (s *Service) batchesStats() (*BatchesStats, error) {
	out := &BatchesStats{}

	err := s.db.Model(&catalog.ProductBatch{}).Count(&out.TotalBatches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count batches: %w", err)
	}
	err = s.db.Model(&catalog.ProductBatch{}).
		Where("remaining_quantity > 0").
		Count(&out.ActiveBatches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active batches: %w", err)
	}

	var totals struct {
		TotalValue     float64
		RemainingValue float64
	}
	err = s.db.Model(&catalog.ProductBatch{}).
		Select("COALESCE(SUM(quantity * purchase_price), 0) AS total_value, COALESCE(SUM(remaining_quantity * purchase_price), 0) AS remaining_value").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to value batches: %w", err)
	}
	out.TotalValue = totals.TotalValue
	out.RemainingValue = totals.RemainingValue
	return out, nil
}

func (s *Service) distributionsStats() (*DistributionsStats, error) {
	out := &DistributionsStats{}

	var totals struct {
		Count int64
		Units int64
		Value float64
	}
	err := s.db.Model(&distribution.StockDistribution{}).
		Select("COUNT(*) AS count, COALESCE(SUM(quantity), 0) AS units, COALESCE(SUM(total_price), 0) AS value").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate distributions: %w", err)
	}
	out.TotalDistribution = totals.Count
	out.UnitsDistributed = totals.Units
	out.TotalValue = totals.Value

	err = s.db.Model(&distribution.StockDistribution{}).
		Distinct("reseller_id").
		Count(&out.ActiveResellers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active resellers: %w", err)
	}
	return out, nil
}

func (s *Service) goodsRequestsStats() (*GoodsRequestsStats, error) {
	out := &GoodsRequestsStats{}

	err := s.db.Model(&goodsrequest.GoodsRequest{}).
		Where("status = ? AND cancelled = ?", goodsrequest.StatusPending, false).
		Count(&out.TotalPending).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count pending requests: %w", err)
	}
	err = s.db.Model(&goodsrequest.GoodsRequest{}).
		Where("status = ?", goodsrequest.StatusApproved).
		Count(&out.TotalApproved).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count approved requests: %w", err)
	}
	err = s.db.Model(&goodsrequest.GoodsRequest{}).
		Where("status = ?", goodsrequest.StatusRejected).
		Count(&out.TotalRejected).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count rejected requests: %w", err)
	}
	err = s.db.Model(&goodsrequest.GoodsRequest{}).
		Where("cancelled = ?", true).
		Count(&out.TotalCancelled).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count cancelled requests: %w", err)
	}
	return out, nil
}

// paymentsStats serves both roles; resellerID 0 means all resellers.
func (s *Service) paymentsStats(resellerID uint) (*PaymentsStats, error) {
	out := &PaymentsStats{}

	query := s.db.Model(&payment.Payment{})
	if resellerID > 0 {
		query = query.Where("reseller_id = ?", resellerID)
	}

	var totals struct {
		Count int64
		Total float64
		Cash  float64
		Mpesa float64
	}
	err := query.
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total, "+
			"COALESCE(SUM(CASE WHEN method = ? THEN amount ELSE 0 END), 0) AS cash, "+
			"COALESCE(SUM(CASE WHEN method = ? THEN amount ELSE 0 END), 0) AS mpesa",
			payment.MethodCash, payment.MethodMpesa).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payments: %w", err)
	}

	out.TotalPayments = totals.Count
	out.TotalReceived = totals.Total
	out.CashTotal = totals.Cash
	out.MpesaTotal = totals.Mpesa
	return out, nil
}

func (s *Service) resellersStats() (*ResellersStats, error) {
	out := &ResellersStats{}

	err := s.db.Model(&user.User{}).
		Where("role = ?", user.RoleReseller).
		Count(&out.TotalResellers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count resellers: %w", err)
	}

	err = s.db.Model(&distribution.StockDistribution{}).
		Distinct("reseller_id").
		Count(&out.ActiveResellers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active resellers: %w", err)
	}

	var totalStockOut int64
	err = s.db.Model(&distribution.StockDistribution{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&totalStockOut).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum distributed units: %w", err)
	}
	out.TotalStockOut = totalStockOut

	// Outstanding = value distributed minus payments, across all resellers.
	var valueDistributed, totalPaid float64
	err = s.db.Model(&distribution.StockDistribution{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&valueDistributed).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum distributed value: %w", err)
	}
	err = s.db.Model(&payment.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalPaid).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}
	out.OutstandingPayments = valueDistributed - totalPaid
	return out, nil
}

func (s *Service) stockMovementsStats() (*StockMovementsStats, error) {
	out := &StockMovementsStats{}

	err := s.db.Model(&ledger.StockMovement{}).Count(&out.TotalMovements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count movements: %w", err)
	}

	var in, outUnits int64
	err = s.db.Model(&ledger.StockMovement{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("movement_type = ?", ledger.MovementIn).
		Scan(&in).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum stock in: %w", err)
	}
	err = s.db.Model(&ledger.StockMovement{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("movement_type = ?", ledger.MovementOut).
		Scan(&outUnits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum stock out: %w", err)
	}

	out.TotalStockIn = in
	out.TotalStockOut = outUnits
	out.NetMovement = in - outUnits
	return out, nil
}
