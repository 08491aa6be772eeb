// internal/domain/stats/reseller.go
package stats

import (
	"fmt"
	"time"

	"github.com/boffobaby/inventory-backend/internal/domain/catalog"
	"github.com/boffobaby/inventory-backend/internal/domain/goodsrequest"
	"github.com/boffobaby/inventory-backend/internal/domain/sales"
)

func (s *Service) resellerDashboard(resellerID uint) (*DashboardStats, error) {
	out := &DashboardStats{
		RecentSales:   []RecentSale{},
		StockOverview: []StockOverview{},
	}

	account, err := s.payments.AccountFor(resellerID)
	if err != nil {
		return nil, err
	}
	out.OutstandingBalance = account.Balance
	out.Profit = account.TotalSalesValue - account.TotalCOGS
	out.TotalSales.SalesValue = account.TotalSalesValue

	err = s.db.Model(&sales.Sale{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("reseller_id = ?", resellerID).
		Scan(&out.TotalSales.UnitsSold).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum units sold: %w", err)
	}

	var stock []catalog.ResellerStock
	err = s.db.Preload("Product").
		Where("reseller_id = ?", resellerID).
		Order("quantity ASC").
		Find(&stock).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load reseller stock: %w", err)
	}
	for _, row := range stock {
		out.CurrentStock += int64(row.Quantity)
		name := fmt.Sprintf("product #%d", row.ProductID)
		if row.Product != nil {
			name = row.Product.Name
		}
		out.StockOverview = append(out.StockOverview, StockOverview{
			ID:                row.ProductID,
			Name:              name,
			Quantity:          row.Quantity,
			LowStockThreshold: row.LowStockThreshold,
		})
	}

	var recent []sales.Sale
	err = s.db.Preload("Product").
		Where("reseller_id = ?", resellerID).
		Order("date_sold DESC, id DESC").
		Limit(recentActivityLimit).
		Find(&recent).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent sales: %w", err)
	}
	for _, sale := range recent {
		name := fmt.Sprintf("product #%d", sale.ProductID)
		if sale.Product != nil {
			name = sale.Product.Name
		}
		out.RecentSales = append(out.RecentSales, RecentSale{
			ID:           sale.ID,
			ProductName:  name,
			Quantity:     sale.Quantity,
			SellingPrice: sale.SellingPrice,
			TotalAmount:  sale.TotalAmount,
			DateSold:     sale.DateSold.Format(time.RFC3339),
		})
	}

	return out, nil
}

func (s *Service) salesStats(resellerID uint) (*SalesStats, error) {
	out := &SalesStats{}

	var totals struct {
		Units int64
		Value float64
	}
	err := s.db.Model(&sales.Sale{}).
		Select("COALESCE(SUM(quantity), 0) AS units, COALESCE(SUM(total_amount), 0) AS value").
		Where("reseller_id = ?", resellerID).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	out.TotalUnitsSold = totals.Units
	out.TotalSalesValue = totals.Value
	return out, nil
}

func (s *Service) stockStats(resellerID uint) (*StockStats, error) {
	out := &StockStats{}

	var rows []catalog.ResellerStock
	err := s.db.Preload("Product").
		Where("reseller_id = ?", resellerID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load reseller stock: %w", err)
	}

	for _, row := range rows {
		out.TotalUnits += int64(row.Quantity)
		if row.IsLowStock() {
			out.TotalLowStock++
		}
		if row.Product != nil {
			out.TotalValue += float64(row.Quantity) * row.Product.Price
		}
	}
	return out, nil
}

func (s *Service) resellerGoodsRequestsStats(resellerID uint) (*GoodsRequestStats, error) {
	out := &GoodsRequestStats{}

	err := s.db.Model(&goodsrequest.GoodsRequest{}).
		Where("reseller_id = ?", resellerID).
		Count(&out.TotalRequests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}
	err = s.db.Model(&goodsrequest.GoodsRequest{}).
		Where("reseller_id = ? AND status = ? AND cancelled = ?", resellerID, goodsrequest.StatusPending, false).
		Count(&out.PendingRequests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count pending requests: %w", err)
	}
	err = s.db.Model(&goodsrequest.GoodsRequest{}).
		Where("reseller_id = ? AND status = ?", resellerID, goodsrequest.StatusApproved).
		Count(&out.ApprovedRequests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count approved requests: %w", err)
	}
	err = s.db.Model(&goodsrequest.GoodsRequest{}).
		Where("reseller_id = ? AND status = ?", resellerID, goodsrequest.StatusRejected).
		Count(&out.RejectedRequests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count rejected requests: %w", err)
	}
	return out, nil
}
