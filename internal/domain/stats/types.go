// internal/domain/stats/types.go
package stats

// StockChartData is one day of the admin dashboard chart.
type StockChartData struct {
	Date        string `json:"date"`
	InStock     int    `json:"in_stock"`
	Distributed int    `json:"distributed"`
}

// RecentActivity is one row of the admin dashboard activity feed, built
// from the most recent stock movements.
type RecentActivity struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	CreatedAt   string `json:"created_at"`
}

// StockAlert flags a product at or below its company-level threshold.
type StockAlert struct {
	ID                uint   `json:"id"`
	ProductName       string `json:"product_name"`
	Quantity          int    `json:"quantity"`
	LowStockThreshold int    `json:"low_stock_threshold"`
	AlertType         string `json:"alert_type"`
}

// TopReseller ranks resellers by sales value. Performance is the percent
// change of sales value over the last 30 days against the 30 days before.
type TopReseller struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	TotalSalesValue float64 `json:"total_sales_value"`
	StockValue      float64 `json:"stock_value"`
	Performance     float64 `json:"performance"`
}

// AdminDashboardStats is the admin dashboard bundle.
type AdminDashboardStats struct {
	ActiveResellers       int64            `json:"active_resellers"`
	CompanyLowStock       int64            `json:"company_low_stock"`
	PaymentReceived       float64          `json:"payment_received"`
	StockDistributedUnits int64            `json:"stock_distributed_units"`
	TotalCompanyStock     int64            `json:"total_company_stock"`
	TotalPendingRequests  int64            `json:"total_pending_requests"`
	TotalValueDistributed float64          `json:"total_value_distributed"`
	RecentActivities      []RecentActivity `json:"recent_activities"`
	StockAlerts           []StockAlert     `json:"stock_alerts"`
	TopResellers          []TopReseller    `json:"top_resellers"`
	WeeklyStockChart      []StockChartData `json:"weekly_stock_chart"`
}

// ProductsStats is the admin products page bundle.
type ProductsStats struct {
	LowStockItems int64 `json:"low_stock_items"`
	OutOfStock    int64 `json:"out_of_stock"`
	TotalUnits    int64 `json:"total_units"`
}

// BatchesStats is the admin batches page bundle.
type BatchesStats struct {
	ActiveBatches  int64   `json:"active_batches"`
	RemainingValue float64 `json:"remaining_value"`
	TotalBatches   int64   `json:"total_batches"`
	TotalValue     float64 `json:"total_value"`
}

// DistributionsStats is the admin distributions page bundle.
type DistributionsStats struct {
	ActiveResellers   int64   `json:"active_resellers"`
	TotalDistribution int64   `json:"total_distribution"`
	TotalValue        float64 `json:"total_value"`
	UnitsDistributed  int64   `json:"units_distributed"`
}

// GoodsRequestsStats is the admin goods-requests page bundle.
type GoodsRequestsStats struct {
	TotalApproved  int64 `json:"total_approved"`
	TotalCancelled int64 `json:"total_cancelled"`
	TotalPending   int64 `json:"total_pending"`
	TotalRejected  int64 `json:"total_rejected"`
}

// PaymentsStats serves both the admin payments page (all resellers) and the
// reseller payments page (one reseller).
type PaymentsStats struct {
	CashTotal     float64 `json:"cash_total"`
	MpesaTotal    float64 `json:"mpesa_total"`
	TotalPayments int64   `json:"total_payments"`
	TotalReceived float64 `json:"total_received"`
}

// ResellersStats is the admin resellers page bundle.
type ResellersStats struct {
	ActiveResellers     int64   `json:"active_resellers"`
	OutstandingPayments float64 `json:"outstanding_payments"`
	TotalResellers      int64   `json:"total_resellers"`
	TotalStockOut       int64   `json:"total_stock_out"`
}

// StockMovementsStats is the admin stock-movements page bundle.
type StockMovementsStats struct {
	NetMovement    int64 `json:"net_movement"`
	TotalMovements int64 `json:"total_movements"`
	TotalStockIn   int64 `json:"total_stock_in"`
	TotalStockOut  int64 `json:"total_stock_out"`
}

// RecentSale is one row of the reseller dashboard sales feed.
type RecentSale struct {
	ID           uint    `json:"id"`
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	SellingPrice float64 `json:"selling_price"`
	TotalAmount  float64 `json:"total_amount"`
	DateSold     string  `json:"date_sold"`
}

// StockOverview is one product line of the reseller dashboard.
type StockOverview struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	Quantity          int    `json:"quantity"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

// SalesTotals nests inside DashboardStats.
type SalesTotals struct {
	SalesValue float64 `json:"sales_value"`
	UnitsSold  int64   `json:"units_sold"`
}

// DashboardStats is the reseller dashboard bundle. Profit is sales value
// minus cost of goods sold, taken from the derived account.
type DashboardStats struct {
	CurrentStock       int64           `json:"current_stock"`
	OutstandingBalance float64         `json:"outstanding_balance"`
	Profit             float64         `json:"profit"`
	TotalSales         SalesTotals     `json:"total_sales"`
	RecentSales        []RecentSale    `json:"recent_sales"`
	StockOverview      []StockOverview `json:"stock_overview"`
}

// SalesStats is the reseller sales page bundle.
type SalesStats struct {
	TotalSalesValue float64 `json:"total_sales_value"`
	TotalUnitsSold  int64   `json:"total_units_sold"`
}

// StockStats is the reseller stock page bundle. TotalValue prices units at
// the product's current selling price.
type StockStats struct {
	TotalLowStock int64   `json:"total_low_stock"`
	TotalUnits    int64   `json:"total_units"`
	TotalValue    float64 `json:"total_value"`
}

// GoodsRequestStats is the reseller goods-requests page bundle.
type GoodsRequestStats struct {
	ApprovedRequests int64 `json:"approved_requests"`
	PendingRequests  int64 `json:"pending_requests"`
	RejectedRequests int64 `json:"rejected_requests"`
	TotalRequests    int64 `json:"total_requests"`
}
