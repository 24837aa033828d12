package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resumen de inventario para el dashboard.
type DashboardSummaryDTO struct {
	TotalProducts       int64           `json:"total_products"`
	TotalCategories     int64           `json:"total_categories"`
	TotalSuppliers      int64           `json:"total_suppliers"`
	LowStockProducts    int64           `json:"low_stock_products"`
	TransactionsToday   int64           `json:"transactions_today"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
}
