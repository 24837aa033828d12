package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardRepository consultas read-only de agregados para el dashboard.
// Solo lee valores ya confirmados; nunca observa estados intermedios del motor.
type DashboardRepository interface {
	CountProducts() (int64, error)
	CountCategories() (int64, error)
	CountSuppliers() (int64, error)
	CountLowStockProducts() (int64, error)
	CountTransactionsSince(since time.Time) (int64, error)
	// TotalInventoryValue suma price * current_stock de productos activos.
	TotalInventoryValue() (decimal.Decimal, error)
}
