package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas read-only para el dashboard.
// Siempre lee sobre el pool (fuera de las transacciones del motor de kardex),
// así solo observa saldos ya confirmados.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador de agregados.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

func (r *DashboardRepo) CountProducts() (int64, error) {
	return r.count(`SELECT COUNT(*) FROM products WHERE is_active`)
}

func (r *DashboardRepo) CountCategories() (int64, error) {
	return r.count(`SELECT COUNT(*) FROM categories`)
}

func (r *DashboardRepo) CountSuppliers() (int64, error) {
	return r.count(`SELECT COUNT(*) FROM suppliers WHERE is_active`)
}

func (r *DashboardRepo) CountLowStockProducts() (int64, error) {
	return r.count(`SELECT COUNT(*) FROM products WHERE is_active AND current_stock < minimum_stock`)
}

// CountTransactionsSince cuenta entradas del kardex desde el instante dado.
func (r *DashboardRepo) CountTransactionsSince(since time.Time) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_transactions WHERE created_date >= $1`, since,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions since: %w", err)
	}
	return n, nil
}

// TotalInventoryValue suma unit_price * current_stock de productos activos.
// El cálculo se hace en NUMERIC dentro de PostgreSQL y se escanea a decimal,
// sin pasar por float.
func (r *DashboardRepo) TotalInventoryValue() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(unit_price * current_stock), 0) FROM products WHERE is_active`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total inventory value: %w", err)
	}
	return total, nil
}

func (r *DashboardRepo) count(query string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), query).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("dashboard count: %w", err)
	}
	return n, nil
}
