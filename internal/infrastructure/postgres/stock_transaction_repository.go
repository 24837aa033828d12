package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación del puerto del kardex sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: este adaptador no expone
// UPDATE ni DELETE, y el id BIGSERIAL garantiza orden creciente de creación.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

const txColumns = `id, product_id, transaction_type, quantity, remarks, stock_before, stock_after, created_by, created_date`

// Create inserta la entrada del kardex y asigna tx.ID desde la secuencia.
func (r *StockTransactionRepo) Create(tx *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (product_id, transaction_type, quantity, remarks, stock_before, stock_after, created_by, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		tx.ProductID, tx.TransactionType, tx.Quantity, tx.Remarks,
		tx.StockBefore, tx.StockAfter, tx.CreatedBy, tx.CreatedDate,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *StockTransactionRepo) GetByID(id int64) (*entity.StockTransaction, error) {
	query := `SELECT ` + txColumns + ` FROM stock_transactions WHERE id = $1`
	var t entity.StockTransaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.ProductID, &t.TransactionType, &t.Quantity, &t.Remarks,
		&t.StockBefore, &t.StockAfter, &t.CreatedBy, &t.CreatedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transaction: %w", err)
	}
	return &t, nil
}

// ListByProduct historial de un producto, más reciente primero.
// Desempate por id DESC: entradas con el mismo timestamp salen en orden de creación.
func (r *StockTransactionRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `SELECT ` + txColumns + `
		FROM stock_transactions WHERE product_id = $1
		ORDER BY created_date DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions by product: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListByProductAscending kardex completo en orden de creación, para el replay
// del verificador de consistencia y el reporte PDF.
func (r *StockTransactionRepo) ListByProductAscending(productID string) ([]*entity.StockTransaction, error) {
	query := `SELECT ` + txColumns + `
		FROM stock_transactions WHERE product_id = $1
		ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list transactions ascending: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListRecent últimas N transacciones de todos los productos con nombre de
// producto y categoría denormalizados para el dashboard.
func (r *StockTransactionRepo) ListRecent(limit int) ([]*entity.StockTransactionWithProduct, error) {
	query := `
		SELECT t.id, t.product_id, t.transaction_type, t.quantity, t.remarks, t.stock_before, t.stock_after, t.created_by, t.created_date,
			p.name, COALESCE(p.sku, ''), c.name
		FROM stock_transactions t
		JOIN products p ON p.id = t.product_id
		JOIN categories c ON c.id = p.category_id
		ORDER BY t.created_date DESC, t.id DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransactionWithProduct
	for rows.Next() {
		var t entity.StockTransactionWithProduct
		if err := rows.Scan(&t.ID, &t.ProductID, &t.TransactionType, &t.Quantity, &t.Remarks,
			&t.StockBefore, &t.StockAfter, &t.CreatedBy, &t.CreatedDate,
			&t.ProductName, &t.ProductSKU, &t.CategoryName); err != nil {
			return nil, fmt.Errorf("scan recent transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// CountByProduct cuenta entradas del kardex de un producto (guard de borrado).
func (r *StockTransactionRepo) CountByProduct(productID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_transactions WHERE product_id = $1`, productID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions by product: %w", err)
	}
	return n, nil
}

func scanTransactions(rows pgx.Rows) ([]*entity.StockTransaction, error) {
	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(&t.ID, &t.ProductID, &t.TransactionType, &t.Quantity, &t.Remarks,
			&t.StockBefore, &t.StockAfter, &t.CreatedBy, &t.CreatedDate); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
