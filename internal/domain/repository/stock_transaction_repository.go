package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// StockTransactionRepository define el puerto de persistencia para el kardex.
// El kardex es append-only: no existen Update ni Delete.
type StockTransactionRepository interface {
	// Create inserta la entrada y asigna tx.ID (secuencia creciente de la base).
	Create(tx *entity.StockTransaction) error
	GetByID(id int64) (*entity.StockTransaction, error)
	// ListByProduct historial de un producto, más reciente primero.
	ListByProduct(productID string, limit, offset int) ([]*entity.StockTransaction, error)
	// ListByProductAscending kardex completo en orden de creación (para replay).
	ListByProductAscending(productID string) ([]*entity.StockTransaction, error)
	// ListRecent últimas N transacciones de todos los productos, más reciente
	// primero, con nombre de producto y categoría denormalizados.
	ListRecent(limit int) ([]*entity.StockTransactionWithProduct, error)
	CountByProduct(productID string) (int64, error)
}
