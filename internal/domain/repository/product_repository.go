package repository

import (
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateStock es exclusivo del motor de kardex y solo tiene sentido dentro de
// una transacción que antes tomó el lock con GetByIDForUpdate.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock escribe el nuevo saldo y ModifiedDate. Solo el motor de kardex.
	UpdateStock(productID string, newStock int64, modified time.Time) error
	List(limit, offset int, search string) ([]*entity.Product, error)
	// ListLowStock productos activos con current_stock < minimum_stock.
	ListLowStock() ([]*entity.Product, error)
	CountByCategory(categoryID string) (int64, error)
	CountBySupplier(supplierID string) (int64, error)
	Delete(id string) error
}
