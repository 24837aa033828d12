package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	"github.com/jhoicas/Kardex-api/pkg/normalize"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
//
// search_name es el nombre normalizado (minúsculas, sin tildes) que mantiene
// este repositorio en cada insert/update para búsqueda insensible a acentos.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, description, unit_price, current_stock, minimum_stock, category_id, supplier_id, is_active, created_date, modified_date`

// Create persiste un nuevo producto. CurrentStock siempre inicia en 0.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, search_name, description, unit_price, current_stock, minimum_stock, category_id, supplier_id, is_active, created_date, modified_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, nullIfEmpty(product.SKU), product.Name, normalize.SearchTerm(product.Name),
		product.Description, product.UnitPrice, product.CurrentStock, product.MinimumStock,
		product.CategoryID, nullIfEmpty(product.SupplierID), product.IsActive,
		product.CreatedDate, product.ModifiedDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByIDForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción; serializa los postings
// concurrentes sobre el mismo producto.
func (r *ProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product for update")
}

// GetBySKU obtiene un producto por SKU (único global).
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get product by sku")
}

// Update actualiza un producto existente. No toca current_stock: ese campo es
// exclusivo del motor de kardex (UpdateStock).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, search_name = $4, description = $5, unit_price = $6,
			minimum_stock = $7, category_id = $8, supplier_id = $9, is_active = $10, modified_date = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, nullIfEmpty(product.SKU), product.Name, normalize.SearchTerm(product.Name),
		product.Description, product.UnitPrice, product.MinimumStock,
		product.CategoryID, nullIfEmpty(product.SupplierID), product.IsActive, product.ModifiedDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock escribe el nuevo saldo y modified_date. Usado solo por el motor
// de kardex dentro de su transacción, después de GetByIDForUpdate.
func (r *ProductRepo) UpdateStock(productID string, newStock int64, modified time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET current_stock = $2, modified_date = $3 WHERE id = $1`,
		productID, newStock, modified,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// List lista productos con paginación y búsqueda opcional por nombre o SKU.
// El término se normaliza (minúsculas, sin tildes) y se compara contra
// search_name, así "Café" y "cafe" encuentran lo mismo.
func (r *ProductRepo) List(limit, offset int, search string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	pos := 1
	if search != "" {
		query += fmt.Sprintf(" WHERE search_name LIKE '%%' || $%d || '%%' OR sku ILIKE '%%' || $%d || '%%'", pos, pos)
		args = append(args, normalize.SearchTerm(search))
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListLowStock productos activos con saldo por debajo del mínimo.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE is_active AND current_stock < minimum_stock
		ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// CountByCategory cuenta productos que referencian una categoría (guard de borrado).
func (r *ProductRepo) CountByCategory(categoryID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// CountBySupplier cuenta productos que referencian un proveedor (guard de borrado).
func (r *ProductRepo) CountBySupplier(supplierID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE supplier_id = $1`, supplierID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by supplier: %w", err)
	}
	return n, nil
}

// Delete elimina un producto por ID. Los guards de negocio (stock cero, sin
// historial) viven en el caso de uso.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	var sku, supplierID *string
	err := row.Scan(
		&p.ID, &sku, &p.Name, &p.Description, &p.UnitPrice, &p.CurrentStock,
		&p.MinimumStock, &p.CategoryID, &supplierID, &p.IsActive,
		&p.CreatedDate, &p.ModifiedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sku != nil {
		p.SKU = *sku
	}
	if supplierID != nil {
		p.SupplierID = *supplierID
	}
	return &p, nil
}

func (r *ProductRepo) scanMany(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var sku, supplierID *string
		if err := rows.Scan(&p.ID, &sku, &p.Name, &p.Description, &p.UnitPrice, &p.CurrentStock,
			&p.MinimumStock, &p.CategoryID, &supplierID, &p.IsActive,
			&p.CreatedDate, &p.ModifiedDate); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if sku != nil {
			p.SKU = *sku
		}
		if supplierID != nil {
			p.SupplierID = *supplierID
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
