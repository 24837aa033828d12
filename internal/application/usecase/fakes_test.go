package usecase_test

import (
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Fakes en memoria para los casos de uso de catálogo. Sin concurrencia: los
// tests de este paquete son secuenciales.

type memProductRepo struct {
	products map[string]*entity.Product
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]*entity.Product)}
}

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(productID string, newStock int64, modified time.Time) error {
	if p, ok := r.products[productID]; ok {
		p.CurrentStock = newStock
		p.ModifiedDate = modified
	}
	return nil
}

func (r *memProductRepo) List(limit, offset int, search string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.IsActive && p.CurrentStock < p.MinimumStock {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductRepo) CountByCategory(categoryID string) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) CountBySupplier(supplierID string) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type memCategoryRepo struct {
	categories map[string]*entity.Category
}

var _ repository.CategoryRepository = (*memCategoryRepo)(nil)

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[string]*entity.Category)}
}

func (r *memCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCategoryRepo) Delete(id string) error {
	delete(r.categories, id)
	return nil
}

type memSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

var _ repository.SupplierRepository = (*memSupplierRepo)(nil)

func newMemSupplierRepo() *memSupplierRepo {
	return &memSupplierRepo{suppliers: make(map[string]*entity.Supplier)}
}

func (r *memSupplierRepo) Create(s *entity.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSupplierRepo) Update(s *entity.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *memSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.suppliers {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memSupplierRepo) Delete(id string) error {
	delete(r.suppliers, id)
	return nil
}

// memLedgerRepo solo se usa para el guard de borrado de productos.
type memLedgerRepo struct {
	countByProduct map[string]int64
}

var _ repository.StockTransactionRepository = (*memLedgerRepo)(nil)

func newMemLedgerRepo() *memLedgerRepo {
	return &memLedgerRepo{countByProduct: make(map[string]int64)}
}

func (r *memLedgerRepo) Create(tx *entity.StockTransaction) error {
	r.countByProduct[tx.ProductID]++
	return nil
}

func (r *memLedgerRepo) GetByID(id int64) (*entity.StockTransaction, error) { return nil, nil }

func (r *memLedgerRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockTransaction, error) {
	return nil, nil
}

func (r *memLedgerRepo) ListByProductAscending(productID string) ([]*entity.StockTransaction, error) {
	return nil, nil
}

func (r *memLedgerRepo) ListRecent(limit int) ([]*entity.StockTransactionWithProduct, error) {
	return nil, nil
}

func (r *memLedgerRepo) CountByProduct(productID string) (int64, error) {
	return r.countByProduct[productID], nil
}
