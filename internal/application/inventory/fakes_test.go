package inventory_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los tests del motor de kardex.
//
// fakeStore guarda productos y kardex; fakeTxRunner emula la transacción:
// serializa los postings con un mutex (el equivalente del SELECT FOR UPDATE) y
// revierte el estado completo si fn falla (el equivalente del Rollback).
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu       sync.Mutex // protege products/ledger/nextID
	products map[string]*entity.Product
	ledger   []*entity.StockTransaction
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[string]*entity.Product)}
}

func (s *fakeStore) addProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
}

func (s *fakeStore) productStock(id string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].CurrentStock
}

func (s *fakeStore) ledgerLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ledger)
}

// snapshot copia profunda del estado, para emular Rollback.
func (s *fakeStore) snapshot() (map[string]*entity.Product, []*entity.StockTransaction, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		products[id] = &cp
	}
	ledger := make([]*entity.StockTransaction, len(s.ledger))
	for i, tx := range s.ledger {
		cp := *tx
		ledger[i] = &cp
	}
	return products, ledger, s.nextID
}

func (s *fakeStore) restore(products map[string]*entity.Product, ledger []*entity.StockTransaction, nextID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.ledger = ledger
	s.nextID = nextID
}

// fakeProductRepo implementa repository.ProductRepository sobre el store.
type fakeProductRepo struct {
	store *fakeStore
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.store.addProduct(p)
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetByIDForUpdate en el fake es idéntico a GetByID: la exclusión la da el
// mutex del fakeTxRunner, que mantiene el lock durante toda la "transacción".
func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.store.addProduct(p)
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, newStock int64, modified time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = newStock
	p.ModifiedDate = modified
	return nil
}

func (r *fakeProductRepo) List(limit, offset int, search string) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.store.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.IsActive && p.CurrentStock < p.MinimumStock {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProductRepo) CountByCategory(categoryID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, p := range r.store.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) CountBySupplier(supplierID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, p := range r.store.products {
		if p.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.products, id)
	return nil
}

// fakeLedgerRepo implementa repository.StockTransactionRepository sobre el store.
// failCreate permite inyectar una falla de persistencia para probar atomicidad.
type fakeLedgerRepo struct {
	store      *fakeStore
	failCreate bool
}

var _ repository.StockTransactionRepository = (*fakeLedgerRepo)(nil)

var errFakeStorage = errors.New("falla de persistencia inyectada")

func (r *fakeLedgerRepo) Create(tx *entity.StockTransaction) error {
	if r.failCreate {
		return errFakeStorage
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextID++
	tx.ID = r.store.nextID
	cp := *tx
	r.store.ledger = append(r.store.ledger, &cp)
	return nil
}

func (r *fakeLedgerRepo) GetByID(id int64) (*entity.StockTransaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, tx := range r.store.ledger {
		if tx.ID == id {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLedgerRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockTransaction, error) {
	all, _ := r.ListByProductAscending(productID)
	// más reciente primero
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeLedgerRepo) ListByProductAscending(productID string) ([]*entity.StockTransaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.StockTransaction
	for _, tx := range r.store.ledger {
		if tx.ProductID == productID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) ListRecent(limit int) ([]*entity.StockTransactionWithProduct, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.StockTransactionWithProduct
	for i := len(r.store.ledger) - 1; i >= 0 && len(out) < limit; i-- {
		tx := *r.store.ledger[i]
		item := &entity.StockTransactionWithProduct{StockTransaction: tx}
		if p, ok := r.store.products[tx.ProductID]; ok {
			item.ProductName = p.Name
			item.ProductSKU = p.SKU
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeLedgerRepo) CountByProduct(productID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, tx := range r.store.ledger {
		if tx.ProductID == productID {
			n++
		}
	}
	return n, nil
}

// fakeTxRunner serializa las "transacciones" con un mutex propio y revierte el
// estado completo del store si fn falla.
type fakeTxRunner struct {
	store      *fakeStore
	txMu       sync.Mutex
	failLedger bool
}

func newFakeTxRunner(store *fakeStore) *fakeTxRunner {
	return &fakeTxRunner{store: store}
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	ledgerRepo repository.StockTransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	products, ledger, nextID := r.store.snapshot()
	err := fn(
		&fakeLedgerRepo{store: r.store, failCreate: r.failLedger},
		&fakeProductRepo{store: r.store},
	)
	if err != nil {
		r.store.restore(products, ledger, nextID)
		return err
	}
	return nil
}
