package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

func buildConsistency(t *testing.T) (*inventory.ConsistencyUseCase, *fakeStore) {
	t.Helper()
	uc, store, _ := buildEngine(0)
	for _, mv := range []struct {
		txType string
		qty    int64
	}{
		{entity.TransactionTypeIN, 10},
		{entity.TransactionTypeOUT, 4},
		{entity.TransactionTypeADJUSTMENT, 20},
	} {
		_, err := post(t, uc, mv.txType, mv.qty)
		require.NoError(t, err)
	}
	checker := inventory.NewConsistencyUseCase(&fakeLedgerRepo{store: store}, &fakeProductRepo{store: store}, nil)
	return checker, store
}

func TestCheckProduct_SaldoConsistente(t *testing.T) {
	checker, _ := buildConsistency(t)

	report, err := checker.CheckProduct(context.Background(), testProductID)
	require.NoError(t, err)

	assert.True(t, report.Consistent)
	assert.Equal(t, int64(20), report.StoredStock)
	assert.Equal(t, int64(20), report.ComputedStock)
	assert.Zero(t, report.Drift)
}

// Una escritura por fuera del motor (corrupción manual del escalar) debe
// detectarse: el kardex es la fuente de verdad.
func TestCheckProduct_DetectaDivergencia(t *testing.T) {
	checker, store := buildConsistency(t)

	store.mu.Lock()
	store.products[testProductID].CurrentStock = 99
	store.mu.Unlock()

	report, err := checker.CheckProduct(context.Background(), testProductID)
	require.NoError(t, err)

	assert.False(t, report.Consistent)
	assert.Equal(t, int64(99), report.StoredStock)
	assert.Equal(t, int64(20), report.ComputedStock)
	assert.Equal(t, int64(79), report.Drift)
}

func TestCheckProduct_SinMovimientos(t *testing.T) {
	store := newFakeStore()
	store.addProduct(&entity.Product{ID: "vacio", Name: "Sin kardex", CurrentStock: 0, IsActive: true})
	checker := inventory.NewConsistencyUseCase(&fakeLedgerRepo{store: store}, &fakeProductRepo{store: store}, nil)

	report, err := checker.CheckProduct(context.Background(), "vacio")
	require.NoError(t, err)
	assert.True(t, report.Consistent, "producto sin movimientos y saldo 0 es consistente")
}

func TestCheckProduct_ProductoInexistente(t *testing.T) {
	checker, _ := buildConsistency(t)

	_, err := checker.CheckProduct(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckAll_DevuelveSoloDivergentes(t *testing.T) {
	checker, store := buildConsistency(t)

	// segundo producto consistente (sin movimientos)
	store.addProduct(&entity.Product{ID: "p2", Name: "Otro", CurrentStock: 0, IsActive: true})
	// corromper el primero
	store.mu.Lock()
	store.products[testProductID].CurrentStock = 7
	store.mu.Unlock()

	drifted, err := checker.CheckAll(context.Background())
	require.NoError(t, err)

	require.Len(t, drifted, 1)
	assert.Equal(t, testProductID, drifted[0].ProductID)
}

func TestCheckAll_TodoConsistente(t *testing.T) {
	checker, _ := buildConsistency(t)

	drifted, err := checker.CheckAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drifted)
}
