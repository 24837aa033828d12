package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// buildQueryFixture arma un producto con un kardex de 3 movimientos vía el motor
// real de posting, para que los datos sean coherentes con producción.
func buildQueryFixture(t *testing.T) (*inventory.QueryUseCase, *fakeStore) {
	t.Helper()
	uc, store, _ := buildEngine(0)
	for _, mv := range []struct {
		txType string
		qty    int64
	}{
		{entity.TransactionTypeIN, 10},
		{entity.TransactionTypeOUT, 3},
		{entity.TransactionTypeIN, 2},
	} {
		_, err := post(t, uc, mv.txType, mv.qty)
		require.NoError(t, err)
	}
	query := inventory.NewQueryUseCase(&fakeLedgerRepo{store: store}, &fakeProductRepo{store: store})
	return query, store
}

func TestGetHistory_MasRecientePrimero(t *testing.T) {
	query, _ := buildQueryFixture(t)

	out, err := query.GetHistory(context.Background(), testProductID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out, 3)

	// última operación primero (IN 2), la primera (IN 10) al final
	assert.Equal(t, entity.TransactionTypeIN, out[0].TransactionType)
	assert.Equal(t, int64(2), out[0].Quantity)
	assert.Equal(t, int64(10), out[2].Quantity)
	assert.Greater(t, out[0].ID, out[1].ID, "el orden debe ser descendente por ID")
}

func TestGetHistory_Paginado(t *testing.T) {
	query, _ := buildQueryFixture(t)

	out, err := query.GetHistory(context.Background(), testProductID, dto.PageRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(3), out[0].Quantity, "offset 1 debe saltarse el movimiento más reciente")
}

func TestGetHistory_ProductoInexistente(t *testing.T) {
	query, _ := buildQueryFixture(t)

	_, err := query.GetHistory(context.Background(), "no-existe", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetRecent_IncluyeDatosDelProducto(t *testing.T) {
	query, _ := buildQueryFixture(t)

	out, err := query.GetRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Café de grano 1kg", out[0].ProductName)
	assert.Equal(t, "CAF-001", out[0].ProductSKU)
	assert.Greater(t, out[0].ID, out[1].ID)
}

func TestGetRecent_CountPorDefecto(t *testing.T) {
	query, _ := buildQueryFixture(t)

	// count <= 0 usa el default; con 3 movimientos devuelve los 3
	out, err := query.GetRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestGetLowStock_SoloActivosBajoElMinimo(t *testing.T) {
	store := newFakeStore()
	now := time.Now()
	store.addProduct(&entity.Product{ID: "p1", Name: "Bajo", CurrentStock: 2, MinimumStock: 5, IsActive: true, CreatedDate: now, ModifiedDate: now})
	store.addProduct(&entity.Product{ID: "p2", Name: "En el límite", CurrentStock: 5, MinimumStock: 5, IsActive: true, CreatedDate: now, ModifiedDate: now})
	store.addProduct(&entity.Product{ID: "p3", Name: "Inactivo bajo", CurrentStock: 0, MinimumStock: 5, IsActive: false, CreatedDate: now, ModifiedDate: now})
	query := inventory.NewQueryUseCase(&fakeLedgerRepo{store: store}, &fakeProductRepo{store: store})

	out, err := query.GetLowStock(context.Background())
	require.NoError(t, err)

	require.Len(t, out, 1, "saldo igual al mínimo no es stock bajo, inactivos no cuentan")
	assert.Equal(t, "p1", out[0].ID)
	assert.True(t, out[0].LowStock)
}
