package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// ComputePosting — reglas por tipo de transacción
// ──────────────────────────────────────────────────────────────────────────────

func TestComputePosting_EntradaSumaAlSaldo(t *testing.T) {
	res, err := inventory.ComputePosting(entity.TransactionTypeIN, 10, 5)
	require.NoError(t, err)

	assert.Equal(t, int64(10), res.StockBefore)
	assert.Equal(t, int64(15), res.StockAfter, "IN debe sumar quantity al saldo")
	assert.Equal(t, int64(5), res.LedgerQuantity)
}

func TestComputePosting_EntradaDesdeCero(t *testing.T) {
	res, err := inventory.ComputePosting(entity.TransactionTypeIN, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.StockAfter)
}

func TestComputePosting_SalidaRestaDelSaldo(t *testing.T) {
	res, err := inventory.ComputePosting(entity.TransactionTypeOUT, 10, 4)
	require.NoError(t, err)

	assert.Equal(t, int64(6), res.StockAfter, "OUT debe restar quantity del saldo")
	assert.Equal(t, int64(4), res.LedgerQuantity)
}

// Una salida que deja el saldo exactamente en cero es válida: el invariante es
// saldo >= 0, no saldo > 0.
func TestComputePosting_SalidaACeroEsValida(t *testing.T) {
	res, err := inventory.ComputePosting(entity.TransactionTypeOUT, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.StockAfter)
}

func TestComputePosting_SalidaInsuficiente(t *testing.T) {
	_, err := inventory.ComputePosting(entity.TransactionTypeOUT, 10, 11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"una salida que dejaría el saldo negativo debe rechazarse")
}

func TestComputePosting_AjusteHaciaArriba(t *testing.T) {
	// El caller envía el total absoluto objetivo (25), no un delta.
	res, err := inventory.ComputePosting(entity.TransactionTypeADJUSTMENT, 10, 25)
	require.NoError(t, err)

	assert.Equal(t, int64(25), res.StockAfter, "ADJUSTMENT fija el saldo en quantity")
	assert.Equal(t, int64(15), res.LedgerQuantity, "el kardex registra la magnitud del cambio")
}

func TestComputePosting_AjusteHaciaAbajo(t *testing.T) {
	res, err := inventory.ComputePosting(entity.TransactionTypeADJUSTMENT, 25, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(10), res.StockAfter)
	assert.Equal(t, int64(15), res.LedgerQuantity, "la magnitud siempre es positiva")
}

// Un ajuste al mismo valor del saldo actual es válido: produce una entrada con
// magnitud 0 que documenta que se realizó un conteo físico.
func TestPostAdjustment_SinCambio(t *testing.T) {
	res, err := inventory.ComputePosting(entity.TransactionTypeADJUSTMENT, 10, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(10), res.StockAfter)
	assert.Equal(t, int64(0), res.LedgerQuantity,
		"ajuste sin cambio de saldo registra magnitud 0 pero se postea igual")
}

func TestComputePosting_CantidadInvalida(t *testing.T) {
	for _, qty := range []int64{0, -1, -100} {
		_, err := inventory.ComputePosting(entity.TransactionTypeIN, 10, qty)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity <= 0 debe rechazarse")
	}
}

func TestComputePosting_TipoInvalido(t *testing.T) {
	_, err := inventory.ComputePosting("TRANSFER", 10, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// SignedDelta y Replay — reconstrucción del saldo desde el kardex
// ──────────────────────────────────────────────────────────────────────────────

func TestSignedDelta_PorTipo(t *testing.T) {
	in := &entity.StockTransaction{TransactionType: entity.TransactionTypeIN, Quantity: 5}
	out := &entity.StockTransaction{TransactionType: entity.TransactionTypeOUT, Quantity: 3}
	adjUp := &entity.StockTransaction{TransactionType: entity.TransactionTypeADJUSTMENT, Quantity: 7, StockBefore: 2, StockAfter: 9}
	adjDown := &entity.StockTransaction{TransactionType: entity.TransactionTypeADJUSTMENT, Quantity: 4, StockBefore: 9, StockAfter: 5}

	assert.Equal(t, int64(5), in.SignedDelta())
	assert.Equal(t, int64(-3), out.SignedDelta())
	assert.Equal(t, int64(7), adjUp.SignedDelta())
	assert.Equal(t, int64(-4), adjDown.SignedDelta())
}

func TestReplay_SecuenciaMixta(t *testing.T) {
	// IN 10 → OUT 4 → ADJUSTMENT a 20 → OUT 5: saldo final 15.
	ledger := []*entity.StockTransaction{
		{TransactionType: entity.TransactionTypeIN, Quantity: 10, StockBefore: 0, StockAfter: 10},
		{TransactionType: entity.TransactionTypeOUT, Quantity: 4, StockBefore: 10, StockAfter: 6},
		{TransactionType: entity.TransactionTypeADJUSTMENT, Quantity: 14, StockBefore: 6, StockAfter: 20},
		{TransactionType: entity.TransactionTypeOUT, Quantity: 5, StockBefore: 20, StockAfter: 15},
	}

	assert.Equal(t, int64(15), inventory.Replay(ledger),
		"el replay del kardex debe reconstruir exactamente el saldo almacenado")
}

func TestReplay_KardexVacio(t *testing.T) {
	assert.Equal(t, int64(0), inventory.Replay(nil), "sin movimientos el saldo es 0")
}

// Cada StockAfter del kardex debe coincidir con el replay parcial hasta esa
// entrada: la propiedad que explota el verificador de consistencia.
func TestReplay_PrefijosCoinciden(t *testing.T) {
	ledger := []*entity.StockTransaction{
		{TransactionType: entity.TransactionTypeIN, Quantity: 8, StockBefore: 0, StockAfter: 8},
		{TransactionType: entity.TransactionTypeADJUSTMENT, Quantity: 3, StockBefore: 8, StockAfter: 5},
		{TransactionType: entity.TransactionTypeIN, Quantity: 2, StockBefore: 5, StockAfter: 7},
	}
	for i := range ledger {
		assert.Equal(t, ledger[i].StockAfter, inventory.Replay(ledger[:i+1]),
			"el prefijo del kardex debe reproducir StockAfter de la entrada %d", i)
	}
}
