package inventory_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

const (
	testProductID = "11111111-1111-1111-1111-111111111111"
	testPrincipal = "usuario.prueba"
)

func buildEngine(stock int64) (*inventory.PostTransactionUseCase, *fakeStore, *fakeTxRunner) {
	store := newFakeStore()
	store.addProduct(&entity.Product{
		ID:           testProductID,
		Name:         "Café de grano 1kg",
		SKU:          "CAF-001",
		CurrentStock: stock,
		MinimumStock: 5,
		IsActive:     true,
		CreatedDate:  time.Now(),
		ModifiedDate: time.Now(),
	})
	runner := newFakeTxRunner(store)
	uc := inventory.NewPostTransactionUseCase(runner, &fakeProductRepo{store: store})
	return uc, store, runner
}

func post(t *testing.T, uc *inventory.PostTransactionUseCase, txType string, qty int64) (*entity.StockTransaction, error) {
	t.Helper()
	return uc.Post(context.Background(), inventory.PostInputDTO{
		ProductID:       testProductID,
		TransactionType: txType,
		Quantity:        qty,
		Remarks:         "movimiento de prueba",
		ActingPrincipal: testPrincipal,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Posting — camino feliz por tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestPost_EntradaActualizaKardexYSaldo(t *testing.T) {
	uc, store, _ := buildEngine(10)

	tx, err := post(t, uc, entity.TransactionTypeIN, 5)
	require.NoError(t, err)

	assert.Equal(t, int64(10), tx.StockBefore)
	assert.Equal(t, int64(15), tx.StockAfter)
	assert.Equal(t, int64(5), tx.Quantity)
	assert.Equal(t, testPrincipal, tx.CreatedBy)
	assert.Positive(t, tx.ID, "la entrada confirmada debe traer ID asignado")

	assert.Equal(t, int64(15), store.productStock(testProductID),
		"el saldo del producto debe quedar confirmado junto con el kardex")
	assert.Equal(t, 1, store.ledgerLen())
}

func TestPost_SalidaHastaCero(t *testing.T) {
	uc, store, _ := buildEngine(10)

	tx, err := post(t, uc, entity.TransactionTypeOUT, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(0), tx.StockAfter)
	assert.Equal(t, int64(0), store.productStock(testProductID))
}

func TestPost_AjusteGuardaMagnitud(t *testing.T) {
	uc, store, _ := buildEngine(10)

	// quantity = total absoluto objetivo (4), no un delta
	tx, err := post(t, uc, entity.TransactionTypeADJUSTMENT, 4)
	require.NoError(t, err)

	assert.Equal(t, int64(4), tx.StockAfter)
	assert.Equal(t, int64(6), tx.Quantity, "el kardex registra abs(after-before)")
	assert.Equal(t, int64(4), store.productStock(testProductID))
}

// Un ajuste al valor actual del saldo se postea igual: documenta el conteo físico.
func TestPost_AjusteSinCambioSePostea(t *testing.T) {
	uc, store, _ := buildEngine(10)

	tx, err := post(t, uc, entity.TransactionTypeADJUSTMENT, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(0), tx.Quantity)
	assert.Equal(t, int64(10), tx.StockAfter)
	assert.Equal(t, 1, store.ledgerLen(), "el ajuste sin cambio también deja entrada en el kardex")
}

// ──────────────────────────────────────────────────────────────────────────────
// Posting — rechazos de negocio
// ──────────────────────────────────────────────────────────────────────────────

func TestPost_SalidaInsuficienteNoEscribeNada(t *testing.T) {
	uc, store, _ := buildEngine(10)

	_, err := post(t, uc, entity.TransactionTypeOUT, 11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), store.productStock(testProductID), "el saldo no debe cambiar")
	assert.Equal(t, 0, store.ledgerLen(), "el kardex no debe tener entradas")
}

func TestPost_ProductoInexistente(t *testing.T) {
	uc, _, _ := buildEngine(10)

	_, err := uc.Post(context.Background(), inventory.PostInputDTO{
		ProductID:       "00000000-0000-0000-0000-000000000099",
		TransactionType: entity.TransactionTypeIN,
		Quantity:        1,
		Remarks:         "x",
		ActingPrincipal: testPrincipal,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPost_ValidacionDeEntrada(t *testing.T) {
	uc, _, _ := buildEngine(10)

	cases := []struct {
		name  string
		input inventory.PostInputDTO
	}{
		{"tipo inválido", inventory.PostInputDTO{ProductID: testProductID, TransactionType: "TRANSFER", Quantity: 1, Remarks: "x", ActingPrincipal: testPrincipal}},
		{"cantidad cero", inventory.PostInputDTO{ProductID: testProductID, TransactionType: "IN", Quantity: 0, Remarks: "x", ActingPrincipal: testPrincipal}},
		{"cantidad negativa", inventory.PostInputDTO{ProductID: testProductID, TransactionType: "OUT", Quantity: -3, Remarks: "x", ActingPrincipal: testPrincipal}},
		{"remarks vacío", inventory.PostInputDTO{ProductID: testProductID, TransactionType: "IN", Quantity: 1, Remarks: "   ", ActingPrincipal: testPrincipal}},
		{"remarks demasiado largo", inventory.PostInputDTO{ProductID: testProductID, TransactionType: "IN", Quantity: 1, Remarks: strings.Repeat("a", entity.RemarksMaxLength+1), ActingPrincipal: testPrincipal}},
		{"sin principal", inventory.PostInputDTO{ProductID: testProductID, TransactionType: "IN", Quantity: 1, Remarks: "x"}},
		{"sin producto", inventory.PostInputDTO{TransactionType: "IN", Quantity: 1, Remarks: "x", ActingPrincipal: testPrincipal}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Post(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestPost_RemarksSeRecorta(t *testing.T) {
	uc, _, _ := buildEngine(10)

	tx, err := uc.Post(context.Background(), inventory.PostInputDTO{
		ProductID:       testProductID,
		TransactionType: entity.TransactionTypeIN,
		Quantity:        1,
		Remarks:         "  conteo inicial  ",
		ActingPrincipal: testPrincipal,
	})
	require.NoError(t, err)
	assert.Equal(t, "conteo inicial", tx.Remarks)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad y concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Si la escritura del kardex falla a mitad del posting, el saldo no debe
// cambiar: o se confirman los dos, o ninguno.
func TestPost_FallaDePersistenciaRevierteTodo(t *testing.T) {
	uc, store, runner := buildEngine(10)
	runner.failLedger = true

	_, err := post(t, uc, entity.TransactionTypeIN, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage, "falla de persistencia debe envolverse en ErrStorage")

	assert.Equal(t, int64(10), store.productStock(testProductID), "el saldo no debe cambiar tras rollback")
	assert.Equal(t, 0, store.ledgerLen())
}

// Dos salidas concurrentes de 6 sobre un saldo de 10: exactamente una debe
// confirmar (saldo 4) y la otra fallar con stock insuficiente. Nunca ambas.
func TestPost_SalidasConcurrentesSerializadas(t *testing.T) {
	uc, store, _ := buildEngine(10)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = post(t, uc, entity.TransactionTypeOUT, 6)
		}(i)
	}
	wg.Wait()

	var oks, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			oks++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, oks, "exactamente una salida debe confirmar")
	assert.Equal(t, 1, insufficient, "la otra debe rechazarse por stock insuficiente")
	assert.Equal(t, int64(4), store.productStock(testProductID))
	assert.Equal(t, 1, store.ledgerLen())
}

// Varias entradas concurrentes sobre el mismo producto: el total final debe ser
// la suma exacta y cada entrada del kardex debe encadenar con la siguiente.
func TestPost_EntradasConcurrentesEncadenan(t *testing.T) {
	uc, store, _ := buildEngine(0)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := post(t, uc, entity.TransactionTypeIN, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(n), store.productStock(testProductID))

	ledgerRepo := &fakeLedgerRepo{store: store}
	ledger, err := ledgerRepo.ListByProductAscending(testProductID)
	require.NoError(t, err)
	require.Len(t, ledger, n)
	for i := 1; i < len(ledger); i++ {
		assert.Equal(t, ledger[i-1].StockAfter, ledger[i].StockBefore,
			"cada posting debe partir del saldo que dejó el anterior")
	}
}
