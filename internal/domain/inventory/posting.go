package inventory

import (
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// PostingResult resultado del cálculo puro de un posting (servicio de dominio).
type PostingResult struct {
	StockBefore int64
	StockAfter  int64
	// LedgerQuantity es la cantidad que se persiste en el kardex.
	// IN/OUT: la cantidad enviada. ADJUSTMENT: abs(after-before), porque el
	// caller envía el total absoluto objetivo y el kardex registra la magnitud
	// del cambio realmente aplicado.
	LedgerQuantity int64
}

// ComputePosting calcula el saldo resultante de una transacción según su tipo.
//
//	IN:         after = before + quantity (sin tope superior)
//	OUT:        after = before - quantity; negativo → ErrInsufficientStock
//	ADJUSTMENT: quantity es el total absoluto objetivo; after = quantity
//
// quantity debe ser > 0 para cualquier tipo (contrato de entrada); un ajuste al
// mismo valor del saldo actual produce LedgerQuantity = 0 pero es válido.
func ComputePosting(transactionType string, stockBefore, quantity int64) (PostingResult, error) {
	if quantity <= 0 {
		return PostingResult{}, domain.ErrInvalidInput
	}
	res := PostingResult{StockBefore: stockBefore}
	switch transactionType {
	case entity.TransactionTypeIN:
		res.StockAfter = stockBefore + quantity
		res.LedgerQuantity = quantity
	case entity.TransactionTypeOUT:
		after := stockBefore - quantity
		if after < 0 {
			return PostingResult{}, domain.ErrInsufficientStock
		}
		res.StockAfter = after
		res.LedgerQuantity = quantity
	case entity.TransactionTypeADJUSTMENT:
		res.StockAfter = quantity
		delta := quantity - stockBefore
		if delta < 0 {
			delta = -delta
		}
		res.LedgerQuantity = delta
	default:
		return PostingResult{}, domain.ErrInvalidInput
	}
	return res, nil
}

// Replay recalcula el saldo de un producto aplicando su kardex completo en orden
// de creación, partiendo de cero. Usado por el verificador de consistencia.
func Replay(ledger []*entity.StockTransaction) int64 {
	var balance int64
	for _, tx := range ledger {
		balance += tx.SignedDelta()
	}
	return balance
}
