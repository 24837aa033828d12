package entity

import "time"

// Tipos de transacción de stock (conjunto cerrado).
const (
	TransactionTypeIN         = "IN"         // entrada
	TransactionTypeOUT        = "OUT"        // salida
	TransactionTypeADJUSTMENT = "ADJUSTMENT" // ajuste a un valor absoluto
)

// RemarksMaxLength longitud máxima del campo Remarks.
const RemarksMaxLength = 500

// ValidTransactionType indica si el tipo pertenece al conjunto cerrado.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeIN, TransactionTypeOUT, TransactionTypeADJUSTMENT:
		return true
	}
	return false
}

// StockTransaction es una entrada del kardex: registro inmutable y append-only.
// ID es asignado por la base (BIGSERIAL), creciente por orden de creación.
// StockBefore/StockAfter los calcula el motor; nunca los aporta el caller.
// Para ADJUSTMENT, Quantity guarda la magnitud del cambio aplicado
// (abs(after-before)), no el valor absoluto que envió el caller.
type StockTransaction struct {
	ID              int64
	ProductID       string
	TransactionType string
	Quantity        int64
	Remarks         string
	StockBefore     int64
	StockAfter      int64
	CreatedBy       string // principal actuante (string opaco del colaborador de auth)
	CreatedDate     time.Time
}

// SignedDelta devuelve el cambio con signo que esta entrada aplicó al saldo.
// IN: +Quantity, OUT: -Quantity, ADJUSTMENT: sign(after-before)*Quantity.
// Se usa para el replay del kardex en el verificador de consistencia.
func (t *StockTransaction) SignedDelta() int64 {
	switch t.TransactionType {
	case TransactionTypeIN:
		return t.Quantity
	case TransactionTypeOUT:
		return -t.Quantity
	case TransactionTypeADJUSTMENT:
		if t.StockAfter < t.StockBefore {
			return -t.Quantity
		}
		return t.Quantity
	}
	return 0
}

// StockTransactionWithProduct entrada del kardex con datos denormalizados del
// producto para listados (transacciones recientes del dashboard).
type StockTransactionWithProduct struct {
	StockTransaction
	ProductName  string
	ProductSKU   string
	CategoryName string
}
