package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// CurrentStock es el saldo autoritativo; solo el motor de kardex puede escribirlo
// (vía posting de transacciones). MinimumStock es el umbral de stock bajo.
type Product struct {
	ID           string
	SKU          string // código único global, opcional
	Name         string
	Description  string
	UnitPrice    decimal.Decimal // precio unitario, 2 decimales, >= 0
	CurrentStock int64           // saldo actual, nunca negativo
	MinimumStock int64           // umbral para alerta de stock bajo
	CategoryID   string          // FK obligatoria
	SupplierID   string          // FK opcional (vacío = sin proveedor)
	IsActive     bool
	CreatedDate  time.Time
	ModifiedDate time.Time // se actualiza en cada mutación, incluidos postings
}

// IsLowStock indica si el producto está por debajo de su umbral mínimo.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock < p.MinimumStock
}
