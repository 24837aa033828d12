package dto

import "time"

// PostTransactionRequest entrada para registrar una transacción de stock.
// Para IN/OUT, quantity es la cantidad a mover. Para ADJUSTMENT, quantity es el
// total absoluto objetivo del saldo (no un delta); en ambos casos debe ser > 0.
type PostTransactionRequest struct {
	ProductID       string `json:"product_id"`
	TransactionType string `json:"transaction_type"` // IN, OUT, ADJUSTMENT
	Quantity        int64  `json:"quantity"`
	Remarks         string `json:"remarks"`
}

// StockTransactionResponse entrada del kardex confirmada.
type StockTransactionResponse struct {
	ID              int64     `json:"id"`
	ProductID       string    `json:"product_id"`
	TransactionType string    `json:"transaction_type"`
	Quantity        int64     `json:"quantity"`
	Remarks         string    `json:"remarks"`
	StockBefore     int64     `json:"stock_before"`
	StockAfter      int64     `json:"stock_after"`
	CreatedBy       string    `json:"created_by"`
	CreatedDate     time.Time `json:"created_date"`
}

// RecentTransactionResponse entrada del kardex con datos del producto para listados.
type RecentTransactionResponse struct {
	StockTransactionResponse
	ProductName  string `json:"product_name"`
	ProductSKU   string `json:"product_sku,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

// ConsistencyReportResponse resultado del verificador de consistencia para un producto.
type ConsistencyReportResponse struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	StoredStock   int64  `json:"stored_stock"`
	ComputedStock int64  `json:"computed_stock"`
	Drift         int64  `json:"drift"`
	Consistent    bool   `json:"consistent"`
}
