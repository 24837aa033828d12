package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// El stock inicial siempre es 0; cargarlo requiere un posting IN con remarks.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	MinimumStock int64           `json:"minimum_stock"`
	CategoryID   string          `json:"category_id"`
	SupplierID   string          `json:"supplier_id"`
}

// UpdateProductRequest entrada para actualizar un producto (nunca CurrentStock).
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	SKU          *string          `json:"sku"`
	Description  *string          `json:"description"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	MinimumStock *int64           `json:"minimum_stock"`
	CategoryID   *string          `json:"category_id"`
	SupplierID   *string          `json:"supplier_id"`
	IsActive     *bool            `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku,omitempty"`
	Description  string          `json:"description,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CurrentStock int64           `json:"current_stock"`
	MinimumStock int64           `json:"minimum_stock"`
	CategoryID   string          `json:"category_id"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	IsActive     bool            `json:"is_active"`
	LowStock     bool            `json:"low_stock"`
	CreatedDate  time.Time       `json:"created_date"`
	ModifiedDate time.Time       `json:"modified_date"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
