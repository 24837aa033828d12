package entity

import "time"

// Category representa una categoría de productos.
// No puede eliminarse mientras existan productos que la referencien.
type Category struct {
	ID           string
	Name         string // único
	Description  string
	CreatedDate  time.Time
	ModifiedDate time.Time
}
