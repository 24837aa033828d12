package entity

import "time"

// Supplier representa un proveedor de productos (referencia opcional desde Product).
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	IsActive      bool
	CreatedDate   time.Time
	ModifiedDate  time.Time
}
