package inventory

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad entre el kardex y el saldo del producto:
// ambos se confirman juntos o se revierten juntos.
//
// El contrato de concurrencia del motor descansa aquí: dentro de fn, el primer
// GetByIDForUpdate serializa los postings sobre el mismo producto; productos
// distintos no se bloquean entre sí. La implementación puede reintentar fn
// completa un número acotado de veces ante contención de locks, por lo que fn
// debe ser re-ejecutable (no debe tener efectos fuera de los repos recibidos).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.StockTransactionRepository,
		productRepo repository.ProductRepository,
	) error) error
}
