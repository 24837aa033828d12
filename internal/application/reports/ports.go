package reports

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// KardexPDFGenerator genera el PDF del kardex de un producto.
// Implementado en infraestructura (Maroto v2).
type KardexPDFGenerator interface {
	GenerateKardexPDF(
		ctx context.Context,
		product *entity.Product,
		category *entity.Category,
		ledger []*entity.StockTransaction,
	) ([]byte, error)
}
