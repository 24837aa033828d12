package inventory

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// DefaultRecentCount cantidad por defecto para GetRecent.
const DefaultRecentCount = 10

// QueryUseCase proyecciones read-only del kardex y del stock para la capa de
// presentación: historial por producto, transacciones recientes y stock bajo.
// Solo lee valores confirmados; no contiene reglas de negocio más allá de
// filtro y orden.
type QueryUseCase struct {
	ledgerRepo  repository.StockTransactionRepository
	productRepo repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(ledgerRepo repository.StockTransactionRepository, productRepo repository.ProductRepository) *QueryUseCase {
	return &QueryUseCase{ledgerRepo: ledgerRepo, productRepo: productRepo}
}

// GetHistory devuelve el kardex de un producto, más reciente primero.
func (uc *QueryUseCase) GetHistory(ctx context.Context, productID string, page dto.PageRequest) ([]dto.StockTransactionResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, err := uc.ledgerRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockTransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransactionResponse(t))
	}
	return out, nil
}

// GetRecent devuelve las últimas count transacciones de todos los productos,
// más reciente primero, con nombre de producto y categoría para el dashboard.
// count <= 0 usa DefaultRecentCount.
func (uc *QueryUseCase) GetRecent(ctx context.Context, count int) ([]dto.RecentTransactionResponse, error) {
	if count <= 0 {
		count = DefaultRecentCount
	}
	list, err := uc.ledgerRepo.ListRecent(count)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecentTransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.RecentTransactionResponse{
			StockTransactionResponse: toTransactionResponse(&t.StockTransaction),
			ProductName:              t.ProductName,
			ProductSKU:               t.ProductSKU,
			CategoryName:             t.CategoryName,
		})
	}
	return out, nil
}

// GetLowStock devuelve los productos activos con saldo por debajo de su mínimo.
func (uc *QueryUseCase) GetLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProductResponse{
			ID:           p.ID,
			Name:         p.Name,
			SKU:          p.SKU,
			Description:  p.Description,
			UnitPrice:    p.UnitPrice,
			CurrentStock: p.CurrentStock,
			MinimumStock: p.MinimumStock,
			CategoryID:   p.CategoryID,
			SupplierID:   p.SupplierID,
			IsActive:     p.IsActive,
			LowStock:     p.IsLowStock(),
			CreatedDate:  p.CreatedDate,
			ModifiedDate: p.ModifiedDate,
		})
	}
	return out, nil
}
