package inventory

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	domaininv "github.com/jhoicas/Kardex-api/internal/domain/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	"github.com/jhoicas/Kardex-api/pkg/logger"
)

// ConsistencyUseCase verificador de consistencia del kardex: recalcula el saldo
// de un producto reproduciendo su kardex completo desde cero y lo compara con el
// escalar almacenado. Una divergencia indica un bug o una escritura por fuera
// del motor; se reporta, nunca se repara. Componente read-only.
type ConsistencyUseCase struct {
	ledgerRepo  repository.StockTransactionRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewConsistencyUseCase construye el verificador.
func NewConsistencyUseCase(ledgerRepo repository.StockTransactionRepository, productRepo repository.ProductRepository, log *logger.Logger) *ConsistencyUseCase {
	return &ConsistencyUseCase{ledgerRepo: ledgerRepo, productRepo: productRepo, log: log}
}

// CheckProduct verifica un producto: replay del kardex vs saldo almacenado.
func (uc *ConsistencyUseCase) CheckProduct(ctx context.Context, productID string) (*dto.ConsistencyReportResponse, error) {
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
	ledger, err := uc.ledgerRepo.ListByProductAscending(productID)
	if err != nil {
		return nil, err
	}
	computed := domaininv.Replay(ledger)
	report := &dto.ConsistencyReportResponse{
		ProductID:     product.ID,
		ProductName:   product.Name,
		StoredStock:   product.CurrentStock,
		ComputedStock: computed,
		Drift:         product.CurrentStock - computed,
		Consistent:    product.CurrentStock == computed,
	}
	if !report.Consistent && uc.log != nil {
		uc.log.Warn().
			Str("product_id", product.ID).
			Int64("stored", report.StoredStock).
			Int64("computed", report.ComputedStock).
			Msg("kardex inconsistente con el saldo almacenado")
	}
	return report, nil
}

// CheckAll recorre todos los productos y devuelve solo los que presentan
// divergencia. Pensado para ejecutarse como verificación periódica en segundo
// plano o bajo demanda desde un endpoint de diagnóstico.
func (uc *ConsistencyUseCase) CheckAll(ctx context.Context) ([]dto.ConsistencyReportResponse, error) {
	const batch = 200
	var drifted []dto.ConsistencyReportResponse
	for offset := 0; ; offset += batch {
		products, err := uc.productRepo.List(batch, offset, "")
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			break
		}
		for _, p := range products {
			report, err := uc.CheckProduct(ctx, p.ID)
			if err != nil {
				return nil, err
			}
			if !report.Consistent {
				drifted = append(drifted, *report)
			}
		}
		if len(products) < batch {
			break
		}
	}
	return drifted, nil
}
