package reports

import (
	"context"
	"fmt"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// KardexUseCase genera el reporte PDF del kardex de un producto: su historial
// completo de transacciones con los saldos antes/después de cada una.
type KardexUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	ledgerRepo   repository.StockTransactionRepository
	generator    KardexPDFGenerator
}

// NewKardexUseCase construye el caso de uso inyectando sus dependencias.
func NewKardexUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	ledgerRepo repository.StockTransactionRepository,
	generator KardexPDFGenerator,
) *KardexUseCase {
	return &KardexUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		ledgerRepo:   ledgerRepo,
		generator:    generator,
	}
}

// DownloadKardexPDF recupera producto, categoría y kardex completo (orden de
// creación) y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el producto no existe.
func (uc *KardexUseCase) DownloadKardexPDF(ctx context.Context, productID string) (pdfBytes []byte, filename string, err error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, "", fmt.Errorf("kardex pdf: obtener producto: %w", err)
	}
	if product == nil {
		return nil, "", domain.ErrNotFound
	}
	category, err := uc.categoryRepo.GetByID(product.CategoryID)
	if err != nil {
		return nil, "", fmt.Errorf("kardex pdf: obtener categoría: %w", err)
	}
	ledger, err := uc.ledgerRepo.ListByProductAscending(productID)
	if err != nil {
		return nil, "", fmt.Errorf("kardex pdf: obtener kardex: %w", err)
	}
	bytes, err := uc.generator.GenerateKardexPDF(ctx, product, category, ledger)
	if err != nil {
		return nil, "", fmt.Errorf("kardex pdf: generar: %w", err)
	}
	name := product.SKU
	if name == "" {
		name = product.ID
	}
	return bytes, fmt.Sprintf("kardex-%s.pdf", name), nil
}
