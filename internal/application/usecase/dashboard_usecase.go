package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen de inventario para el dashboard.
//
// Fuente de datos: DashboardRepository (consultas read-only de agregados).
// Solo proyecciones de conteo/suma; sin reglas de negocio.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetSummary construye el DashboardSummaryDTO del día actual.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	products, err := uc.repo.CountProducts()
	if err != nil {
		return nil, err
	}
	categories, err := uc.repo.CountCategories()
	if err != nil {
		return nil, err
	}
	suppliers, err := uc.repo.CountSuppliers()
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.repo.CountLowStockProducts()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	txToday, err := uc.repo.CountTransactionsSince(startOfDay)
	if err != nil {
		return nil, err
	}
	value, err := uc.repo.TotalInventoryValue()
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummaryDTO{
		TotalProducts:       products,
		TotalCategories:     categories,
		TotalSuppliers:      suppliers,
		LowStockProducts:    lowStock,
		TransactionsToday:   txToday,
		TotalInventoryValue: value,
	}, nil
}
