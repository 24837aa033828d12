package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

const productNameMaxLength = 255

// ProductUseCase casos de uso CRUD para productos.
// CurrentStock nunca se toca aquí: es propiedad exclusiva del motor de kardex.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	ledgerRepo   repository.StockTransactionRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	ledgerRepo repository.StockTransactionRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, supplierRepo: supplierRepo, ledgerRepo: ledgerRepo}
}

// Create crea un producto con stock 0. El stock inicial se carga con un posting IN.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || len(in.Name) > productNameMaxLength {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.LessThan(decimal.Zero) || in.MinimumStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
	}
	if in.SKU != "" {
		existing, _ := uc.repo.GetBySKU(in.SKU)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		UnitPrice:    in.UnitPrice.Round(2),
		CurrentStock: 0,
		MinimumStock: in.MinimumStock,
		CategoryID:   in.CategoryID,
		SupplierID:   in.SupplierID,
		IsActive:     true,
		CreatedDate:  now,
		ModifiedDate: now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación y búsqueda opcional por nombre/SKU
// (insensible a acentos; la normalización ocurre en el repositorio).
func (uc *ProductUseCase) List(page dto.PageRequest, search string) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset, search)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza campos del producto. CurrentStock jamás se modifica por aquí.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" || len(*in.Name) > productNameMaxLength {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.SKU != nil && *in.SKU != product.SKU {
		if *in.SKU != "" {
			existing, _ := uc.repo.GetBySKU(*in.SKU)
			if existing != nil && existing.ID != product.ID {
				return nil, domain.ErrDuplicate
			}
		}
		product.SKU = *in.SKU
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.UnitPrice = in.UnitPrice.Round(2)
	}
	if in.MinimumStock != nil {
		if *in.MinimumStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinimumStock = *in.MinimumStock
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = *in.CategoryID
	}
	if in.SupplierID != nil {
		if *in.SupplierID != "" {
			supplier, err := uc.supplierRepo.GetByID(*in.SupplierID)
			if err != nil {
				return nil, err
			}
			if supplier == nil {
				return nil, domain.ErrNotFound
			}
		}
		product.SupplierID = *in.SupplierID
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.ModifiedDate = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Regla de negocio: no se puede eliminar un producto
// con stock distinto de cero ni con historial en el kardex (restrict-delete:
// la pista de auditoría vive para siempre).
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CurrentStock != 0 {
		return domain.ErrConflict
	}
	count, err := uc.ledgerRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
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
	}
}
