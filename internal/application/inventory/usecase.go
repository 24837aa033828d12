package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Kardex-api/internal/domain/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// PostTransactionUseCase registra transacciones de stock (IN, OUT, ADJUSTMENT)
// de forma transaccional, con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
//
// Es el único escritor autorizado de Product.CurrentStock y el único creador de
// entradas del kardex. Toda falla aborta el posting completo sin escrituras
// parciales: o quedan confirmados kardex y saldo juntos, o ninguno.
type PostTransactionUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewPostTransactionUseCase construye el caso de uso.
func NewPostTransactionUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *PostTransactionUseCase {
	return &PostTransactionUseCase{txRunner: txRunner, productRepo: productRepo}
}

// PostInputDTO entrada para registrar una transacción de stock.
// Quantity siempre debe ser > 0; para ADJUSTMENT representa el total absoluto
// objetivo del saldo, no un delta.
type PostInputDTO struct {
	ProductID       string
	TransactionType string
	Quantity        int64
	Remarks         string
	ActingPrincipal string // identificador opaco del colaborador de auth, solo auditoría
}

// Post valida la entrada, inicia una transacción, bloquea la fila del producto,
// calcula el saldo resultante según el tipo y confirma kardex + saldo como una
// unidad atómica. Devuelve la entrada del kardex confirmada con su ID asignado.
//
// Fallas de negocio: ErrNotFound, ErrInvalidInput, ErrInsufficientStock (nunca
// se reintentan). Fallas de persistencia se envuelven en ErrStorage; el caller
// puede reintentar la operación completa porque nada quedó confirmado.
func (uc *PostTransactionUseCase) Post(ctx context.Context, input PostInputDTO) (*entity.StockTransaction, error) {
	if input.ProductID == "" || input.ActingPrincipal == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidTransactionType(input.TransactionType) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	remarks := strings.TrimSpace(input.Remarks)
	if remarks == "" || len(remarks) > entity.RemarksMaxLength {
		return nil, domain.ErrInvalidInput
	}

	// Existencia del producto antes de abrir la transacción: NotFound barato
	// sin tomar locks. Se revalida dentro de la tx al tomar el lock.
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar producto: %v", domain.ErrStorage, err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var committed *entity.StockTransaction

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace).
	// El TxRunner reintenta fn completa un número acotado de veces ante contención,
	// por eso committed se asigna solo al final del callback.
	err = uc.txRunner.Run(ctx, func(
		ledgerRepo repository.StockTransactionRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto (SELECT FOR UPDATE): serializa postings
		// concurrentes sobre el mismo producto.
		locked, err := productRepo.GetByIDForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}

		res, err := domaininv.ComputePosting(input.TransactionType, locked.CurrentStock, input.Quantity)
		if err != nil {
			return err
		}

		now := time.Now()
		tx := &entity.StockTransaction{
			ProductID:       locked.ID,
			TransactionType: input.TransactionType,
			Quantity:        res.LedgerQuantity,
			Remarks:         remarks,
			StockBefore:     res.StockBefore,
			StockAfter:      res.StockAfter,
			CreatedBy:       input.ActingPrincipal,
			CreatedDate:     now,
		}
		if err := ledgerRepo.Create(tx); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(locked.ID, res.StockAfter, now); err != nil {
			return err
		}
		committed = tx
		return nil
	})
	if err != nil {
		if isBusinessError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: posting: %v", domain.ErrStorage, err)
	}
	return committed, nil
}

// isBusinessError distingue las fallas de negocio (se devuelven tal cual, no
// reintentables) de las fallas de persistencia (se envuelven en ErrStorage).
func isBusinessError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrInsufficientStock)
}
