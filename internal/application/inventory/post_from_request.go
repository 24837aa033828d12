package inventory

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// PostFromRequest adapta el request HTTP al caso de uso Post(ctx, PostInputDTO).
// actingPrincipal viene del token JWT (locals del middleware de auth).
func (uc *PostTransactionUseCase) PostFromRequest(ctx context.Context, actingPrincipal string, in dto.PostTransactionRequest) (*dto.StockTransactionResponse, error) {
	tx, err := uc.Post(ctx, PostInputDTO{
		ProductID:       in.ProductID,
		TransactionType: in.TransactionType,
		Quantity:        in.Quantity,
		Remarks:         in.Remarks,
		ActingPrincipal: actingPrincipal,
	})
	if err != nil {
		return nil, err
	}
	resp := toTransactionResponse(tx)
	return &resp, nil
}

func toTransactionResponse(t *entity.StockTransaction) dto.StockTransactionResponse {
	return dto.StockTransactionResponse{
		ID:              t.ID,
		ProductID:       t.ProductID,
		TransactionType: t.TransactionType,
		Quantity:        t.Quantity,
		Remarks:         t.Remarks,
		StockBefore:     t.StockBefore,
		StockAfter:      t.StockAfter,
		CreatedBy:       t.CreatedBy,
		CreatedDate:     t.CreatedDate,
	}
}
