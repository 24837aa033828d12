package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP del kardex: registro de
// transacciones, historial, recientes, stock bajo y verificación de
// consistencia (protegido).
type InventoryHandler struct {
	post        *inventory.PostTransactionUseCase
	query       *inventory.QueryUseCase
	consistency *inventory.ConsistencyUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	post *inventory.PostTransactionUseCase,
	query *inventory.QueryUseCase,
	consistency *inventory.ConsistencyUseCase,
) *InventoryHandler {
	return &InventoryHandler{post: post, query: query, consistency: consistency}
}

// PostTransaction godoc
// @Summary      Registrar transacción de stock
// @Description  IN suma quantity al saldo; OUT resta (falla con 409 si quedaría
//
//	negativo); ADJUSTMENT fija el saldo en quantity como total absoluto.
//	El kardex y el saldo se confirman como una unidad atómica.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostTransactionRequest  true  "product_id, transaction_type (IN|OUT|ADJUSTMENT), quantity > 0, remarks"
// @Success      201   {object}  dto.StockTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [post]
func (h *InventoryHandler) PostTransaction(c *fiber.Ctx) error {
	username := GetUsername(c)
	if username == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.PostTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.post.PostFromRequest(c.Context(), username, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo, cantidad o remarks inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para la salida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetHistory godoc
// @Summary      Historial de transacciones de un producto
// @Description  Kardex del producto, más reciente primero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}   dto.StockTransactionResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/transactions [get]
func (h *InventoryHandler) GetHistory(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.query.GetHistory(c.Context(), id, page)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetRecent godoc
// @Summary      Transacciones recientes
// @Description  Últimas N transacciones de todos los productos con nombre de
//
//	producto y categoría, para el dashboard.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        count  query  int  false  "Cantidad"  default(10)
// @Success      200    {array}  dto.RecentTransactionResponse
// @Router       /api/inventory/transactions/recent [get]
func (h *InventoryHandler) GetRecent(c *fiber.Ctx) error {
	count := c.QueryInt("count", inventory.DefaultRecentCount)
	out, err := h.query.GetRecent(c.Context(), count)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetLowStock godoc
// @Summary      Productos con stock bajo
// @Description  Productos activos cuyo saldo está por debajo de su mínimo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	out, err := h.query.GetLowStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CheckConsistency godoc
// @Summary      Verificar consistencia del kardex de un producto
// @Description  Recalcula el saldo reproduciendo el kardex completo y lo compara
//
//	con el saldo almacenado. Solo reporta; nunca repara.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ConsistencyReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/consistency [get]
func (h *InventoryHandler) CheckConsistency(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.consistency.CheckProduct(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CheckConsistencyAll godoc
// @Summary      Verificar consistencia de todo el inventario
// @Description  Recorre todos los productos y devuelve solo los que presentan
//
//	divergencia entre el kardex y el saldo almacenado.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory/consistency [get]
func (h *InventoryHandler) CheckConsistencyAll(c *fiber.Ctx) error {
	drifted, err := h.consistency.CheckAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"consistent": len(drifted) == 0,
		"drifted":    drifted,
	})
}
