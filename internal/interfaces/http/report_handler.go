package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/reports"
	"github.com/jhoicas/Kardex-api/internal/domain"
)

// ReportHandler descarga de reportes PDF (protegido).
type ReportHandler struct {
	kardex *reports.KardexUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(kardex *reports.KardexUseCase) *ReportHandler {
	return &ReportHandler{kardex: kardex}
}

// DownloadKardexPDF godoc
// @Summary      Descargar kardex de un producto en PDF
// @Description  Historial completo de transacciones del producto con los saldos
//
//	antes y después de cada una.
//
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/products/{id}/kardex [get]
func (h *ReportHandler) DownloadKardexPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, filename, err := h.kardex.DownloadKardexPDF(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
