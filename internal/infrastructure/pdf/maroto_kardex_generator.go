// Package pdf implementa la generación del reporte Kardex en PDF: el historial
// de movimientos de un producto con saldo antes/después de cada transacción.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del producto + SKU  │  Fecha de emisión      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FICHA: Categoría / Stock actual / Stock mínimo / Precio     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Fecha | Tipo | Cant | Antes | Después | Usuario  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: saldo final según kardex                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Kardex-api/internal/application/reports"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Kardex-api/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ reports.KardexPDFGenerator = (*MarotoKardexGenerator)(nil)

// MarotoKardexGenerator implementa reports.KardexPDFGenerator usando Maroto v2.
type MarotoKardexGenerator struct{}

// NewMarotoKardexGenerator construye el generador.
func NewMarotoKardexGenerator() *MarotoKardexGenerator { return &MarotoKardexGenerator{} }

// GenerateKardexPDF genera el PDF y devuelve sus bytes.
func (g *MarotoKardexGenerator) GenerateKardexPDF(
	_ context.Context,
	product *entity.Product,
	category *entity.Category,
	ledger []*entity.StockTransaction,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex de producto", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(productSheetRow(product, category))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLedgerRows(ledger) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(product, ledger))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + SKU (izq) y fecha de emisión (der).
func headerRow(product *entity.Product) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SKU: "+nonEmpty(product.SKU, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("KARDEX DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// productSheetRow: ficha del producto.
func productSheetRow(product *entity.Product, category *entity.Category) core.Row {
	categoryName := "—"
	if category != nil {
		categoryName = category.Name
	}
	estado := "activo"
	if !product.IsActive {
		estado = "inactivo"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("FICHA DEL PRODUCTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Categoría: %s   |   Stock actual: %d   |   Stock mínimo: %d   |   Precio: %s   |   Estado: %s",
				categoryName, product.CurrentStock, product.MinimumStock,
				product.UnitPrice.StringFixed(2), estado,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla del kardex.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Center),
		h("Cant.", 1, align.Right),
		h("Antes", 1, align.Right),
		h("Después", 1, align.Right),
		h("Usuario", 2, align.Left),
		h("Observaciones", 2, align.Left),
	)
}

// tableLedgerRows: una fila por entrada del kardex, en orden de creación.
func tableLedgerRows(ledger []*entity.StockTransaction) []core.Row {
	result := make([]core.Row, 0, len(ledger))
	for _, t := range ledger {
		typeColor := colorGray
		if t.TransactionType == entity.TransactionTypeOUT {
			typeColor = colorRed
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", t.ID),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				t.CreatedDate.Format("02/01/2006 15:04"),
				props.Text{Size: 8, Top: 1},
			)),
			col.New(2).Add(text.New(
				t.TransactionType,
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: typeColor},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", t.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", t.StockBefore),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", t.StockAfter),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(2).Add(text.New(
				t.CreatedBy,
				props.Text{Size: 8, Top: 1},
			)),
			col.New(2).Add(text.New(
				t.Remarks,
				props.Text{Size: 7, Top: 1, Color: colorGray},
			)),
		))
	}
	return result
}

// footerRow: saldo final según replay del kardex (debe coincidir con el escalar).
func footerRow(product *entity.Product, ledger []*entity.StockTransaction) core.Row {
	replayed := domaininv.Replay(ledger)
	note := ""
	if replayed != product.CurrentStock {
		note = "   (¡no coincide con el saldo almacenado!)"
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Saldo final según kardex: %d%s", replayed, note), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
