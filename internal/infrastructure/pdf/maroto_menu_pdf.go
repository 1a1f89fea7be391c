// Package pdf genera la carta imprimible de un menú con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────┐
//	│  TÍTULO DEL MENÚ                            │
//	│  ─────────────────────────────────────────  │
//	│  CATEGORÍA                                  │
//	│    Ítem ................................ $  │
//	│    descripción                              │
//	│  ...                                        │
//	│  ─────────────────────────────────────────  │
//	│  QR al menú público + URL                   │
//	└─────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Menu-api/internal/application/catalog"
	"github.com/jhoicas/Menu-api/internal/application/dto"
)

var _ catalog.MenuPDFGenerator = (*MarotoMenuPDF)(nil)

var (
	colorPrimary = &props.Color{Red: 120, Green: 30, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoMenuPDF implementa catalog.MenuPDFGenerator.
type MarotoMenuPDF struct{}

// NewMarotoMenuPDF construye el generador.
func NewMarotoMenuPDF() *MarotoMenuPDF { return &MarotoMenuPDF{} }

// Generate arma el documento y devuelve sus bytes.
func (g *MarotoMenuPDF) Generate(menu dto.PrintableMenu) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(menu.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(menu.Title))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.6}))
	for _, c := range menu.Categories {
		m.AddRows(categoryRows(c)...)
	}
	if menu.PublicURL != "" {
		m.AddRows(line.NewRow(4))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(qrRow(menu.PublicURL))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(title string) core.Row {
	return row.New(16).Add(col.New(12).Add(
		text.New(strings.ToUpper(title), props.Text{
			Style: fontstyle.Bold, Size: 18, Align: align.Center, Color: colorPrimary, Top: 3,
		}),
	))
}

func categoryRows(c dto.PrintableCategory) []core.Row {
	rows := []core.Row{
		row.New(12).Add(col.New(12).Add(
			text.New(c.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 5}),
		)),
	}
	for _, it := range c.Items {
		price := ""
		if it.Price != nil {
			price = "$" + formatPrice(*it.Price)
		}
		rows = append(rows, row.New(7).Add(
			col.New(9).Add(text.New(it.Title, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1, Left: 3})),
			col.New(3).Add(text.New(price, props.Text{Size: 10, Align: align.Right, Top: 1})),
		))
		if d := strings.TrimSpace(it.Description); d != "" {
			rows = append(rows, row.New(6).Add(col.New(12).Add(
				text.New(d, props.Text{Size: 8, Color: colorGray, Left: 3}),
			)))
		}
	}
	return rows
}

func qrRow(url string) core.Row {
	return row.New(45).Add(
		col.New(4).Add(code.NewQr(url, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Escaneá el código para ver la carta actualizada.", props.Text{
				Size: 9, Top: 10, Left: 3, Color: colorGray,
			}),
			text.New(url, props.Text{Size: 8, Top: 20, Left: 3, Color: colorPrimary}),
		),
	)
}

// formatPrice separa miles con punto y usa coma decimal; omite ",00".
// Ej: 1500 -> "1.500", 1234.5 -> "1.234,50".
func formatPrice(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")

	n := len(whole)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range []byte(whole) {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(c)
	}
	if frac != "" && frac != "00" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	return b.String()
}
