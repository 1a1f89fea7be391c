package catalog

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Tipos de fila del CSV de importación.
const (
	rowTypeCategory = "category"
	rowTypeItem     = "item"
)

// Columnas reconocidas (encabezado de la primera fila; el orden es libre).
const (
	colType             = "type"
	colCategoryTitle    = "categoryTitle"
	colCategoryActive   = "categoryActive"
	colCategoryPosition = "categoryPosition"
	colItemTitle        = "itemTitle"
	colItemDescription  = "itemDescription"
	colItemPrice        = "itemPrice"
	colItemActive       = "itemActive"
	colItemPosition     = "itemPosition"
)

var csvMimeTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"text/plain":               true,
	"application/vnd.ms-excel": true,
}

// AcceptsCSVMime indica si el content-type del archivo subido se acepta como CSV.
func AcceptsCSVMime(mime string) bool {
	m := strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	return csvMimeTypes[m]
}

// importRow fila ya interpretada. RowNumber cuenta el encabezado como fila 1.
type importRow struct {
	RowNumber int
	Type      string

	CategoryTitle    string
	CategoryActive   bool
	CategoryPosition *float64

	ItemTitle       string
	ItemDescription string
	ItemPrice       *decimal.Decimal
	ItemActive      bool
	ItemPosition    *float64
}

// readImportRows interpreta el CSV completo. Un tipo de fila desconocido rechaza todo el archivo.
func readImportRows(r io.Reader) ([]importRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, invalid("no se pudo leer el CSV: %v", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		index[strings.TrimSpace(h)] = i
	}

	var rows []importRow
	for n := 2; ; n++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, invalid("no se pudo leer el CSV: %v", err)
		}
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		rawType := strings.ToLower(strings.TrimSpace(get(colType)))
		row := importRow{RowNumber: n, Type: rawType}
		switch rawType {
		case rowTypeCategory:
			row.CategoryTitle = strings.TrimSpace(get(colCategoryTitle))
			row.CategoryActive = parseBoolean(get(colCategoryActive), true)
			row.CategoryPosition = parseNumber(get(colCategoryPosition))
		case rowTypeItem:
			row.ItemTitle = strings.TrimSpace(get(colItemTitle))
			row.ItemDescription = get(colItemDescription)
			row.ItemPrice = parsePrice(get(colItemPrice))
			row.ItemActive = parseBoolean(get(colItemActive), true)
			row.ItemPosition = parseNumber(get(colItemPosition))
		default:
			return nil, invalid("fila %d: la columna 'type' solo puede ser 'category' o 'item' (valor %q)", n, get(colType))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseBoolean acepta 1/true/yes/si/sí y 0/false/no; cualquier otro valor usa def.
func parseBoolean(value string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "si", "sí":
		return true
	case "0", "false", "no":
		return false
	default:
		return def
	}
}

// parseNumber nil si la celda está vacía o no es un número finito.
func parseNumber(value string) *float64 {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parsePrice(value string) *decimal.Decimal {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return &d
}
