package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptsCSVMime(t *testing.T) {
	for _, mime := range []string{"text/csv", "TEXT/CSV; charset=utf-8", "application/vnd.ms-excel", "text/plain"} {
		assert.True(t, AcceptsCSVMime(mime), mime)
	}
	for _, mime := range []string{"", "application/json", "image/png"} {
		assert.False(t, AcceptsCSVMime(mime), mime)
	}
}

func TestParseBoolean(t *testing.T) {
	assert.True(t, parseBoolean("Sí", false))
	assert.True(t, parseBoolean(" yes ", false))
	assert.False(t, parseBoolean("NO", true))
	assert.False(t, parseBoolean("0", true))
	assert.True(t, parseBoolean("", true))
	assert.False(t, parseBoolean("quizás", false))
}

func TestParseNumber(t *testing.T) {
	assert.Nil(t, parseNumber(""))
	assert.Nil(t, parseNumber("NaN"))
	assert.Nil(t, parseNumber("Inf"))
	assert.Nil(t, parseNumber("doce"))
	require.NotNil(t, parseNumber(" 12.5 "))
	assert.Equal(t, 12.5, *parseNumber(" 12.5 "))
}

func TestReadImportRows_ColumnasEnCualquierOrdenYBOM(t *testing.T) {
	body := "\ufeffitemTitle,type,categoryTitle,itemPrice\n" +
		"Muzza,item,,1200\n" +
		",category,Pizzas,\n"

	rows, err := readImportRows(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].RowNumber)
	assert.Equal(t, rowTypeItem, rows[0].Type)
	assert.Equal(t, "Muzza", rows[0].ItemTitle)
	require.NotNil(t, rows[0].ItemPrice)
	assert.Equal(t, "1200", rows[0].ItemPrice.String())
	assert.True(t, rows[0].ItemActive)

	assert.Equal(t, 3, rows[1].RowNumber)
	assert.Equal(t, rowTypeCategory, rows[1].Type)
	assert.Equal(t, "Pizzas", rows[1].CategoryTitle)
}

func TestReadImportRows_FilasCortas(t *testing.T) {
	rows, err := readImportRows(strings.NewReader("type,categoryTitle,categoryActive\ncategory,Pizzas\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].CategoryActive)
}

func TestReadImportRows_TipoDesconocido(t *testing.T) {
	_, err := readImportRows(strings.NewReader("type\ncategory\nbebida\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fila 3")
}
