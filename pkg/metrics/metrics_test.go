package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Menu-api/pkg/metrics"
)

func TestOrderingMetrics_Contadores(t *testing.T) {
	reg := metrics.New()
	reg.Ordering.Append("items")
	reg.Ordering.Append("items")
	reg.Ordering.Rebalance("categories", 3)

	n, err := testutil.GatherAndCount(reg.Prometheus(),
		"menu_api_ordering_appends_total",
		"menu_api_ordering_rebalances_total",
		"menu_api_ordering_rebalance_rows_written_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "una serie por cada métrica con datos")
}

func TestOrderingMetrics_NilEsSeguro(t *testing.T) {
	var m *metrics.OrderingMetrics
	assert.NotPanics(t, func() {
		m.Append("items")
		m.Move("items")
		m.Rebalance("items", 10)
		m.Fallback("items")
	})
	var im *metrics.ImportMetrics
	assert.NotPanics(t, func() { im.Row("item", "created") })
}
