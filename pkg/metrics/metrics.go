// Package metrics agrupa los contadores Prometheus de la API en un registro propio
// (no el global) para poder exponerlo en /metrics y aislarlo en tests.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "menu_api"

// Registry registro Prometheus con las métricas de ordenamiento e importación.
type Registry struct {
	reg      *prometheus.Registry
	Ordering *OrderingMetrics
	Import   *ImportMetrics
}

// New crea el registro, registra las métricas propias y las del runtime de Go.
func New() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		reg:      reg,
		Ordering: newOrderingMetrics(),
		Import:   newImportMetrics(),
	}
	reg.MustRegister(
		r.Ordering.appends, r.Ordering.moves, r.Ordering.rebalances,
		r.Ordering.rewrites, r.Ordering.fallbacks,
		r.Import.rows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Prometheus devuelve el registro subyacente (para promhttp).
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.reg
}

// OrderingMetrics contadores del motor de posiciones, por grupo ("categories", "items").
// Un *OrderingMetrics nil es válido y no registra nada.
type OrderingMetrics struct {
	appends    *prometheus.CounterVec
	moves      *prometheus.CounterVec
	rebalances *prometheus.CounterVec
	rewrites   *prometheus.CounterVec
	fallbacks  *prometheus.CounterVec
}

func newOrderingMetrics() *OrderingMetrics {
	vec := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ordering",
			Name:      name,
			Help:      help,
		}, []string{"group"})
	}
	return &OrderingMetrics{
		appends:    vec("appends_total", "Posiciones asignadas al final del grupo"),
		moves:      vec("moves_total", "Posiciones resueltas por inserción entre vecinos"),
		rebalances: vec("rebalances_total", "Rebalanceos completos de un grupo"),
		rewrites:   vec("rebalance_rows_written_total", "Filas reescritas por rebalanceos"),
		fallbacks:  vec("fallbacks_total", "Resoluciones que cayeron en la posición de respaldo"),
	}
}

// Append cuenta una posición asignada al final.
func (m *OrderingMetrics) Append(group string) {
	if m == nil {
		return
	}
	m.appends.WithLabelValues(group).Inc()
}

// Move cuenta una posición resuelta entre vecinos.
func (m *OrderingMetrics) Move(group string) {
	if m == nil {
		return
	}
	m.moves.WithLabelValues(group).Inc()
}

// Rebalance cuenta un rebalanceo y las filas que tuvo que escribir.
func (m *OrderingMetrics) Rebalance(group string, rowsWritten int) {
	if m == nil {
		return
	}
	m.rebalances.WithLabelValues(group).Inc()
	m.rewrites.WithLabelValues(group).Add(float64(rowsWritten))
}

// Fallback cuenta una resolución que no encontró espacio ni tras rebalancear.
func (m *OrderingMetrics) Fallback(group string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(group).Inc()
}

// ImportMetrics contadores de filas procesadas por la importación CSV.
type ImportMetrics struct {
	rows *prometheus.CounterVec
}

func newImportMetrics() *ImportMetrics {
	return &ImportMetrics{
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Filas de CSV procesadas por tipo y resultado",
		}, []string{"kind", "result"}),
	}
}

// Row cuenta una fila importada. kind: category|item; result: created|reused|error.
func (m *ImportMetrics) Row(kind, result string) {
	if m == nil {
		return
	}
	m.rows.WithLabelValues(kind, result).Inc()
}
