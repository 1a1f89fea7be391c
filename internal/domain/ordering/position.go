// Package ordering contiene la política pura de posiciones para grupos de hermanos
// (categorías de un menú, ítems de una categoría). No hace I/O.
//
// Las posiciones son enteros dispersos: al crear se agrega al final con un salto de
// PositionGap y al mover se toma el punto medio entre los vecinos. Cuando ya no hay
// entero libre entre dos vecinos el grupo se renumera (rebalanceo) a gap, 2*gap, 3*gap...
package ordering

import "math"

// PositionGap separación canónica entre hermanos consecutivos.
const PositionGap int64 = 10000

// MaxRequestedPosition tope para posiciones pedidas por el cliente. 2^53 es el mayor
// entero que un float64 representa sin pérdida, así la conversión siempre está definida.
const MaxRequestedPosition int64 = 1 << 53

// Sibling vista mínima de un hermano dentro de su grupo.
type Sibling struct {
	ID       int64
	Position int64
}

// Neighbors vecinos inmediatos alrededor de una posición objetivo. Cualquiera puede ser nil
// (inserción en la cabeza o en la cola).
type Neighbors struct {
	Previous *Sibling
	Next     *Sibling
}

// SanitizePosition convierte una posición pedida por el cliente a un entero seguro:
// 0 si no es finita, si no max(0, floor(v)) acotado a MaxRequestedPosition.
// La posición exacta es un detalle interno, por eso se recorta en lugar de rechazar.
func SanitizePosition(value float64) int64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	f := math.Floor(value)
	if f <= 0 {
		return 0
	}
	if f >= float64(MaxRequestedPosition) {
		return MaxRequestedPosition
	}
	return int64(f)
}

// ComputePositionBetween devuelve el punto medio entre previous y next (truncado hacia previous).
// Sin previous se toma 0; sin next se toma prev+2*gap. Devuelve ok=false si no queda ningún
// entero estrictamente entre ambos: el llamador debe rebalancear antes de reintentar.
func ComputePositionBetween(previous, next *Sibling) (position int64, ok bool) {
	var prevPosition int64
	if previous != nil {
		prevPosition = previous.Position
	}
	nextPosition := prevPosition + PositionGap*2
	if next != nil {
		nextPosition = next.Position
	}
	gap := nextPosition - prevPosition
	if gap <= 1 {
		return 0, false
	}
	return prevPosition + gap/2, true
}

// NextAppendPosition posición para agregar al final de un grupo cuyo máximo actual es max.
// found=false indica grupo vacío.
func NextAppendPosition(max int64, found bool) int64 {
	if !found {
		return PositionGap
	}
	return max + PositionGap
}

// CanonicalPosition posición canónica del hermano en el índice i (base 0) de un grupo rebalanceado.
func CanonicalPosition(i int) int64 {
	return int64(i+1) * PositionGap
}
