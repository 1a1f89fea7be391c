// Package ordering orquesta la política de posiciones (domain/ordering) sobre un
// SiblingRepository atado a la transacción del llamador. Una misma implementación sirve para
// categorías dentro de un menú y para ítems dentro de una categoría.
package ordering

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Menu-api/internal/domain/ordering"
	"github.com/jhoicas/Menu-api/internal/domain/repository"
)

// Grupos de hermanos conocidos (etiqueta de logs y métricas).
const (
	GroupCategories = "categories"
	GroupItems      = "items"
)

// Observer recibe los eventos del motor de posiciones (lo implementa *metrics.OrderingMetrics).
type Observer interface {
	Append(group string)
	Move(group string)
	Rebalance(group string, rowsWritten int)
	Fallback(group string)
}

type noopObserver struct{}

func (noopObserver) Append(string)         {}
func (noopObserver) Move(string)           {}
func (noopObserver) Rebalance(string, int) {}
func (noopObserver) Fallback(string)       {}

// PositionService asigna y resuelve posiciones dentro de un grupo de hermanos.
// Nunca abre transacciones ni verifica pertenencia al tenant: el llamador ya lo hizo y le
// pasa un SiblingRepository atado a su transacción.
type PositionService struct {
	group    string
	observer Observer
	log      zerolog.Logger
}

// NewPositionService construye el servicio para un grupo (GroupCategories o GroupItems).
// observer puede ser nil.
func NewPositionService(group string, observer Observer, log zerolog.Logger) *PositionService {
	if observer == nil {
		observer = noopObserver{}
	}
	return &PositionService{
		group:    group,
		observer: observer,
		log:      log.With().Str("group", group).Logger(),
	}
}

// Group devuelve la etiqueta del grupo que ordena este servicio.
func (s *PositionService) Group() string {
	return s.group
}

// AssignInitialPosition devuelve la posición para un hermano nuevo: max+gap, o gap si el grupo
// está vacío. Siempre agrega al final.
func (s *PositionService) AssignInitialPosition(ctx context.Context, siblings repository.SiblingRepository, parentID int64) (int64, error) {
	if err := siblings.LockGroup(ctx, parentID); err != nil {
		return 0, fmt.Errorf("ordering: bloquear grupo: %w", err)
	}
	max, found, err := siblings.MaxPosition(ctx, parentID)
	if err != nil {
		return 0, fmt.Errorf("ordering: posición máxima: %w", err)
	}
	s.observer.Append(s.group)
	return ordering.NextAppendPosition(max, found), nil
}

// ResolvePositionWithGaps calcula la nueva posición de excludeID para dejarlo en requested.
//
// El anterior es el hermano con mayor posición <= target y el siguiente el de menor posición
// > target, ambos leídos con bloqueo. Si no queda entero libre entre ellos se rebalancea el
// grupo completo y se reintenta una única vez, anclando el objetivo en la nueva posición del
// anterior para conservar el hueco pedido. El llamador escribe el resultado en la misma tx.
func (s *PositionService) ResolvePositionWithGaps(
	ctx context.Context,
	siblings repository.SiblingRepository,
	parentID int64,
	requested float64,
	excludeID int64,
) (int64, error) {
	if err := siblings.LockGroup(ctx, parentID); err != nil {
		return 0, fmt.Errorf("ordering: bloquear grupo: %w", err)
	}

	target := ordering.SanitizePosition(requested)
	neighbors, err := siblings.FindNeighbors(ctx, parentID, target, excludeID, true)
	if err != nil {
		return 0, fmt.Errorf("ordering: buscar vecinos: %w", err)
	}
	if pos, ok := ordering.ComputePositionBetween(neighbors.Previous, neighbors.Next); ok {
		s.observer.Move(s.group)
		return pos, nil
	}

	rebalanced, err := s.rebalance(ctx, siblings, parentID)
	if err != nil {
		return 0, err
	}
	if neighbors.Previous != nil {
		if p, ok := rebalanced[neighbors.Previous.ID]; ok {
			target = p
		}
	}

	retry, err := siblings.FindNeighbors(ctx, parentID, target, excludeID, true)
	if err != nil {
		return 0, fmt.Errorf("ordering: buscar vecinos tras rebalanceo: %w", err)
	}
	if pos, ok := ordering.ComputePositionBetween(retry.Previous, retry.Next); ok {
		s.observer.Move(s.group)
		return pos, nil
	}

	// Inalcanzable por construcción: tras rebalancear los vecinos quedan a un gap completo.
	s.observer.Fallback(s.group)
	s.log.Warn().
		Int64("parent_id", parentID).
		Int64("target", target).
		Int64("exclude_id", excludeID).
		Msg("sin espacio tras rebalanceo, se usa la posición de respaldo")
	return ordering.PositionGap, nil
}

// RebalanceGroup renumera todo el grupo a gap, 2*gap, 3*gap... respetando el orden actual.
// Solo escribe las filas cuyo valor cambia: un grupo ya canónico no produce escrituras.
func (s *PositionService) RebalanceGroup(ctx context.Context, siblings repository.SiblingRepository, parentID int64) error {
	if err := siblings.LockGroup(ctx, parentID); err != nil {
		return fmt.Errorf("ordering: bloquear grupo: %w", err)
	}
	_, err := s.rebalance(ctx, siblings, parentID)
	return err
}

// rebalance asume el grupo ya bloqueado. Devuelve la posición final de cada hermano.
func (s *PositionService) rebalance(ctx context.Context, siblings repository.SiblingRepository, parentID int64) (map[int64]int64, error) {
	list, err := siblings.ListOrdered(ctx, parentID, true)
	if err != nil {
		return nil, fmt.Errorf("ordering: listar grupo: %w", err)
	}

	positions := make(map[int64]int64, len(list))
	written := 0
	for i, sib := range list {
		canonical := ordering.CanonicalPosition(i)
		positions[sib.ID] = canonical
		if sib.Position == canonical {
			continue
		}
		if err := siblings.UpdatePosition(ctx, sib.ID, canonical); err != nil {
			return nil, fmt.Errorf("ordering: rebalancear id %d: %w", sib.ID, err)
		}
		written++
	}

	s.observer.Rebalance(s.group, written)
	s.log.Info().
		Int64("parent_id", parentID).
		Int("siblings", len(list)).
		Int("rows_written", written).
		Msg("grupo rebalanceado")
	return positions, nil
}
