package repository

import (
	"context"

	"github.com/jhoicas/Menu-api/internal/domain/ordering"
)

// SiblingRepository puerto de acceso a un grupo de hermanos ordenados por posición
// (categorías de un menú o ítems de una categoría). Las implementaciones quedan atadas a la
// transacción del llamador; lock=true pide bloqueo de fila para update (SELECT ... FOR UPDATE).
type SiblingRepository interface {
	// LockGroup bloquea el grupo completo (fila del padre) hasta el fin de la transacción.
	LockGroup(ctx context.Context, parentID int64) error
	// MaxPosition devuelve la mayor posición del grupo; found=false si está vacío.
	MaxPosition(ctx context.Context, parentID int64) (max int64, found bool, err error)
	// FindNeighbors busca el hermano anterior (posición <= target) y el siguiente (posición > target),
	// ignorando excludeID (0 = no excluir).
	FindNeighbors(ctx context.Context, parentID, target, excludeID int64, lock bool) (ordering.Neighbors, error)
	// ListOrdered lista el grupo por posición ascendente (empates por id).
	ListOrdered(ctx context.Context, parentID int64, lock bool) ([]ordering.Sibling, error)
	// UpdatePosition persiste la posición de un hermano.
	UpdatePosition(ctx context.Context, id, position int64) error
}
