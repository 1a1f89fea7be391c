package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/Menu-api/internal/application/dto"
	"github.com/jhoicas/Menu-api/internal/domain/repository"
)

// Repos repositorios del catálogo. Fuera de una transacción van contra el pool.
type Repos struct {
	Menus      repository.MenuRepository
	Categories repository.CategoryRepository
	Items      repository.ItemRepository
	Images     repository.ItemImageRepository
}

// TxRepos repositorios atados a una misma transacción, incluidos los grupos de hermanos
// que necesita el motor de posiciones.
type TxRepos struct {
	Repos
	CategorySiblings repository.SiblingRepository // categorías de un menú
	ItemSiblings     repository.SiblingRepository // ítems de una categoría
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil, Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// QRImage respuesta del proveedor de QR. Si IsJSON el proveedor devolvió un documento
// JSON en lugar de la imagen.
type QRImage struct {
	ContentType string
	Body        []byte
	IsJSON      bool
}

// QRGenerator puerto hacia el proveedor externo de códigos QR.
type QRGenerator interface {
	Generate(ctx context.Context, data, format string, size int) (*QRImage, error)
}

// QRProviderError error devuelto por el proveedor de QR. StatusCode=0 indica que no hubo
// respuesta (timeout, red).
type QRProviderError struct {
	StatusCode int
	Message    string
}

func (e *QRProviderError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("proveedor QR: %s", e.Message)
	}
	return fmt.Sprintf("proveedor QR respondió %d: %s", e.StatusCode, e.Message)
}

// ClientError indica que el proveedor rechazó la petición (4xx).
func (e *QRProviderError) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// MenuPDFGenerator genera la carta imprimible de un menú.
type MenuPDFGenerator interface {
	Generate(menu dto.PrintableMenu) ([]byte, error)
}
