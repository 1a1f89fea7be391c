package catalog

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/Menu-api/internal/application/dto"
	"github.com/jhoicas/Menu-api/internal/domain"
	"github.com/jhoicas/Menu-api/internal/domain/entity"
)

// Largos máximos de columnas de texto.
const (
	maxMenuTitle       = 120
	maxCategoryTitle   = 120
	maxItemTitle       = 160
	maxItemDescription = 10000
	maxPos             = 255
	maxImageURL        = 1024
	maxImageAlt        = 255
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// requiredText recorta espacios y exige un valor no vacío de hasta max caracteres.
func requiredText(field, value string, max int) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", invalid("%s es obligatorio", field)
	}
	if utf8.RuneCountInString(v) > max {
		return "", invalid("%s supera %d caracteres", field, max)
	}
	return v, nil
}

// optionalText recorta espacios; vacío se guarda como NULL.
func optionalText(field string, value *string, max int) (*string, error) {
	if value == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(v) > max {
		return nil, invalid("%s supera %d caracteres", field, max)
	}
	return &v, nil
}

// optionalURL URL absoluta opcional. Los clientes mandan "", "null" o "undefined" para
// indicar que no hay archivo: se tratan como ausente.
func optionalURL(field string, value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*value)
	switch strings.ToLower(v) {
	case "", "null", "undefined":
		return nil, nil
	}
	if len(v) > maxImageURL {
		return nil, invalid("%s supera %d caracteres", field, maxImageURL)
	}
	u, err := url.Parse(v)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, invalid("%s no es una URL válida", field)
	}
	return &v, nil
}

func menuColor(in *dto.MenuColorDTO) (*entity.MenuColor, error) {
	if in == nil {
		return nil, nil
	}
	primary := strings.TrimSpace(in.Primary)
	secondary := strings.TrimSpace(in.Secondary)
	if !hexColor.MatchString(primary) || !hexColor.MatchString(secondary) {
		return nil, invalid("color debe usar HEX #RRGGBB")
	}
	return &entity.MenuColor{Primary: primary, Secondary: secondary}, nil
}
