package catalog

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Menu-api/internal/application/dto"
	appordering "github.com/jhoicas/Menu-api/internal/application/ordering"
	"github.com/jhoicas/Menu-api/internal/domain"
	"github.com/jhoicas/Menu-api/internal/domain/entity"
	"github.com/jhoicas/Menu-api/internal/domain/ordering"
)

// ImportObserver recibe una marca por fila procesada (lo implementa *metrics.ImportMetrics).
type ImportObserver interface {
	Row(kind, result string)
}

type noopImportObserver struct{}

func (noopImportObserver) Row(string, string) {}

// ImportUseCase carga masiva de categorías e ítems desde un CSV a un menú existente.
type ImportUseCase struct {
	repos      Repos
	tx         TxRunner
	categories *appordering.PositionService
	items      *appordering.PositionService
	observer   ImportObserver
	log        zerolog.Logger
}

// NewImportUseCase construye el caso de uso. observer puede ser nil.
func NewImportUseCase(
	repos Repos,
	tx TxRunner,
	categories, items *appordering.PositionService,
	observer ImportObserver,
	log zerolog.Logger,
) *ImportUseCase {
	if observer == nil {
		observer = noopImportObserver{}
	}
	return &ImportUseCase{
		repos:      repos,
		tx:         tx,
		categories: categories,
		items:      items,
		observer:   observer,
		log:        log,
	}
}

// Import procesa el CSV en una sola transacción. Las categorías se reutilizan por título
// (sin distinguir mayúsculas), los ítems cuelgan de la última categoría declarada y las filas
// incompletas se informan en Errors sin abortar el resto. Sin posición explícita se agrega
// al final del grupo, igual que una creación individual.
func (uc *ImportUseCase) Import(ctx context.Context, userID, menuID int64, file io.Reader) (*dto.ImportSummary, error) {
	menu, err := uc.repos.menuForUser(ctx, menuID, userID)
	if err != nil {
		return nil, err
	}
	if !menu.Active {
		return nil, domain.ErrNotFound
	}

	rows, err := readImportRows(file)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyImport
	}

	var summary dto.ImportSummary
	err = uc.tx.Run(ctx, func(r TxRepos) error {
		summary = dto.ImportSummary{Errors: []dto.ImportRowError{}}
		return uc.importRows(ctx, r, menu.ID, rows, &summary)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("menu_id", menu.ID).
		Int("rows", len(rows)).
		Int("created_categories", summary.CreatedCategories).
		Int("reused_categories", summary.ReusedCategories).
		Int("created_items", summary.CreatedItems).
		Int("errors", len(summary.Errors)).
		Msg("importación CSV completada")
	return &summary, nil
}

func (uc *ImportUseCase) importRows(ctx context.Context, r TxRepos, menuID int64, rows []importRow, summary *dto.ImportSummary) error {
	existing, err := r.Categories.ListByMenu(ctx, menuID, false)
	if err != nil {
		return err
	}
	byTitle := make(map[string]*entity.Category, len(existing))
	for _, c := range existing {
		key := titleKey(c.Title)
		if _, dup := byTitle[key]; !dup {
			byTitle[key] = c
		}
	}

	rowError := func(row importRow, msg string) {
		summary.Errors = append(summary.Errors, dto.ImportRowError{Row: row.RowNumber, Message: msg})
		uc.observer.Row(row.Type, "error")
	}

	var last *entity.Category
	for _, row := range rows {
		now := time.Now()

		if row.Type == rowTypeCategory {
			if row.CategoryTitle == "" {
				rowError(row, "La categoría debe tener un título.")
				last = nil
				continue
			}
			if c, ok := byTitle[titleKey(row.CategoryTitle)]; ok {
				last = c
				summary.ReusedCategories++
				uc.observer.Row(rowTypeCategory, "reused")
				continue
			}
			title, err := requiredText("categoryTitle", row.CategoryTitle, maxCategoryTitle)
			if err != nil {
				rowError(row, err.Error())
				last = nil
				continue
			}

			category := &entity.Category{
				MenuID:    menuID,
				Title:     title,
				Active:    row.CategoryActive,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if row.CategoryPosition != nil {
				category.Position = ordering.SanitizePosition(*row.CategoryPosition)
			} else if category.Position, err = uc.categories.AssignInitialPosition(ctx, r.CategorySiblings, menuID); err != nil {
				return err
			}
			if err := r.Categories.Create(ctx, category); err != nil {
				return err
			}
			byTitle[titleKey(title)] = category
			last = category
			summary.CreatedCategories++
			uc.observer.Row(rowTypeCategory, "created")
			continue
		}

		if last == nil {
			rowError(row, "Definí una categoría antes de declarar ítems.")
			continue
		}
		if row.ItemTitle == "" {
			rowError(row, "El ítem debe tener un título.")
			continue
		}
		title, err := requiredText("itemTitle", row.ItemTitle, maxItemTitle)
		if err != nil {
			rowError(row, err.Error())
			continue
		}
		description, err := optionalText("itemDescription", &row.ItemDescription, maxItemDescription)
		if err != nil {
			rowError(row, err.Error())
			continue
		}
		price, err := validPrice(row.ItemPrice)
		if err != nil {
			rowError(row, err.Error())
			continue
		}

		item := &entity.Item{
			CategoryID:  last.ID,
			Title:       title,
			Description: description,
			Price:       price,
			Active:      row.ItemActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if row.ItemPosition != nil {
			item.Position = ordering.SanitizePosition(*row.ItemPosition)
		} else if item.Position, err = uc.items.AssignInitialPosition(ctx, r.ItemSiblings, last.ID); err != nil {
			return err
		}
		if err := r.Items.Create(ctx, item); err != nil {
			return err
		}
		summary.CreatedItems++
		uc.observer.Row(rowTypeItem, "created")
	}
	return nil
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
