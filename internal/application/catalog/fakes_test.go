package catalog_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/jhoicas/Menu-api/internal/application/catalog"
	"github.com/jhoicas/Menu-api/internal/domain/entity"
	"github.com/jhoicas/Menu-api/internal/domain/ordering"
	"github.com/jhoicas/Menu-api/internal/domain/repository"
)

// memStore base en memoria con transacciones serializadas y rollback por snapshot.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	nextID     int64
	menus      map[int64]entity.Menu
	categories map[int64]entity.Category
	items      map[int64]entity.Item
	images     map[int64]entity.ItemImage

	itemUpdates     int
	categoryUpdates int
	failItemCreate  error
}

func newMemStore() *memStore {
	return &memStore{
		menus:      map[int64]entity.Menu{},
		categories: map[int64]entity.Category{},
		items:      map[int64]entity.Item{},
		images:     map[int64]entity.ItemImage{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) repos() catalog.Repos {
	return catalog.Repos{
		Menus:      &memMenus{s},
		Categories: &memCategories{s},
		Items:      &memItems{s},
		Images:     &memImages{s},
	}
}

func (s *memStore) txRepos() catalog.TxRepos {
	return catalog.TxRepos{
		Repos:            s.repos(),
		CategorySiblings: &memSiblings{s: s, categories: true},
		ItemSiblings:     &memSiblings{s: s},
	}
}

// Run implementa catalog.TxRunner.
func (s *memStore) Run(ctx context.Context, fn func(catalog.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.snapshot()
	s.mu.Unlock()

	if err := fn(s.txRepos()); err != nil {
		s.mu.Lock()
		s.restore(snapshot)
		s.mu.Unlock()
		return err
	}
	return nil
}

type storeSnapshot struct {
	nextID     int64
	menus      map[int64]entity.Menu
	categories map[int64]entity.Category
	items      map[int64]entity.Item
	images     map[int64]entity.ItemImage
}

func (s *memStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		nextID:     s.nextID,
		menus:      make(map[int64]entity.Menu, len(s.menus)),
		categories: make(map[int64]entity.Category, len(s.categories)),
		items:      make(map[int64]entity.Item, len(s.items)),
		images:     make(map[int64]entity.ItemImage, len(s.images)),
	}
	for k, v := range s.menus {
		snap.menus[k] = v
	}
	for k, v := range s.categories {
		snap.categories[k] = v
	}
	for k, v := range s.items {
		snap.items[k] = v
	}
	for k, v := range s.images {
		snap.images[k] = v
	}
	return snap
}

func (s *memStore) restore(snap storeSnapshot) {
	s.nextID = snap.nextID
	s.menus = snap.menus
	s.categories = snap.categories
	s.items = snap.items
	s.images = snap.images
}

// ---- helpers de siembra y consulta ----

func (s *memStore) addMenu(userID int64, active bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.menus[id] = entity.Menu{ID: id, UserID: userID, Title: "Carta", Active: active}
	return id
}

func (s *memStore) addCategory(menuID int64, title string, position int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.categories[id] = entity.Category{ID: id, MenuID: menuID, Title: title, Active: true, Position: position}
	return id
}

func (s *memStore) addItem(categoryID int64, title string, position int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.items[id] = entity.Item{ID: id, CategoryID: categoryID, Title: title, Active: true, Position: position}
	return id
}

func (s *memStore) addImage(itemID int64, url string, sortOrder int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.images[id] = entity.ItemImage{ID: id, ItemID: itemID, URL: url, SortOrder: sortOrder, Active: true}
	return id
}

type titled struct {
	Title    string
	Position int64
}

func (s *memStore) categoriesOf(menuID int64) []titled {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []titled
	for _, c := range sortedCategories(s.categories, func(c entity.Category) bool { return c.MenuID == menuID }) {
		out = append(out, titled{c.Title, c.Position})
	}
	return out
}

func (s *memStore) itemsOf(categoryID int64) []titled {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []titled
	for _, it := range sortedItems(s.items, func(it entity.Item) bool { return it.CategoryID == categoryID }) {
		out = append(out, titled{it.Title, it.Position})
	}
	return out
}

func sortedCategories(m map[int64]entity.Category, keep func(entity.Category) bool) []entity.Category {
	var out []entity.Category
	for _, c := range m {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sortedItems(m map[int64]entity.Item, keep func(entity.Item) bool) []entity.Item {
	var out []entity.Item
	for _, it := range m {
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ---------------------------------------------------------------------------
// Repositorios
// ---------------------------------------------------------------------------

type memMenus struct{ s *memStore }

var _ repository.MenuRepository = (*memMenus)(nil)

func (r *memMenus) Create(_ context.Context, m *entity.Menu) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.id()
	r.s.menus[m.ID] = *m
	return nil
}

func (r *memMenus) GetByID(_ context.Context, id int64) (*entity.Menu, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.menus[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *memMenus) Update(_ context.Context, m *entity.Menu) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.menus[m.ID] = *m
	return nil
}

func (r *memMenus) ListActiveByUser(_ context.Context, userID int64) ([]*entity.Menu, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Menu
	for _, m := range r.s.menus {
		if m.UserID == userID && m.Active {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memMenus) SetActive(_ context.Context, id int64, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := r.s.menus[id]
	m.Active = active
	r.s.menus[id] = m
	return nil
}

type memCategories struct{ s *memStore }

var _ repository.CategoryRepository = (*memCategories)(nil)

func (r *memCategories) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.id()
	r.s.categories[c.ID] = *c
	return nil
}

func (r *memCategories) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memCategories) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur := r.s.categories[c.ID]
	cur.Title, cur.Active, cur.UpdatedAt = c.Title, c.Active, c.UpdatedAt
	r.s.categories[c.ID] = cur
	r.s.categoryUpdates++
	return nil
}

func (r *memCategories) ListByMenu(_ context.Context, menuID int64, activeOnly bool) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Category
	for _, c := range sortedCategories(r.s.categories, func(c entity.Category) bool {
		return c.MenuID == menuID && (!activeOnly || c.Active)
	}) {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

func (r *memCategories) ListActiveByUser(_ context.Context, userID int64) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Category
	for _, c := range sortedCategories(r.s.categories, func(c entity.Category) bool {
		return c.Active && r.s.menus[c.MenuID].UserID == userID
	}) {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

func (r *memCategories) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.categories, id)
	return nil
}

type memItems struct{ s *memStore }

var _ repository.ItemRepository = (*memItems)(nil)

func (r *memItems) Create(_ context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failItemCreate != nil {
		return r.s.failItemCreate
	}
	it.ID = r.s.id()
	r.s.items[it.ID] = *it
	return nil
}

func (r *memItems) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *memItems) Update(_ context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur := r.s.items[it.ID]
	cur.Title, cur.Description, cur.Price, cur.Active, cur.UpdatedAt = it.Title, it.Description, it.Price, it.Active, it.UpdatedAt
	r.s.items[it.ID] = cur
	r.s.itemUpdates++
	return nil
}

func (r *memItems) ListByCategory(_ context.Context, categoryID int64, activeOnly bool) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Item
	for _, it := range sortedItems(r.s.items, func(it entity.Item) bool {
		return it.CategoryID == categoryID && (!activeOnly || it.Active)
	}) {
		it := it
		out = append(out, &it)
	}
	return out, nil
}

func (r *memItems) ListActiveByUser(_ context.Context, userID int64) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Item
	for _, it := range sortedItems(r.s.items, func(it entity.Item) bool {
		menu := r.s.menus[r.s.categories[it.CategoryID].MenuID]
		return it.Active && menu.Active && menu.UserID == userID
	}) {
		it := it
		out = append(out, &it)
	}
	return out, nil
}

func (r *memItems) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, id)
	return nil
}

func (r *memItems) DeleteByCategory(_ context.Context, categoryID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, it := range r.s.items {
		if it.CategoryID == categoryID {
			delete(r.s.items, id)
		}
	}
	return nil
}

type memImages struct{ s *memStore }

var _ repository.ItemImageRepository = (*memImages)(nil)

func (r *memImages) Create(_ context.Context, img *entity.ItemImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	img.ID = r.s.id()
	r.s.images[img.ID] = *img
	return nil
}

func (r *memImages) GetByID(_ context.Context, id int64) (*entity.ItemImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	img, ok := r.s.images[id]
	if !ok {
		return nil, nil
	}
	return &img, nil
}

func (r *memImages) Update(_ context.Context, img *entity.ItemImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.images[img.ID] = *img
	return nil
}

func (r *memImages) ListByItems(_ context.Context, itemIDs []int64, activeOnly bool) ([]*entity.ItemImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := map[int64]bool{}
	for _, id := range itemIDs {
		want[id] = true
	}
	var out []*entity.ItemImage
	for _, img := range r.s.images {
		if want[img.ItemID] && (!activeOnly || img.Active) {
			img := img
			out = append(out, &img)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memImages) MaxSortOrder(_ context.Context, itemID int64) (int64, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var max int64
	found := false
	for _, img := range r.s.images {
		if img.ItemID != itemID {
			continue
		}
		if !found || img.SortOrder > max {
			max = img.SortOrder
		}
		found = true
	}
	return max, found, nil
}

func (r *memImages) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.images, id)
	return nil
}

func (r *memImages) DeleteByItem(_ context.Context, itemID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, img := range r.s.images {
		if img.ItemID == itemID {
			delete(r.s.images, id)
		}
	}
	return nil
}

func (r *memImages) DeleteByCategory(_ context.Context, categoryID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, img := range r.s.images {
		if r.s.items[img.ItemID].CategoryID == categoryID {
			delete(r.s.images, id)
		}
	}
	return nil
}

// memSiblings grupo de hermanos sobre el store: categorías por menú o ítems por categoría.
type memSiblings struct {
	s          *memStore
	categories bool
}

var _ repository.SiblingRepository = (*memSiblings)(nil)

func (r *memSiblings) group(parentID int64) []ordering.Sibling {
	var out []ordering.Sibling
	if r.categories {
		for _, c := range sortedCategories(r.s.categories, func(c entity.Category) bool { return c.MenuID == parentID }) {
			out = append(out, ordering.Sibling{ID: c.ID, Position: c.Position})
		}
		return out
	}
	for _, it := range sortedItems(r.s.items, func(it entity.Item) bool { return it.CategoryID == parentID }) {
		out = append(out, ordering.Sibling{ID: it.ID, Position: it.Position})
	}
	return out
}

func (r *memSiblings) LockGroup(context.Context, int64) error { return nil }

func (r *memSiblings) MaxPosition(_ context.Context, parentID int64) (int64, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g := r.group(parentID)
	if len(g) == 0 {
		return 0, false, nil
	}
	return g[len(g)-1].Position, true, nil
}

func (r *memSiblings) FindNeighbors(_ context.Context, parentID, target, excludeID int64, _ bool) (ordering.Neighbors, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var nb ordering.Neighbors
	for _, sib := range r.group(parentID) {
		if sib.ID == excludeID {
			continue
		}
		sib := sib
		if sib.Position <= target {
			nb.Previous = &sib
			continue
		}
		nb.Next = &sib
		break
	}
	return nb, nil
}

func (r *memSiblings) ListOrdered(_ context.Context, parentID int64, _ bool) ([]ordering.Sibling, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.group(parentID), nil
}

func (r *memSiblings) UpdatePosition(_ context.Context, id, position int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.categories {
		c, ok := r.s.categories[id]
		if !ok {
			return errors.New("categoría inexistente")
		}
		c.Position = position
		r.s.categories[id] = c
		return nil
	}
	it, ok := r.s.items[id]
	if !ok {
		return errors.New("ítem inexistente")
	}
	it.Position = position
	r.s.items[id] = it
	return nil
}

// ---------------------------------------------------------------------------
// Puertos externos
// ---------------------------------------------------------------------------

type fakeQR struct {
	data   string
	format string
	size   int
	img    *catalog.QRImage
	err    error
}

func (f *fakeQR) Generate(_ context.Context, data, format string, size int) (*catalog.QRImage, error) {
	f.data, f.format, f.size = data, format, size
	if f.err != nil {
		return nil, f.err
	}
	return f.img, nil
}
