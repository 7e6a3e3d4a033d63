package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory catalog. It applies the same query semantics
// as the SQLite store and backs tests and catalog snapshots.
type CatalogStore struct {
	mu     sync.RWMutex
	models map[int64]domain.CatalogModel
	nextID int64
}

// NewCatalogStore creates a catalog holding models.
func NewCatalogStore(models ...domain.CatalogModel) *CatalogStore {
	s := &CatalogStore{models: make(map[int64]domain.CatalogModel)}
	for _, m := range models {
		_ = s.SaveModel(context.Background(), m)
	}
	return s
}

// SaveModel stores or replaces a model. Zero ids are assigned.
func (s *CatalogStore) SaveModel(_ context.Context, model domain.CatalogModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if model.ID == 0 {
		s.nextID++
		model.ID = s.nextID
	}
	if model.ID > s.nextID {
		s.nextID = model.ID
	}
	caps := make([]domain.CatalogCapacity, len(model.Capacities))
	for i, c := range model.Capacities {
		c.ModelID = model.ID
		caps[i] = c
	}
	model.Capacities = caps
	s.models[model.ID] = model
	return nil
}

// FindModels returns the models matching q with their active capacities,
// ordered by id.
func (s *CatalogStore) FindModels(_ context.Context, q domain.CatalogQuery) ([]domain.CatalogModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.CatalogModel
	for _, m := range s.models {
		if matchesQuery(m, q) {
			out = append(out, activeOnly(m))
		}
	}
	sortByID(out)
	return out, nil
}

// GetModel retrieves a model with its active capacities.
func (s *CatalogStore) GetModel(_ context.Context, id int64) (*domain.CatalogModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.models[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m = activeOnly(m)
	return &m, nil
}

// ListModels returns every model of a family with all capacities.
func (s *CatalogStore) ListModels(_ context.Context, family domain.DeviceFamily) ([]domain.CatalogModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CatalogModel, 0, len(s.models))
	for _, m := range s.models {
		if family == domain.FamilyUnknown || m.Type == family {
			m.Capacities = append([]domain.CatalogCapacity(nil), m.Capacities...)
			out = append(out, m)
		}
	}
	sortByID(out)
	return out, nil
}

func matchesQuery(m domain.CatalogModel, q domain.CatalogQuery) bool {
	if q.Family != domain.FamilyUnknown && m.Type != q.Family {
		return false
	}
	if q.Year > 0 && m.HasYear() && m.Year != q.Year {
		return false
	}
	desc := strings.ToLower(m.Description)
	if q.IdentifierContains != "" && !strings.Contains(desc, strings.ToLower(q.IdentifierContains)) {
		return false
	}
	for _, tok := range q.Tokens {
		if !strings.Contains(desc, strings.ToLower(tok)) {
			return false
		}
	}
	return q.Brand == "" || strings.EqualFold(m.Brand, q.Brand)
}

func activeOnly(m domain.CatalogModel) domain.CatalogModel {
	var caps []domain.CatalogCapacity
	for _, c := range m.Capacities {
		if c.Active {
			caps = append(caps, c)
		}
	}
	m.Capacities = caps
	return m
}

func sortByID(models []domain.CatalogModel) {
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
}
