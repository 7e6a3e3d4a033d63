package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/core/ports/driven"
)

// catalogStore implements driven.CatalogStore.
type catalogStore struct {
	store *Store
}

var _ driven.CatalogStore = (*catalogStore)(nil)

// FindModels returns the models matching q with their active capacities.
func (s *catalogStore) FindModels(ctx context.Context, q domain.CatalogQuery) ([]domain.CatalogModel, error) {
	var (
		where []string
		args  []any
	)
	if q.Family != domain.FamilyUnknown {
		where = append(where, "type = ?")
		args = append(args, string(q.Family))
	}
	if q.Year > 0 {
		where = append(where, "(year = ? OR year = 0)")
		args = append(args, q.Year)
	}
	if q.IdentifierContains != "" {
		where = append(where, "instr(lower(description), lower(?)) > 0")
		args = append(args, q.IdentifierContains)
	}
	for _, tok := range q.Tokens {
		where = append(where, "instr(lower(description), lower(?)) > 0")
		args = append(args, tok)
	}
	if q.Brand != "" {
		where = append(where, "lower(brand) = lower(?)")
		args = append(args, q.Brand)
	}

	query := "SELECT id, description, type, brand, year FROM models"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	models, err := s.queryModels(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := s.attachCapacities(ctx, models, true); err != nil {
		return nil, err
	}
	return models, nil
}

// GetModel retrieves a model with its active capacities.
func (s *catalogStore) GetModel(ctx context.Context, id int64) (*domain.CatalogModel, error) {
	models, err := s.queryModels(ctx, "SELECT id, description, type, brand, year FROM models WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, domain.ErrNotFound
	}
	if err := s.attachCapacities(ctx, models, true); err != nil {
		return nil, err
	}
	return &models[0], nil
}

// ListModels returns every model of a family with all capacities.
func (s *catalogStore) ListModels(ctx context.Context, family domain.DeviceFamily) ([]domain.CatalogModel, error) {
	query := "SELECT id, description, type, brand, year FROM models"
	var args []any
	if family != domain.FamilyUnknown {
		query += " WHERE type = ?"
		args = append(args, string(family))
	}
	query += " ORDER BY id"

	models, err := s.queryModels(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := s.attachCapacities(ctx, models, false); err != nil {
		return nil, err
	}
	return models, nil
}

// SaveModel inserts or replaces a model and its capacities in one
// transaction. A zero id lets SQLite assign one.
func (s *catalogStore) SaveModel(ctx context.Context, model domain.CatalogModel) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	brand := model.Brand
	if brand == "" {
		brand = domain.DefaultBrand
	}

	id := model.ID
	if id == 0 {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO models (description, type, brand, year) VALUES (?, ?, ?, ?)",
			model.Description, string(model.Type), brand, model.Year)
		if err != nil {
			return fmt.Errorf("inserting model: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("reading model id: %w", err)
		}
	} else {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO models (id, description, type, brand, year) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				description = excluded.description,
				type = excluded.type,
				brand = excluded.brand,
				year = excluded.year
		`, id, model.Description, string(model.Type), brand, model.Year)
		if err != nil {
			return fmt.Errorf("upserting model: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM capacities WHERE model_id = ?", id); err != nil {
		return fmt.Errorf("clearing capacities: %w", err)
	}
	for _, c := range model.Capacities {
		var capID any
		if c.ID != 0 {
			capID = c.ID
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO capacities (id, model_id, size, active) VALUES (?, ?, ?, ?)",
			capID, id, c.Size, boolToInt(c.Active)); err != nil {
			return fmt.Errorf("inserting capacity %q: %w", c.Size, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing model: %w", err)
	}
	return nil
}

func (s *catalogStore) queryModels(ctx context.Context, query string, args ...any) ([]domain.CatalogModel, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying models: %w", domain.ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	var models []domain.CatalogModel
	for rows.Next() {
		var (
			m      domain.CatalogModel
			family string
		)
		if err := rows.Scan(&m.ID, &m.Description, &family, &m.Brand, &m.Year); err != nil {
			return nil, fmt.Errorf("scanning model: %w", err)
		}
		m.Type = domain.DeviceFamily(family)
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating models: %w", err)
	}
	return models, nil
}

// attachCapacities loads the capacity rows of models in a single query.
func (s *catalogStore) attachCapacities(ctx context.Context, models []domain.CatalogModel, activeOnly bool) error {
	if len(models) == 0 {
		return nil
	}
	index := make(map[int64]int, len(models))
	placeholders := make([]string, len(models))
	args := make([]any, len(models))
	for i, m := range models {
		index[m.ID] = i
		placeholders[i] = "?"
		args[i] = m.ID
	}

	query := "SELECT id, model_id, size, active FROM capacities WHERE model_id IN (" +
		strings.Join(placeholders, ", ") + ")"
	if activeOnly {
		query += " AND active = 1"
	}
	query += " ORDER BY id"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: querying capacities: %w", domain.ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c      domain.CatalogCapacity
			active int
		)
		if err := rows.Scan(&c.ID, &c.ModelID, &c.Size, &active); err != nil {
			return fmt.Errorf("scanning capacity: %w", err)
		}
		c.Active = active == 1
		i := index[c.ModelID]
		models[i].Capacities = append(models[i].Capacities, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating capacities: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
