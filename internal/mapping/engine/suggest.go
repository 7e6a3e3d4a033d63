package engine

import (
	"context"
	"sort"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping/rules"
)

// suggestCapacity looks for the right model without the capacity
// constraint. It returns nil when no model qualifies or when no capacity was
// requested.
func (e *Engine) suggestCapacity(ctx context.Context, f *domain.ExtractedFeatures, mctx *domain.MappingContext) *domain.CapacitySuggestion {
	if f.StorageGB == 0 {
		return nil
	}

	pseudo := e.modelCandidates(ctx, f, mctx)
	if len(pseudo) == 0 {
		mctx.Info("capacity suggestion: no model found ignoring capacity")
		return nil
	}
	outcome := e.cfg.Rules.Without(rules.NameCapacity).Apply(pseudo, f, mctx)
	if len(outcome.Survivors) == 0 {
		mctx.Info("capacity suggestion: no model passed the %s rule", outcome.EmptiedBy)
		return nil
	}

	model := outcome.Survivors[0].Model
	for _, c := range model.Capacities {
		if c.Active && domain.CapacityMatches(c.Size, f.StorageGB) {
			// The capacity exists; something other than capacity ruled the
			// candidates out.
			return nil
		}
	}
	mctx.SetMeta(MetaSuggestedModel, model.Description)
	mctx.Warn("model %d %q has no %s capacity", model.ID, model.Description, domain.FormatCapacity(f.StorageGB))
	return e.buildSuggestion(model, f)
}

// modelCandidates reruns the matchers in priority order, ignoring capacity,
// and returns one pseudo-candidate per model.
func (e *Engine) modelCandidates(ctx context.Context, f *domain.ExtractedFeatures, mctx *domain.MappingContext) []domain.MatchCandidate {
	for _, m := range e.cfg.Matchers {
		if !m.Applicable(f) {
			continue
		}
		models, err := m.FindModels(ctx, f, mctx)
		if err != nil {
			mctx.Warn("capacity suggestion: %s: %v", m.Strategy(), err)
			return nil
		}
		if len(models) == 0 {
			continue
		}

		scores := map[int64]float64{}
		if cands, err := m.FindCandidates(ctx, f, mctx); err == nil {
			for _, c := range cands {
				if c.Score > scores[c.Model.ID] {
					scores[c.Model.ID] = c.Score
				}
			}
		}
		pseudo := make([]domain.MatchCandidate, 0, len(models))
		for _, model := range models {
			pseudo = append(pseudo, domain.MatchCandidate{
				Model:    model,
				Score:    scores[model.ID],
				Strategy: m.Strategy(),
			})
		}
		domain.SortCandidates(pseudo)
		return pseudo
	}
	return nil
}

func (e *Engine) buildSuggestion(model domain.CatalogModel, f *domain.ExtractedFeatures) *domain.CapacitySuggestion {
	existing := model.CapacityLabels()

	expectedGB := e.cfg.Knowledge.ExpectedCapacities(f)
	expected := make([]string, 0, len(expectedGB))
	for _, gb := range expectedGB {
		expected = append(expected, domain.FormatCapacity(gb))
	}

	wanted := append(append([]int(nil), expectedGB...), f.StorageGB)
	sort.Ints(wanted)
	var missing []string
	seen := map[int]bool{}
	for _, gb := range wanted {
		if seen[gb] {
			continue
		}
		seen[gb] = true
		if !hasCapacity(existing, gb) {
			missing = append(missing, domain.FormatCapacity(gb))
		}
	}

	return &domain.CapacitySuggestion{
		ModelID:            model.ID,
		ModelDescription:   model.Description,
		StorageGB:          f.StorageGB,
		CapacityLabel:      domain.FormatCapacity(f.StorageGB),
		Family:             f.Family,
		Generation:         f.Generation,
		Variant:            f.Variant,
		Year:               f.Year,
		Chip:               f.Chip,
		CPUCores:           f.CPUCores,
		GPUCores:           f.GPUCores,
		ScreenSize:         f.ScreenSize,
		Identifier:         f.Identifier,
		Connectivity:       f.Connectivity,
		ExistingCapacities: existing,
		ExpectedCapacities: expected,
		MissingCapacities:  missing,
	}
}

func hasCapacity(labels []string, gb int) bool {
	for _, l := range labels {
		if domain.CapacityMatches(l, gb) {
			return true
		}
	}
	return false
}
