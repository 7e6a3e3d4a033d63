// Package rules implements the business-rule filters that narrow matcher
// candidates, and the ordered Chain each family engine runs them in.
package rules

import (
	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
)

// Rule names.
const (
	NameChip         = "chip"
	NameCPUCores     = "cpu_cores"
	NameGPUCores     = "gpu_cores"
	NameScreenSize   = "screen_size"
	NameConnectivity = "connectivity"
	NameYear         = "year"
	NameVariant      = "variant"
	NameCapacity     = "capacity"
)

// Chain runs rules in order and stops at the first rule that leaves no
// candidates.
type Chain struct {
	rules []mapping.Rule
}

// NewChain creates a chain from rules in execution order.
func NewChain(rules ...mapping.Rule) *Chain {
	return &Chain{rules: rules}
}

// Outcome reports how a chain run ended.
type Outcome struct {
	// Survivors are the candidates left after the last rule that ran.
	Survivors []domain.MatchCandidate

	// EmptiedBy names the rule that removed the last candidate. Empty when
	// candidates survived.
	EmptiedBy string
}

// Apply runs the chain. Inapplicable rules are skipped.
func (c *Chain) Apply(cands []domain.MatchCandidate, f *domain.ExtractedFeatures, mctx *domain.MappingContext) Outcome {
	current := cands
	for _, r := range c.rules {
		if !r.Applicable(f) {
			mctx.Debug("rule %s: not applicable", r.Name())
			continue
		}
		before := len(current)
		current = r.Apply(current, f, mctx)
		mctx.Debug("rule %s: %d -> %d candidates", r.Name(), before, len(current))
		if len(current) == 0 {
			mctx.Info("rule %s removed every candidate", r.Name())
			return Outcome{EmptiedBy: r.Name()}
		}
	}
	return Outcome{Survivors: current}
}

// Without returns a chain without the named rules.
func (c *Chain) Without(names ...string) *Chain {
	skip := make(map[string]bool, len(names))
	for _, n := range names {
		skip[n] = true
	}
	out := &Chain{}
	for _, r := range c.rules {
		if !skip[r.Name()] {
			out.rules = append(out.rules, r)
		}
	}
	return out
}

// Names returns the rule names in execution order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name()
	}
	return names
}

// keep returns the candidates for which pred holds.
func keep(cands []domain.MatchCandidate, pred func(domain.MatchCandidate) bool) []domain.MatchCandidate {
	out := make([]domain.MatchCandidate, 0, len(cands))
	for _, c := range cands {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}
