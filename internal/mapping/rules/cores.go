package rules

import (
	"regexp"
	"strconv"

	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/mapping"
)

var (
	cpuCountRE = regexp.MustCompile(`(?i)\b(\d{1,2})[\s-]?core\s*CPU\b`)
	gpuCountRE = regexp.MustCompile(`(?i)\b(\d{1,2})[\s-]?core\s*GPU\b`)
)

// Cores filters on a CPU or GPU core count. Descriptions that state no
// count are kept, since many catalog rows omit it.
type Cores struct {
	name    string
	pattern *regexp.Regexp
	count   func(f *domain.ExtractedFeatures) int
}

var _ mapping.Rule = (*Cores)(nil)

// NewCPUCores creates the CPU core-count rule.
func NewCPUCores() *Cores {
	return &Cores{
		name:    NameCPUCores,
		pattern: cpuCountRE,
		count:   func(f *domain.ExtractedFeatures) int { return f.CPUCores },
	}
}

// NewGPUCores creates the GPU core-count rule.
func NewGPUCores() *Cores {
	return &Cores{
		name:    NameGPUCores,
		pattern: gpuCountRE,
		count:   func(f *domain.ExtractedFeatures) int { return f.GPUCores },
	}
}

// Name returns the rule name.
func (r *Cores) Name() string { return r.name }

// Applicable requires the count to have been extracted.
func (r *Cores) Applicable(f *domain.ExtractedFeatures) bool {
	return r.count(f) > 0
}

// Apply keeps rows stating the same count or none.
func (r *Cores) Apply(cands []domain.MatchCandidate, f *domain.ExtractedFeatures, _ *domain.MappingContext) []domain.MatchCandidate {
	want := r.count(f)
	return keep(cands, func(c domain.MatchCandidate) bool {
		m := r.pattern.FindStringSubmatch(c.Model.Description)
		if m == nil {
			return true
		}
		n, err := strconv.Atoi(m[1])
		return err == nil && n == want
	})
}
