package engine

import (
	"github.com/custodia-labs/devmap/internal/core/domain"
	"github.com/custodia-labs/devmap/internal/core/ports/driven"
	"github.com/custodia-labs/devmap/internal/mapping"
	"github.com/custodia-labs/devmap/internal/mapping/extract"
	"github.com/custodia-labs/devmap/internal/mapping/knowledge"
	"github.com/custodia-labs/devmap/internal/mapping/match"
	"github.com/custodia-labs/devmap/internal/mapping/rules"
)

// Engine names.
const (
	NameIPhone = "iphone_v4"
	NamePixel  = "pixel_v4"
	NameIPad   = "ipad_v4"
	NameMac    = "mac_v4"
)

// matchers returns the identifier, name and generation matchers in
// priority order.
func matchers(catalog driven.CatalogReader, family domain.DeviceFamily) []mapping.Matcher {
	return []mapping.Matcher{
		match.NewIdentifier(catalog, family),
		match.NewName(catalog, family),
		match.NewGeneration(catalog, family),
	}
}

// NewIPhone creates the iPhone engine.
func NewIPhone(catalog driven.CatalogReader, opts ...Option) *Engine {
	return New(Config{
		Name:      NameIPhone,
		Family:    domain.FamilyIPhone,
		Extractor: extract.NewIPhone(),
		Knowledge: knowledge.NewIPhone(),
		Matchers:  matchers(catalog, domain.FamilyIPhone),
		Rules: rules.NewChain(
			rules.NewYear(),
			rules.NewVariant(domain.FamilyIPhone),
			rules.NewCapacity(),
		),
	}, opts...)
}

// NewPixel creates the Pixel engine.
func NewPixel(catalog driven.CatalogReader, opts ...Option) *Engine {
	return New(Config{
		Name:      NamePixel,
		Family:    domain.FamilyPixel,
		Extractor: extract.NewPixel(),
		Knowledge: knowledge.NewPixel(),
		Matchers:  matchers(catalog, domain.FamilyPixel),
		Rules: rules.NewChain(
			rules.NewYear(),
			rules.NewVariant(domain.FamilyPixel),
			rules.NewCapacity(),
		),
	}, opts...)
}

// NewIPad creates the iPad engine. Screen size is load-bearing for tablets,
// so rows stating no size are excluded.
func NewIPad(catalog driven.CatalogReader, opts ...Option) *Engine {
	return New(Config{
		Name:      NameIPad,
		Family:    domain.FamilyIPad,
		Extractor: extract.NewIPad(),
		Knowledge: knowledge.NewIPad(),
		Matchers:  matchers(catalog, domain.FamilyIPad),
		Rules: rules.NewChain(
			rules.NewScreenSize(true),
			rules.NewConnectivity(),
			rules.NewYear(),
			rules.NewVariant(domain.FamilyIPad),
			rules.NewCapacity(),
		),
	}, opts...)
}

// NewMac creates the Mac engine. The chip rule runs first to separate
// sibling SKUs sharing an identifier code.
func NewMac(catalog driven.CatalogReader, opts ...Option) *Engine {
	return New(Config{
		Name:      NameMac,
		Family:    domain.FamilyMac,
		Extractor: extract.NewMac(),
		Knowledge: knowledge.NewMac(),
		Matchers:  matchers(catalog, domain.FamilyMac),
		Rules: rules.NewChain(
			rules.NewChip(),
			rules.NewCPUCores(),
			rules.NewGPUCores(),
			rules.NewScreenSize(false),
			rules.NewYear(),
			rules.NewVariant(domain.FamilyMac),
			rules.NewCapacity(),
		),
	}, opts...)
}

// All returns every family engine in façade registration order: the most
// specific family first, phones last.
func All(catalog driven.CatalogReader, opts ...Option) []mapping.Engine {
	return []mapping.Engine{
		NewMac(catalog, opts...),
		NewIPad(catalog, opts...),
		NewPixel(catalog, opts...),
		NewIPhone(catalog, opts...),
	}
}
