package domain

import (
	"fmt"
	"strings"
)

// DefaultBrand is the brand assumed when the feed row does not name one.
const DefaultBrand = "Apple"

// MappingInput is one vendor price-list row to resolve against the catalog.
// It is immutable once constructed; use NewMappingInput to build one.
type MappingInput struct {
	modelName  string
	identifier string
	capacity   string
	price      float64
	hasPrice   bool
	brand      string
}

// InputOption configures optional MappingInput fields.
type InputOption func(*MappingInput)

// WithIdentifier sets the vendor identifier code (e.g. "A2816").
func WithIdentifier(code string) InputOption {
	return func(in *MappingInput) {
		in.identifier = strings.TrimSpace(code)
	}
}

// WithCapacity sets the capacity string reported separately by the feed.
func WithCapacity(capacity string) InputOption {
	return func(in *MappingInput) {
		in.capacity = strings.TrimSpace(capacity)
	}
}

// WithPrice sets the vendor price.
func WithPrice(price float64) InputOption {
	return func(in *MappingInput) {
		in.price = price
		in.hasPrice = true
	}
}

// WithBrand overrides the default brand.
// A blank brand keeps the default.
func WithBrand(brand string) InputOption {
	return func(in *MappingInput) {
		if b := strings.TrimSpace(brand); b != "" {
			in.brand = b
		}
	}
}

// NewMappingInput validates and builds a MappingInput.
// The model name must be non-empty after trimming.
func NewMappingInput(modelName string, opts ...InputOption) (MappingInput, error) {
	name := strings.TrimSpace(modelName)
	if name == "" {
		return MappingInput{}, fmt.Errorf("%w: model name is empty", ErrInvalidInput)
	}

	in := MappingInput{
		modelName: name,
		brand:     DefaultBrand,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in, nil
}

// ModelName returns the trimmed raw display name.
func (in MappingInput) ModelName() string { return in.modelName }

// Identifier returns the vendor identifier code, if any.
func (in MappingInput) Identifier() string { return in.identifier }

// Capacity returns the separately reported capacity string, if any.
func (in MappingInput) Capacity() string { return in.capacity }

// Price returns the vendor price and whether one was provided.
func (in MappingInput) Price() (float64, bool) { return in.price, in.hasPrice }

// Brand returns the brand name.
func (in MappingInput) Brand() string { return in.brand }

// IsZero reports whether the input was never constructed through NewMappingInput.
func (in MappingInput) IsZero() bool { return in.modelName == "" }
