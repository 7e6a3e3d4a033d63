package domain

// CatalogModel is a sellable device model row of the canonical catalog.
type CatalogModel struct {
	// ID is the catalog primary key.
	ID int64

	// Description is the curated display description
	// (e.g. "Mac mini (2023) M2 Pro 12-Core CPU 19-Core GPU A2816").
	Description string

	// Type is the family tag of the row.
	Type DeviceFamily

	// Brand is the manufacturer.
	Brand string

	// Year is the release year; zero when the row records none.
	Year int

	// Capacities holds the active capacity rows of the model.
	Capacities []CatalogCapacity
}

// HasYear reports whether the row records a release year.
func (m CatalogModel) HasYear() bool {
	return m.Year > 0
}

// CapacityLabels returns the display strings of all capacities in catalog order.
func (m CatalogModel) CapacityLabels() []string {
	labels := make([]string, 0, len(m.Capacities))
	for _, c := range m.Capacities {
		labels = append(labels, c.Size)
	}
	return labels
}

// CatalogCapacity is one storage-capacity variant of a model.
type CatalogCapacity struct {
	// ID is the catalog primary key.
	ID int64

	// ModelID links to the owning model.
	ModelID int64

	// Size is the display string (e.g. "128 GB", "1TB").
	Size string

	// Active marks rows currently sellable. Inactive rows are never matched.
	Active bool
}

// CatalogQuery is the read contract the engine issues against the catalog.
// Empty fields do not constrain the result.
type CatalogQuery struct {
	// Family restricts results to models of this type.
	Family DeviceFamily

	// Year restricts results to models released that year OR recording no year.
	Year int

	// IdentifierContains restricts results to descriptions containing the code.
	IdentifierContains string

	// Tokens restricts results to descriptions containing every token,
	// case-insensitively.
	Tokens []string

	// Brand restricts results to a manufacturer.
	Brand string
}
