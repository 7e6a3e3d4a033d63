package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

// feedColumns is the positional layout of a feed without a header row.
var feedColumns = []string{"model_name", "identifier", "capacity", "price", "brand"}

// parseFeed reads a CSV price-list feed. A first row whose first cell is
// "model_name" is a header and may reorder or omit optional columns.
// Rows that fail validation are kept with an INVALID_INPUT result so the
// output stays aligned with the feed.
func parseFeed(r io.Reader) ([]domain.BatchItem, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	columns := map[string]int{}
	for i, name := range feedColumns {
		columns[name] = i
	}

	var items []domain.BatchItem
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading feed: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if first {
			first = false
			if len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "model_name") {
				columns = headerColumns(record)
				continue
			}
		}

		items = append(items, feedItem(line, record, columns))
	}

	return items, nil
}

func headerColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return columns
}

func feedItem(line int, record []string, columns map[string]int) domain.BatchItem {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	item := domain.BatchItem{Line: line}
	invalid := func(format string, args ...any) domain.BatchItem {
		item.Result = domain.NewErrorResult(domain.ErrorCodeInvalidInput,
			fmt.Sprintf("line %d: %v: %s", line, domain.ErrInvalidInput, fmt.Sprintf(format, args...)))
		return item
	}

	opts := []domain.InputOption{
		domain.WithIdentifier(cell("identifier")),
		domain.WithCapacity(cell("capacity")),
		domain.WithBrand(cell("brand")),
	}
	if raw := cell("price"); raw != "" {
		price, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			return invalid("price %q is not a number", raw)
		}
		opts = append(opts, domain.WithPrice(price))
	}

	input, err := domain.NewMappingInput(cell("model_name"), opts...)
	if err != nil {
		return invalid("model name is empty")
	}
	item.Input = input
	return item
}
