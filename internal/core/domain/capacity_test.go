package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCapacityGB(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"128GB", 128, true},
		{"256 gb", 256, true},
		{"1TB", 1024, true},
		{"2 TB", 2048, true},
		{"1.5TB", 1536, true},
		{"0,5 TB", 512, true},
		{"iPhone 13 Pro 512GB Graphite", 512, true},
		{"", 0, false},
		{"128", 0, false},
		{"0GB", 0, false},
		{"128GBs", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCapacityGB(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAllCapacitiesGB(t *testing.T) {
	assert.Equal(t, []int{16, 512}, ParseAllCapacitiesGB("MacBook Air M2 16GB 512GB"))
	assert.Empty(t, ParseAllCapacitiesGB("Mac mini M2"))
}

func TestCapacityNotations(t *testing.T) {
	assert.Equal(t, []string{"512GB", "512 GB"}, CapacityNotations(512))
	assert.Equal(t, []string{"1024GB", "1024 GB", "1TB", "1 TB"}, CapacityNotations(1024))
	assert.Nil(t, CapacityNotations(0))
}

func TestFormatCapacity(t *testing.T) {
	assert.Equal(t, "128 GB", FormatCapacity(128))
	assert.Equal(t, "1 TB", FormatCapacity(1024))
	assert.Equal(t, "8 TB", FormatCapacity(8192))
	assert.Equal(t, "1536 GB", FormatCapacity(1536))
}

func TestCapacityMatches_Exact(t *testing.T) {
	tests := []struct {
		size string
		gb   int
		want bool
	}{
		{"512 GB", 512, true},
		{"512GB", 512, true},
		{"512  gb", 512, true},
		{"256 GB", 512, false},
		{"1 TB", 512, false},
		{"5120 GB", 512, false},
		{"1TB", 1024, true},
		{"1024 GB", 1024, true},
		{"1 TB", 1024, true},
		{"512 GB", 1024, false},
		{"2 TB", 1024, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CapacityMatches(tt.size, tt.gb), "%q vs %d", tt.size, tt.gb)
	}
}
