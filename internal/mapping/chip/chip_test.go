package chip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Silicon(t *testing.T) {
	tests := []struct {
		text    string
		family  string
		variant string
		gen     int
		str     string
	}{
		{"Mac mini, M2 chip, 10-core CPU", "M2", BaseVariant, 2, "M2"},
		{"Mac mini M2 Pro 12-core CPU", "M2", "Pro", 2, "M2 Pro"},
		{"MacBook Pro m3 max 16", "M3", "Max", 3, "M3 Max"},
		{"Mac Studio M1 Ultra", "M1", "Ultra", 1, "M1 Ultra"},
		{"Mac mini (2023) M2 10-Core CPU", "M2", BaseVariant, 2, "M2"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			sig, ok := Parse(tt.text)
			require.True(t, ok)
			assert.True(t, sig.Silicon)
			assert.Equal(t, tt.family, sig.Family)
			assert.Equal(t, tt.variant, sig.Variant)
			assert.Equal(t, tt.gen, sig.Generation())
			assert.Equal(t, tt.str, sig.String())
		})
	}
}

func TestParse_Intel(t *testing.T) {
	tests := []struct {
		text    string
		family  string
		variant string
		str     string
	}{
		{"MacBook Pro 13 Intel Core i5 2.0 GHz Quad-Core", "Core i5", "2.0GHz 4-Core", "Intel Core i5 2.0GHz 4-Core"},
		{"iMac Core i7 3,8GHz 8-core", "Core i7", "3.8GHz 8-Core", "Intel Core i7 3.8GHz 8-Core"},
		{"MacBook Air Intel Core i3", "Core i3", "", "Intel Core i3"},
		{"Mac Pro Xeon W 8-Core", "Xeon W", "8-Core", "Intel Xeon W 8-Core"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			sig, ok := Parse(tt.text)
			require.True(t, ok)
			assert.False(t, sig.Silicon)
			assert.Equal(t, tt.family, sig.Family)
			assert.Equal(t, tt.variant, sig.Variant)
			assert.Equal(t, 0, sig.Generation())
			assert.Equal(t, tt.str, sig.String())
		})
	}
}

func TestParse_GPUCoresAreNotCPUCores(t *testing.T) {
	sig, ok := Parse("iMac Intel Core i5 8-Core GPU")
	require.True(t, ok)
	assert.Equal(t, "", sig.Variant)
}

func TestParse_NoChip(t *testing.T) {
	for _, text := range []string{"", "iPhone 13 Pro 128GB", "Mac mini", "MacBook Air 13.3"} {
		_, ok := Parse(text)
		assert.False(t, ok, text)
	}
}

func TestSignature_Equal(t *testing.T) {
	m2, _ := Parse("M2")
	m2Pro, _ := Parse("M2 Pro")
	m2Again, _ := Parse("Mac mini m2 chip")

	assert.True(t, m2.Equal(m2Again))
	assert.False(t, m2.Equal(m2Pro))
	assert.False(t, m2Pro.Equal(m2))
}

func TestParse_RoundTripsString(t *testing.T) {
	for _, text := range []string{"M2", "M2 Pro", "M3 Max", "Intel Core i5", "Intel Core i7 2.6GHz 6-Core"} {
		sig, ok := Parse(text)
		require.True(t, ok, text)
		again, ok := Parse(sig.String())
		require.True(t, ok, text)
		assert.True(t, sig.Equal(again), text)
	}
}
