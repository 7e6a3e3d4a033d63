package catalogfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

const sample = `
[[models]]
id = 1
description = "iPhone 13 Pro"
type = "iPhone"
year = 2021

  [[models.capacities]]
  id = 10
  size = "128 GB"

  [[models.capacities]]
  id = 11
  size = "1TB"
  active = false

[[models]]
id = 2
description = "Pixel 8 Pro"
type = "Pixel"
brand = "Google"
`

func TestDecode(t *testing.T) {
	models, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, models, 2)

	iphone := models[0]
	assert.Equal(t, int64(1), iphone.ID)
	assert.Equal(t, domain.FamilyIPhone, iphone.Type)
	assert.Equal(t, domain.DefaultBrand, iphone.Brand)
	assert.Equal(t, 2021, iphone.Year)
	require.Len(t, iphone.Capacities, 2)
	assert.True(t, iphone.Capacities[0].Active)
	assert.False(t, iphone.Capacities[1].Active)
	assert.Equal(t, int64(1), iphone.Capacities[1].ModelID)

	pixel := models[1]
	assert.Equal(t, "Google", pixel.Brand)
	assert.False(t, pixel.HasYear())
	assert.Empty(t, pixel.Capacities)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad toml", "[[models]\nid ="},
		{"empty description", "[[models]]\nid = 1\ntype = \"iPhone\"\n"},
		{"unknown type", "[[models]]\nid = 1\ndescription = \"Galaxy S23\"\ntype = \"Galaxy\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestEncode_DecodePreservesModels(t *testing.T) {
	in, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, in))

	out, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0600))

	models, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Len(t, models, 2)

	_, err = DecodeFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
