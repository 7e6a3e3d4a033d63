package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

func TestCatalogStore_FindModels_Identifier(t *testing.T) {
	catalog := setupTestStore(t).CatalogStore()
	seedCatalog(t, catalog)

	models, err := catalog.FindModels(context.Background(), domain.CatalogQuery{
		Family:             domain.FamilyMac,
		Year:               2023,
		IdentifierContains: "a2816",
	})
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, int64(1), models[0].ID)
	assert.Equal(t, []string{"256 GB", "512 GB"}, models[0].CapacityLabels())
	assert.Equal(t, []string{"512 GB"}, models[1].CapacityLabels(), "inactive capacities are never returned")
}

func TestCatalogStore_FindModels_YearKeepsYearlessRows(t *testing.T) {
	catalog := setupTestStore(t).CatalogStore()
	seedCatalog(t, catalog)
	ctx := context.Background()

	models, err := catalog.FindModels(ctx, domain.CatalogQuery{Family: domain.FamilyIPhone, Year: 2021})
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.False(t, models[0].HasYear())

	models, err = catalog.FindModels(ctx, domain.CatalogQuery{Family: domain.FamilyMac, Year: 2020})
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestCatalogStore_FindModels_Tokens(t *testing.T) {
	catalog := setupTestStore(t).CatalogStore()
	seedCatalog(t, catalog)

	models, err := catalog.FindModels(context.Background(), domain.CatalogQuery{
		Family: domain.FamilyMac,
		Tokens: []string{"mac mini", "m2 pro"},
	})
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, int64(2), models[0].ID)
	assert.Equal(t, domain.DefaultBrand, models[0].Brand)
}

func TestCatalogStore_GetModel(t *testing.T) {
	catalog := setupTestStore(t).CatalogStore()
	seedCatalog(t, catalog)
	ctx := context.Background()

	m, err := catalog.GetModel(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "iPhone 13 Pro", m.Description)
	assert.Equal(t, domain.FamilyIPhone, m.Type)

	_, err = catalog.GetModel(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogStore_SaveModel_Replaces(t *testing.T) {
	catalog := setupTestStore(t).CatalogStore()
	seedCatalog(t, catalog)
	ctx := context.Background()

	require.NoError(t, catalog.SaveModel(ctx, domain.CatalogModel{
		ID: 3, Description: "iPhone 13 Pro", Type: domain.FamilyIPhone, Year: 2021,
		Capacities: []domain.CatalogCapacity{
			{ID: 30, Size: "128 GB", Active: true},
			{ID: 31, Size: "256 GB", Active: true},
		},
	}))

	m, err := catalog.GetModel(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 2021, m.Year)
	assert.Equal(t, []string{"128 GB", "256 GB"}, m.CapacityLabels())
}

func TestCatalogStore_SaveModel_AssignsID(t *testing.T) {
	catalog := setupTestStore(t).CatalogStore()
	ctx := context.Background()

	require.NoError(t, catalog.SaveModel(ctx, domain.CatalogModel{
		Description: "Pixel 8 Pro", Type: domain.FamilyPixel, Brand: "Google",
		Capacities: []domain.CatalogCapacity{{Size: "128 GB", Active: true}},
	}))

	models, err := catalog.ListModels(ctx, domain.FamilyPixel)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.NotZero(t, models[0].ID)
	assert.Equal(t, "Google", models[0].Brand)
	require.Len(t, models[0].Capacities, 1)
	assert.Equal(t, models[0].ID, models[0].Capacities[0].ModelID)
}

func TestCatalogStore_ListModels(t *testing.T) {
	catalog := setupTestStore(t).CatalogStore()
	seedCatalog(t, catalog)
	ctx := context.Background()

	all, err := catalog.ListModels(ctx, domain.FamilyUnknown)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	macs, err := catalog.ListModels(ctx, domain.FamilyMac)
	require.NoError(t, err)
	require.Len(t, macs, 2)
	assert.Len(t, macs[1].Capacities, 2, "listing keeps inactive capacities")
}
