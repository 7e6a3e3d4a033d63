package mcp

import (
	"context"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

// mockMapper is a mock implementation of Mapper.
type mockMapper struct {
	result   *domain.MatchResult
	system   domain.MappingSystem
	families []domain.DeviceFamily
	got      domain.MappingInput
	gotSys   domain.MappingSystem
	calls    int
}

func (m *mockMapper) Resolve(
	_ context.Context,
	input domain.MappingInput,
	system domain.MappingSystem,
) (*domain.MatchResult, domain.MappingSystem) {
	m.calls++
	m.got = input
	m.gotSys = system
	return m.result, m.system
}

func (m *mockMapper) Families() []domain.DeviceFamily {
	return m.families
}
