// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/load-optimizer/internal/domain/model"
)

type MockLoadOptimizer struct {
	mock.Mock
}

func (m *MockLoadOptimizer) Optimize(ctx context.Context, req model.LoadRequest) (model.LoadPlan, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.LoadPlan), args.Error(1)
}

func (m *MockLoadOptimizer) InvalidateCache() {
	m.Called()
}
