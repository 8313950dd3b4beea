package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sharescribe/internal/model"
)

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Summary(ctx context.Context, ownerID, rangeParam string) (*model.AnalyticsSummary, error) {
	args := m.Called(ctx, ownerID, rangeParam)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalyticsSummary), args.Error(1)
}
