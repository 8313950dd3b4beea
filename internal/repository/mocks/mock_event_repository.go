package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"sharescribe/internal/model"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Record(ctx context.Context, ev *model.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockEventRepository) ListForOwnerSince(ctx context.Context, ownerID string, since time.Time) ([]model.Event, error) {
	args := m.Called(ctx, ownerID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockEventRepository) TopDocuments(ctx context.Context, ownerID string, limit int) ([]model.DocumentStats, error) {
	args := m.Called(ctx, ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentStats), args.Error(1)
}
