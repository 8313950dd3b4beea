package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"sharescribe/internal/model"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Ensure(ctx context.Context, id, email string) error {
	args := m.Called(ctx, id, email)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id string) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) SetOrder(ctx context.Context, id, orderID string, at time.Time) error {
	args := m.Called(ctx, id, orderID, at)
	return args.Error(0)
}

func (m *MockAccountRepository) MarkPro(ctx context.Context, id, email, paymentID, orderID string, at time.Time) error {
	args := m.Called(ctx, id, email, paymentID, orderID, at)
	return args.Error(0)
}

func (m *MockAccountRepository) AddStorageUsed(ctx context.Context, id string, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}
