package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sharescribe/internal/service"
)

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreateOrder(ctx context.Context, userID, email string) (*service.OrderResult, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OrderResult), args.Error(1)
}

func (m *MockPaymentService) Verify(ctx context.Context, userID, email string, in service.VerifyInput) error {
	args := m.Called(ctx, userID, email, in)
	return args.Error(0)
}
