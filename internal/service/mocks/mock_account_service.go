package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sharescribe/internal/service"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Me(ctx context.Context, userID, email string) (*service.AccountView, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AccountView), args.Error(1)
}
