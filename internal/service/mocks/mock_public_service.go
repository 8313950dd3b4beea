package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sharescribe/internal/service"
)

type MockPublicService struct {
	mock.Mock
}

func (m *MockPublicService) Resolve(ctx context.Context, in service.ResolveInput) (*service.PublicDocument, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublicDocument), args.Error(1)
}

func (m *MockPublicService) Download(ctx context.Context, in service.ResolveInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockPublicService) RecordView(ctx context.Context, documentID, clientIP string) error {
	args := m.Called(ctx, documentID, clientIP)
	return args.Error(0)
}

func (m *MockPublicService) ShareQR(ctx context.Context, slug string, size int) ([]byte, error) {
	args := m.Called(ctx, slug, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
