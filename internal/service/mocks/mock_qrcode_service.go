package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sharescribe/internal/model"
	"sharescribe/internal/service"
)

type MockQRCodeService struct {
	mock.Mock
}

func (m *MockQRCodeService) Create(ctx context.Context, in service.CreateQRInput) (*model.QRCode, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QRCode), args.Error(1)
}

func (m *MockQRCodeService) List(ctx context.Context, ownerID string) ([]model.QRCode, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QRCode), args.Error(1)
}

func (m *MockQRCodeService) Delete(ctx context.Context, id, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockQRCodeService) Image(ctx context.Context, id, ownerID string) ([]byte, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockQRCodeService) Scan(ctx context.Context, id, clientIP string) (*model.QRCode, error) {
	args := m.Called(ctx, id, clientIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QRCode), args.Error(1)
}
