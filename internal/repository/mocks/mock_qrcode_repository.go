package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sharescribe/internal/model"
)

type MockQRCodeRepository struct {
	mock.Mock
}

func (m *MockQRCodeRepository) Create(ctx context.Context, qr *model.QRCode) (*model.QRCode, error) {
	args := m.Called(ctx, qr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, *model.QRCode) *model.QRCode); ok {
		return f(ctx, qr), args.Error(1)
	}
	return args.Get(0).(*model.QRCode), args.Error(1)
}

func (m *MockQRCodeRepository) FindByID(ctx context.Context, id string) (*model.QRCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QRCode), args.Error(1)
}

func (m *MockQRCodeRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.QRCode, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QRCode), args.Error(1)
}

func (m *MockQRCodeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQRCodeRepository) IncrementScanCount(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
