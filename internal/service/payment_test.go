package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sharescribe/internal/model"
	"sharescribe/internal/razorpay"
	repoMocks "sharescribe/internal/repository/mocks"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateOrder(ctx context.Context, in razorpay.OrderRequest) (*razorpay.Order, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*razorpay.Order), args.Error(1)
}

func (m *mockGateway) KeyID() string { return "rzp_test_key" }

var paymentNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestPaymentService(gw *mockGateway, mAcc *repoMocks.MockAccountRepository) *paymentService {
	svc := NewPaymentService(gw, mAcc, PaymentOptions{KeySecret: "topsecret", AmountPaise: 10000, Currency: "INR"}, zap.NewNop()).(*paymentService)
	svc.now = func() time.Time { return paymentNow }
	return svc
}

func TestReceipt(t *testing.T) {
	r := receipt("0f5b2c8e-1111-2222-3333-444455556666", paymentNow)
	assert.Equal(t, "rcpt_0f5b2c8e_1741608000000", r)
	assert.LessOrEqual(t, len(r), 40)
	assert.Equal(t, "rcpt_u1_1741608000000", receipt("u1", paymentNow))
}

func TestPaymentService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an order", func(t *testing.T) {
		gw := new(mockGateway)
		mAcc := new(repoMocks.MockAccountRepository)
		svc := newTestPaymentService(gw, mAcc)

		mAcc.On("Ensure", ctx, ownerID, "a@example.com").Return(nil)
		mAcc.On("FindByID", ctx, ownerID).Return(&model.Account{ID: ownerID}, nil)
		gw.On("CreateOrder", ctx, razorpay.OrderRequest{
			Amount:   10000,
			Currency: "INR",
			Receipt:  "rcpt_user-1_1741608000000",
			Notes:    map[string]string{"user_id": ownerID, "email": "a@example.com"},
		}).Return(&razorpay.Order{ID: "order_1", Amount: 10000, Currency: "INR"}, nil)
		mAcc.On("SetOrder", ctx, ownerID, "order_1", paymentNow).Return(nil)

		res, err := svc.CreateOrder(ctx, ownerID, "a@example.com")

		require.NoError(t, err)
		assert.Equal(t, &OrderResult{OrderID: "order_1", Amount: 10000, Currency: "INR", KeyID: "rzp_test_key"}, res)
		gw.AssertExpectations(t)
		mAcc.AssertExpectations(t)
	})

	t.Run("already pro", func(t *testing.T) {
		gw := new(mockGateway)
		mAcc := new(repoMocks.MockAccountRepository)
		svc := newTestPaymentService(gw, mAcc)

		mAcc.On("Ensure", ctx, ownerID, "").Return(nil)
		mAcc.On("FindByID", ctx, ownerID).Return(&model.Account{ID: ownerID, IsPro: true}, nil)

		_, err := svc.CreateOrder(ctx, ownerID, "")

		assert.ErrorIs(t, err, ErrAlreadyPro)
		gw.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("gateway failure", func(t *testing.T) {
		gw := new(mockGateway)
		mAcc := new(repoMocks.MockAccountRepository)
		svc := newTestPaymentService(gw, mAcc)

		mAcc.On("Ensure", ctx, ownerID, "").Return(nil)
		mAcc.On("FindByID", ctx, ownerID).Return(&model.Account{ID: ownerID}, nil)
		gw.On("CreateOrder", ctx, mock.Anything).Return(nil, errors.New("timeout"))

		_, err := svc.CreateOrder(ctx, ownerID, "")

		assert.ErrorContains(t, err, "create gateway order: timeout")
		mAcc.AssertNotCalled(t, "SetOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("order not recorded", func(t *testing.T) {
		gw := new(mockGateway)
		mAcc := new(repoMocks.MockAccountRepository)
		svc := newTestPaymentService(gw, mAcc)

		mAcc.On("Ensure", ctx, ownerID, "").Return(nil)
		mAcc.On("FindByID", ctx, ownerID).Return(&model.Account{ID: ownerID}, nil)
		gw.On("CreateOrder", ctx, mock.Anything).Return(&razorpay.Order{ID: "order_1"}, nil)
		mAcc.On("SetOrder", ctx, ownerID, "order_1", paymentNow).Return(errors.New("db down"))

		_, err := svc.CreateOrder(ctx, ownerID, "")

		assert.ErrorContains(t, err, "record order: db down")
	})
}

func TestPaymentService_Verify(t *testing.T) {
	ctx := context.Background()
	goodSig := razorpay.Signature("topsecret", "order_1", "pay_1")

	tests := []struct {
		name       string
		noSecret   bool
		in         VerifyInput
		setupMocks func(mAcc *repoMocks.MockAccountRepository)
		wantErr    error
	}{
		{
			name: "valid signature upgrades the account",
			in:   VerifyInput{OrderID: "order_1", PaymentID: "pay_1", Signature: goodSig},
			setupMocks: func(mAcc *repoMocks.MockAccountRepository) {
				mAcc.On("Ensure", ctx, ownerID, "a@example.com").Return(nil)
				mAcc.On("FindByID", ctx, ownerID).Return(&model.Account{ID: ownerID, OrderID: "order_1"}, nil)
				mAcc.On("MarkPro", ctx, ownerID, "a@example.com", "pay_1", "order_1", paymentNow).Return(nil)
			},
		},
		{
			name: "same payment again is a no-op",
			in:   VerifyInput{OrderID: "order_1", PaymentID: "pay_1", Signature: goodSig},
			setupMocks: func(mAcc *repoMocks.MockAccountRepository) {
				mAcc.On("Ensure", ctx, ownerID, "a@example.com").Return(nil)
				mAcc.On("FindByID", ctx, ownerID).Return(&model.Account{ID: ownerID, IsPro: true, PaymentID: "pay_1"}, nil)
			},
		},
		{
			name: "order created for another account",
			in:   VerifyInput{OrderID: "order_1", PaymentID: "pay_1", Signature: goodSig},
			setupMocks: func(mAcc *repoMocks.MockAccountRepository) {
				mAcc.On("Ensure", ctx, ownerID, "a@example.com").Return(nil)
				mAcc.On("FindByID", ctx, ownerID).Return(&model.Account{ID: ownerID, OrderID: "order_9"}, nil)
			},
			wantErr: ErrVerificationFailed,
		},
		{
			name:       "unset secret rejects self-signed callback",
			noSecret:   true,
			in:         VerifyInput{OrderID: "order_fake", PaymentID: "pay_fake", Signature: razorpay.Signature("", "order_fake", "pay_fake")},
			setupMocks: func(*repoMocks.MockAccountRepository) {},
			wantErr:    ErrVerificationFailed,
		},
		{
			name:       "tampered signature",
			in:         VerifyInput{OrderID: "order_1", PaymentID: "pay_2", Signature: goodSig},
			setupMocks: func(*repoMocks.MockAccountRepository) {},
			wantErr:    ErrVerificationFailed,
		},
		{
			name:       "missing fields",
			in:         VerifyInput{OrderID: "order_1"},
			setupMocks: func(*repoMocks.MockAccountRepository) {},
			wantErr:    ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mAcc := new(repoMocks.MockAccountRepository)
			svc := newTestPaymentService(new(mockGateway), mAcc)
			if tt.noSecret {
				svc.opts.KeySecret = ""
			}
			tt.setupMocks(mAcc)

			err := svc.Verify(ctx, ownerID, "a@example.com", tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				mAcc.AssertNotCalled(t, "MarkPro", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			mAcc.AssertExpectations(t)
		})
	}
}
