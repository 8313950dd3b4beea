package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"sharescribe/internal/razorpay"
	"sharescribe/internal/repository"
)

// Gateway creates orders with the payment provider.
type Gateway interface {
	CreateOrder(ctx context.Context, in razorpay.OrderRequest) (*razorpay.Order, error)
	KeyID() string
}

// OrderResult is what the checkout widget needs to open.
type OrderResult struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// VerifyInput is the checkout callback payload.
type VerifyInput struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

// PaymentOptions holds the fixed price tier and the signing secret.
type PaymentOptions struct {
	KeySecret   string
	AmountPaise int64
	Currency    string
}

// PaymentService upgrades accounts to the pro plan.
type PaymentService interface {
	CreateOrder(ctx context.Context, userID, email string) (*OrderResult, error)

	// Verify checks the callback signature and that the order was created for this account,
	// then marks the account pro. Verifying the payment already recorded on the account
	// succeeds without writing.
	Verify(ctx context.Context, userID, email string, in VerifyInput) error
}

type paymentService struct {
	gateway  Gateway
	accounts repository.AccountRepository
	opts     PaymentOptions
	log      *zap.Logger
	now      func() time.Time
}

func NewPaymentService(gateway Gateway, accounts repository.AccountRepository, opts PaymentOptions, log *zap.Logger) PaymentService {
	return &paymentService{
		gateway:  gateway,
		accounts: accounts,
		opts:     opts,
		log:      log.Named("payments"),
		now:      time.Now,
	}
}

// receipt stays within the gateway's 40 character limit.
func receipt(userID string, now time.Time) string {
	short := userID
	if len(short) > 8 {
		short = short[:8]
	}
	return "rcpt_" + short + "_" + strconv.FormatInt(now.UnixMilli(), 10)
}

func (s *paymentService) CreateOrder(ctx context.Context, userID, email string) (*OrderResult, error) {
	if err := s.accounts.Ensure(ctx, userID, email); err != nil {
		return nil, fmt.Errorf("ensure account: %w", err)
	}
	acc, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if acc.IsPro {
		return nil, ErrAlreadyPro
	}

	order, err := s.gateway.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:   s.opts.AmountPaise,
		Currency: s.opts.Currency,
		Receipt:  receipt(userID, s.now()),
		Notes:    map[string]string{"user_id": userID, "email": email},
	})
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	if err := s.accounts.SetOrder(ctx, userID, order.ID, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("record order: %w", err)
	}

	s.log.Info("payment_order_created", zap.String("user_id", userID), zap.String("order_id", order.ID))
	return &OrderResult{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.gateway.KeyID(),
	}, nil
}

func (s *paymentService) Verify(ctx context.Context, userID, email string, in VerifyInput) error {
	if in.OrderID == "" || in.PaymentID == "" || in.Signature == "" {
		return fmt.Errorf("%w: order id, payment id and signature are required", ErrValidation)
	}
	if s.opts.KeySecret == "" {
		s.log.Error("payment_secret_missing", zap.String("user_id", userID))
		return ErrVerificationFailed
	}
	if !razorpay.VerifyPaymentSignature(s.opts.KeySecret, in.OrderID, in.PaymentID, in.Signature) {
		s.log.Warn("payment_signature_mismatch", zap.String("user_id", userID), zap.String("order_id", in.OrderID))
		return ErrVerificationFailed
	}

	if err := s.accounts.Ensure(ctx, userID, email); err != nil {
		return fmt.Errorf("ensure account: %w", err)
	}
	acc, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}
	if acc.IsPro && acc.PaymentID == in.PaymentID {
		return nil
	}
	if acc.OrderID != in.OrderID {
		s.log.Warn("payment_order_mismatch", zap.String("user_id", userID), zap.String("order_id", in.OrderID))
		return ErrVerificationFailed
	}

	if err := s.accounts.MarkPro(ctx, userID, email, in.PaymentID, in.OrderID, s.now().UTC()); err != nil {
		return fmt.Errorf("mark pro: %w", err)
	}
	s.log.Info("payment_verified", zap.String("user_id", userID), zap.String("payment_id", in.PaymentID))
	return nil
}
