package service

import (
	"context"
	"fmt"

	"sharescribe/internal/model"
	"sharescribe/internal/repository"
)

// AccountView is the caller's profile with plan details.
type AccountView struct {
	*model.Account
	Limits        model.PlanLimits `json:"limits"`
	DocumentCount int              `json:"document_count"`
}

type AccountService interface {
	Me(ctx context.Context, userID, email string) (*AccountView, error)
}

type accountService struct {
	accounts repository.AccountRepository
	docs     repository.DocumentRepository
	plans    Plans
}

func NewAccountService(accounts repository.AccountRepository, docs repository.DocumentRepository, plans Plans) AccountService {
	return &accountService{accounts: accounts, docs: docs, plans: plans}
}

func (s *accountService) Me(ctx context.Context, userID, email string) (*AccountView, error) {
	if err := s.accounts.Ensure(ctx, userID, email); err != nil {
		return nil, fmt.Errorf("ensure account: %w", err)
	}
	acc, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	count, err := s.docs.CountByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	return &AccountView{Account: acc, Limits: s.plans.For(acc), DocumentCount: count}, nil
}
