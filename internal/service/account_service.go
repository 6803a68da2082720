package service

import (
	"context"
	"strings"
	"time"

	"github.com/ujjiboni/dashboard/internal/backend"
	"github.com/ujjiboni/dashboard/internal/cache"
	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/guard"
	"github.com/ujjiboni/dashboard/internal/validation"
	customError "github.com/ujjiboni/dashboard/pkg/errors"
	"github.com/ujjiboni/dashboard/pkg/utils"
)

type AccountService struct {
	api       backend.API
	cache     cache.QueryCache
	guard     guard.Guard
	validator *validation.Validator
	loc       *time.Location
	now       func() time.Time
}

func NewAccountService(
	api backend.API,
	queryCache cache.QueryCache,
	submissions guard.Guard,
	validator *validation.Validator,
	loc *time.Location,
) *AccountService {
	return &AccountService{
		api:       api,
		cache:     queryCache,
		guard:     submissions,
		validator: validator,
		loc:       loc,
		now:       time.Now,
	}
}

func (s *AccountService) ListAccounts(ctx context.Context, params domain.AccountListParams) ([]domain.Account, error) {
	key := cache.NewKey(cache.Accounts, params.SortBy, params.SortOrder)
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]domain.Account, error) {
		return s.api.ListAccounts(ctx, params)
	})
}

func (s *AccountService) CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	release, err := s.guard.Acquire(ctx, guard.Key("create-account", req.AccountHolder))
	if err != nil {
		return nil, err
	}
	defer release()

	account, err := s.api.CreateAccount(ctx, req)
	if err != nil {
		return nil, err
	}
	invalidateAfterWrite(ctx, s.cache, cache.Accounts)
	return account, nil
}

func (s *AccountService) AccountDetails(ctx context.Context, id string) (*domain.Account, error) {
	if id == "" {
		return nil, customError.ErrMissingAccountID
	}
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.AccountDetails, id), func(ctx context.Context) (*domain.Account, error) {
		return s.api.GetAccount(ctx, id)
	})
}

// AccountTransactions returns one page of the account's ledger with the
// page's credit and debit totals.
func (s *AccountService) AccountTransactions(ctx context.Context, id string, page, limit int) (*domain.AccountTransactions, error) {
	if id == "" {
		return nil, customError.ErrMissingAccountID
	}
	page, limit = domain.NormalizePage(page, limit)

	key := cache.NewKey(cache.AccountTransactions, id, page, limit)
	result, err := cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (*domain.AccountTransactions, error) {
		return s.api.ListAccountTransactions(ctx, id, page, limit)
	})
	if err != nil {
		return nil, err
	}
	result.Totals = domain.SumTransactions(result.Transactions)
	return result, nil
}

// EnterTransaction records a deposit or withdrawal. A missing transaction
// date means today.
func (s *AccountService) EnterTransaction(ctx context.Context, req domain.EnterTransactionRequest) (string, error) {
	req.Comment = strings.TrimSpace(req.Comment)
	if req.TransactionDate.IsZero() {
		req.TransactionDate = domain.NewDate(utils.DayStart(s.now(), s.loc))
	}
	if err := s.validator.Struct(req); err != nil {
		return "", err
	}

	release, err := s.guard.Acquire(ctx, guard.Key("transaction", req.AccountID))
	if err != nil {
		return "", err
	}
	defer release()

	message, err := s.api.EnterTransaction(ctx, req)
	if err != nil {
		return "", err
	}
	invalidateAfterWrite(ctx, s.cache, cache.AccountDetails, cache.AccountTransactions, cache.Accounts)
	return message, nil
}
