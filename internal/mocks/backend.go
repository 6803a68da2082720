package mocks

import (
	"context"

	"github.com/ujjiboni/dashboard/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockBackend is a mock implementation of backend.API
type MockBackend struct {
	mock.Mock
}

func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

func (m *MockBackend) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) Profile(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockBackend) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) SetupPassword(ctx context.Context, req domain.SetupPasswordRequest) (*domain.SetupPasswordResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SetupPasswordResponse), args.Error(1)
}

func (m *MockBackend) ListAccounts(ctx context.Context, params domain.AccountListParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockBackend) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockBackend) ListAccountTransactions(ctx context.Context, id string, page, limit int) (*domain.AccountTransactions, error) {
	args := m.Called(ctx, id, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountTransactions), args.Error(1)
}

func (m *MockBackend) CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockBackend) EnterTransaction(ctx context.Context, req domain.EnterTransactionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) ListLoans(ctx context.Context, params domain.LoanListParams) (*domain.LoanPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanPage), args.Error(1)
}

func (m *MockBackend) GetLoan(ctx context.Context, id string) (*domain.LoanDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanDetails), args.Error(1)
}

func (m *MockBackend) CreateLoan(ctx context.Context, payload domain.CreateLoanPayload) (*domain.Loan, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockBackend) ListEMIs(ctx context.Context, loanID string) ([]domain.LoanEMI, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanEMI), args.Error(1)
}

func (m *MockBackend) CreateEMI(ctx context.Context, loanID string, req domain.CreateLoanEMIRequest) (*domain.LoanEMI, error) {
	args := m.Called(ctx, loanID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanEMI), args.Error(1)
}

func (m *MockBackend) ListInterests(ctx context.Context, loanID string) (*domain.LoanInterests, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanInterests), args.Error(1)
}

func (m *MockBackend) CreateInterest(ctx context.Context, loanID string, payload domain.CreateLoanInterestPayload) (*domain.LoanInterest, error) {
	args := m.Called(ctx, loanID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanInterest), args.Error(1)
}

func (m *MockBackend) MemberLoanStats(ctx context.Context) ([]domain.MemberLoanStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MemberLoanStats), args.Error(1)
}

func (m *MockBackend) OrgLoanStats(ctx context.Context) (*domain.OrgLoanStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrgLoanStats), args.Error(1)
}

func (m *MockBackend) ListMembers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockBackend) InviteMember(ctx context.Context, req domain.InviteMemberRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
