package mocks

import (
	"context"

	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/session"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req domain.LoginRequest) (*session.Grant, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Grant), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAuthService) Profile(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) RevalidateProfile(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) SetupPassword(ctx context.Context, req domain.SetupPasswordRequest) (*domain.SetupPasswordResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SetupPasswordResponse), args.Error(1)
}

func (m *MockAuthService) Session() session.State {
	return m.Called().Get(0).(session.State)
}

func (m *MockAuthService) ToggleTheme(ctx context.Context) (session.Theme, error) {
	args := m.Called(ctx)
	return args.Get(0).(session.Theme), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params domain.AccountListParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) AccountDetails(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) AccountTransactions(ctx context.Context, id string, page, limit int) (*domain.AccountTransactions, error) {
	args := m.Called(ctx, id, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountTransactions), args.Error(1)
}

func (m *MockAccountService) EnterTransaction(ctx context.Context, req domain.EnterTransactionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) ListLoans(ctx context.Context, params domain.LoanListParams) (*domain.LoanPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanPage), args.Error(1)
}

func (m *MockLoanService) GetLoan(ctx context.Context, id string) (*domain.LoanDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanDetails), args.Error(1)
}

func (m *MockLoanService) CreateLoan(ctx context.Context, req domain.CreateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) ListEMIs(ctx context.Context, loanID string) ([]domain.LoanEMI, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanEMI), args.Error(1)
}

func (m *MockLoanService) RecordEMI(ctx context.Context, loanID string, req domain.CreateLoanEMIRequest) (*domain.LoanEMI, error) {
	args := m.Called(ctx, loanID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanEMI), args.Error(1)
}

func (m *MockLoanService) ListInterests(ctx context.Context, loanID string) (*domain.LoanInterests, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanInterests), args.Error(1)
}

func (m *MockLoanService) InterestForm(ctx context.Context, loanID string, paid *decimal.Decimal) (*domain.InterestForm, error) {
	args := m.Called(ctx, loanID, paid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterestForm), args.Error(1)
}

func (m *MockLoanService) RecordInterestPayment(ctx context.Context, loanID string, req domain.InterestPaymentRequest) (*domain.LoanInterest, error) {
	args := m.Called(ctx, loanID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanInterest), args.Error(1)
}

func (m *MockLoanService) MemberLoanStats(ctx context.Context) ([]domain.MemberLoanStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MemberLoanStats), args.Error(1)
}

func (m *MockLoanService) OrgLoanStats(ctx context.Context) (*domain.OrgLoanStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrgLoanStats), args.Error(1)
}

type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) ListMembers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockMemberService) InviteMember(ctx context.Context, req domain.InviteMemberRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) OrganizationSummary(ctx context.Context) (*domain.OrganizationSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationSummary), args.Error(1)
}
