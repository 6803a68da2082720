package service

import (
	"context"

	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/session"

	"github.com/shopspring/decimal"
)

// Auth is the sign-in, profile and session surface used by the HTTP layer.
type Auth interface {
	Login(ctx context.Context, req domain.LoginRequest) (*session.Grant, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*domain.User, error)
	RevalidateProfile(ctx context.Context) error
	ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) (string, error)
	SetupPassword(ctx context.Context, req domain.SetupPasswordRequest) (*domain.SetupPasswordResponse, error)
	Session() session.State
	ToggleTheme(ctx context.Context) (session.Theme, error)
}

type Accounts interface {
	ListAccounts(ctx context.Context, params domain.AccountListParams) ([]domain.Account, error)
	CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error)
	AccountDetails(ctx context.Context, id string) (*domain.Account, error)
	AccountTransactions(ctx context.Context, id string, page, limit int) (*domain.AccountTransactions, error)
	EnterTransaction(ctx context.Context, req domain.EnterTransactionRequest) (string, error)
}

type Loans interface {
	ListLoans(ctx context.Context, params domain.LoanListParams) (*domain.LoanPage, error)
	GetLoan(ctx context.Context, id string) (*domain.LoanDetails, error)
	CreateLoan(ctx context.Context, req domain.CreateLoanRequest) (*domain.Loan, error)
	ListEMIs(ctx context.Context, loanID string) ([]domain.LoanEMI, error)
	RecordEMI(ctx context.Context, loanID string, req domain.CreateLoanEMIRequest) (*domain.LoanEMI, error)
	ListInterests(ctx context.Context, loanID string) (*domain.LoanInterests, error)
	InterestForm(ctx context.Context, loanID string, paid *decimal.Decimal) (*domain.InterestForm, error)
	RecordInterestPayment(ctx context.Context, loanID string, req domain.InterestPaymentRequest) (*domain.LoanInterest, error)
	MemberLoanStats(ctx context.Context) ([]domain.MemberLoanStats, error)
	OrgLoanStats(ctx context.Context) (*domain.OrgLoanStats, error)
}

type Members interface {
	ListMembers(ctx context.Context) ([]domain.User, error)
	InviteMember(ctx context.Context, req domain.InviteMemberRequest) (string, error)
}

type Summary interface {
	OrganizationSummary(ctx context.Context) (*domain.OrganizationSummary, error)
}

var (
	_ Auth     = (*AuthService)(nil)
	_ Accounts = (*AccountService)(nil)
	_ Loans    = (*LoanService)(nil)
	_ Members  = (*MemberService)(nil)
	_ Summary  = (*SummaryService)(nil)
)
