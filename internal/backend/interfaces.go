package backend

import (
	"context"

	"github.com/ujjiboni/dashboard/internal/domain"
)

// API defines the cooperative backend operations the dashboard relies on
type API interface {
	Login(ctx context.Context, req domain.LoginRequest) (string, error)
	Profile(ctx context.Context) (*domain.User, error)
	ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) (string, error)
	SetupPassword(ctx context.Context, req domain.SetupPasswordRequest) (*domain.SetupPasswordResponse, error)

	ListAccounts(ctx context.Context, params domain.AccountListParams) ([]domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccountTransactions(ctx context.Context, id string, page, limit int) (*domain.AccountTransactions, error)
	CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error)
	EnterTransaction(ctx context.Context, req domain.EnterTransactionRequest) (string, error)

	ListLoans(ctx context.Context, params domain.LoanListParams) (*domain.LoanPage, error)
	GetLoan(ctx context.Context, id string) (*domain.LoanDetails, error)
	CreateLoan(ctx context.Context, payload domain.CreateLoanPayload) (*domain.Loan, error)
	ListEMIs(ctx context.Context, loanID string) ([]domain.LoanEMI, error)
	CreateEMI(ctx context.Context, loanID string, req domain.CreateLoanEMIRequest) (*domain.LoanEMI, error)
	ListInterests(ctx context.Context, loanID string) (*domain.LoanInterests, error)
	CreateInterest(ctx context.Context, loanID string, payload domain.CreateLoanInterestPayload) (*domain.LoanInterest, error)
	MemberLoanStats(ctx context.Context) ([]domain.MemberLoanStats, error)
	OrgLoanStats(ctx context.Context) (*domain.OrgLoanStats, error)

	ListMembers(ctx context.Context) ([]domain.User, error)
	InviteMember(ctx context.Context, req domain.InviteMemberRequest) (string, error)
}

var _ API = (*Client)(nil)
