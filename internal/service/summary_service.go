package service

import (
	"context"

	"github.com/ujjiboni/dashboard/internal/domain"
)

// SummaryService combines account balances with the loan book.
type SummaryService struct {
	accounts *AccountService
	loans    *LoanService
}

func NewSummaryService(accounts *AccountService, loans *LoanService) *SummaryService {
	return &SummaryService{accounts: accounts, loans: loans}
}

// OrganizationSummary reports the net account balance per type and overall,
// the loan book's outstanding principal and unpaid interest, and their sum.
func (s *SummaryService) OrganizationSummary(ctx context.Context) (*domain.OrganizationSummary, error) {
	accounts, err := s.accounts.ListAccounts(ctx, domain.AccountListParams{})
	if err != nil {
		return nil, err
	}
	stats, err := s.loans.OrgLoanStats(ctx)
	if err != nil {
		return nil, err
	}

	net := domain.TotalBalance(accounts)
	return &domain.OrganizationSummary{
		Accounts:                domain.TotalsByType(accounts),
		TotalNetBalance:         net,
		TotalOutstandingBalance: stats.TotalOutstandingBalance,
		TotalInterestDue:        stats.TotalInterestDue,
		GrossTotal:              stats.TotalOutstandingBalance.Add(stats.TotalInterestDue).Add(net),
	}, nil
}
