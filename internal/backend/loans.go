package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ujjiboni/dashboard/internal/domain"
	customError "github.com/ujjiboni/dashboard/pkg/errors"

	"github.com/shopspring/decimal"
)

type loansResponse struct {
	Envelope
	Loans []domain.Loan `json:"loans"`
}

type loanResponse struct {
	Envelope
	Loan               domain.Loan      `json:"loan"`
	OutstandingBalance *decimal.Decimal `json:"outstandingBalance"`
}

type emisResponse struct {
	Envelope
	Payments []domain.LoanEMI `json:"payments"`
}

type emiResponse struct {
	Envelope
	Payment domain.LoanEMI `json:"payment"`
}

type interestsResponse struct {
	Envelope
	Interests      []domain.LoanInterest         `json:"interests"`
	PaymentSummary domain.InterestPaymentSummary `json:"paymentSummary"`
}

type interestResponse struct {
	Envelope
	Interest domain.LoanInterest `json:"interest"`
}

type memberStatsResponse struct {
	Envelope
	Data []domain.MemberLoanStats `json:"data"`
}

type orgStatsResponse struct {
	Envelope
	Data domain.OrgLoanStats `json:"data"`
}

func loanPath(id string, suffix string) (string, error) {
	if id == "" {
		return "", customError.ErrMissingLoanID
	}
	return "/loans/" + url.PathEscape(id) + suffix, nil
}

// ListLoans pages through loans. Empty or "all" filters are not sent.
func (c *Client) ListLoans(ctx context.Context, params domain.LoanListParams) (*domain.LoanPage, error) {
	page, limit := domain.NormalizePage(params.Page, params.Limit)
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if params.MemberID != "" && params.MemberID != "all" {
		query.Set("memberId", params.MemberID)
	}
	if params.Status != "" && params.Status != "all" {
		query.Set("status", string(params.Status))
	}

	var resp loansResponse
	if err := c.get(ctx, "/loans", query, &resp); err != nil {
		return nil, err
	}
	return &domain.LoanPage{Loans: resp.Loans, Pagination: resp.Pagination}, nil
}

// GetLoan returns a loan with the outstanding balance reported alongside it,
// falling back to the balance embedded in the loan.
func (c *Client) GetLoan(ctx context.Context, id string) (*domain.LoanDetails, error) {
	path, err := loanPath(id, "")
	if err != nil {
		return nil, err
	}
	var resp loanResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	details := &domain.LoanDetails{Loan: resp.Loan, OutstandingBalance: resp.Loan.OutstandingBalance}
	if resp.OutstandingBalance != nil {
		details.OutstandingBalance = *resp.OutstandingBalance
	}
	return details, nil
}

func (c *Client) CreateLoan(ctx context.Context, payload domain.CreateLoanPayload) (*domain.Loan, error) {
	var resp loanResponse
	if err := c.post(ctx, "/loans", payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Loan, nil
}

func (c *Client) ListEMIs(ctx context.Context, loanID string) ([]domain.LoanEMI, error) {
	path, err := loanPath(loanID, "/payments")
	if err != nil {
		return nil, err
	}
	var resp emisResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Payments, nil
}

func (c *Client) CreateEMI(ctx context.Context, loanID string, req domain.CreateLoanEMIRequest) (*domain.LoanEMI, error) {
	path, err := loanPath(loanID, "/payments")
	if err != nil {
		return nil, err
	}
	var resp emiResponse
	if err := c.post(ctx, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Payment, nil
}

func (c *Client) ListInterests(ctx context.Context, loanID string) (*domain.LoanInterests, error) {
	path, err := loanPath(loanID, "/interests")
	if err != nil {
		return nil, err
	}
	var resp interestsResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return &domain.LoanInterests{Interests: resp.Interests, PaymentSummary: resp.PaymentSummary}, nil
}

func (c *Client) CreateInterest(ctx context.Context, loanID string, payload domain.CreateLoanInterestPayload) (*domain.LoanInterest, error) {
	path, err := loanPath(loanID, "/interests")
	if err != nil {
		return nil, err
	}
	var resp interestResponse
	if err := c.post(ctx, path, payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Interest, nil
}

func (c *Client) MemberLoanStats(ctx context.Context) ([]domain.MemberLoanStats, error) {
	var resp memberStatsResponse
	if err := c.get(ctx, "/loans/member/stats", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) OrgLoanStats(ctx context.Context) (*domain.OrgLoanStats, error) {
	var resp orgStatsResponse
	if err := c.get(ctx, "/loans/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
