package service

import (
	"context"
	"log"
	"time"

	"github.com/ujjiboni/dashboard/internal/backend"
	"github.com/ujjiboni/dashboard/internal/cache"
	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/guard"
	"github.com/ujjiboni/dashboard/internal/validation"
	customError "github.com/ujjiboni/dashboard/pkg/errors"
	"github.com/ujjiboni/dashboard/pkg/utils"

	"github.com/shopspring/decimal"
)

type LoanService struct {
	api       backend.API
	cache     cache.QueryCache
	guard     guard.Guard
	validator *validation.Validator
	loc       *time.Location
	now       func() time.Time
}

func NewLoanService(
	api backend.API,
	queryCache cache.QueryCache,
	submissions guard.Guard,
	validator *validation.Validator,
	loc *time.Location,
) *LoanService {
	return &LoanService{
		api:       api,
		cache:     queryCache,
		guard:     submissions,
		validator: validator,
		loc:       loc,
		now:       time.Now,
	}
}

// ListLoans pages through loans; "all" or empty filters select everything.
func (s *LoanService) ListLoans(ctx context.Context, params domain.LoanListParams) (*domain.LoanPage, error) {
	params.Page, params.Limit = domain.NormalizePage(params.Page, params.Limit)
	if params.MemberID == "all" {
		params.MemberID = ""
	}
	if params.Status == "all" {
		params.Status = ""
	}

	key := cache.NewKey(cache.Loans, params.Page, params.Limit, params.MemberID, params.Status)
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (*domain.LoanPage, error) {
		return s.api.ListLoans(ctx, params)
	})
}

func (s *LoanService) GetLoan(ctx context.Context, id string) (*domain.LoanDetails, error) {
	if id == "" {
		return nil, customError.ErrMissingLoanID
	}
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Loan, id), func(ctx context.Context) (*domain.LoanDetails, error) {
		return s.api.GetLoan(ctx, id)
	})
}

// CreateLoan issues a loan. The disbursement month is normalised to its
// first day and the interest start month is always derived from it.
func (s *LoanService) CreateLoan(ctx context.Context, req domain.CreateLoanRequest) (*domain.Loan, error) {
	if req.LoanType == "" {
		req.LoanType = domain.LoanTypePersonal
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	disbursement := utils.MonthStart(req.LoanDisbursementMonth.Time, time.UTC)
	payload := domain.CreateLoanPayload{
		MemberID:              req.MemberID,
		LoanType:              req.LoanType,
		PrincipalAmount:       req.PrincipalAmount,
		MonthlyInterestRate:   req.MonthlyInterestRate,
		Notes:                 req.Notes,
		LoanDisbursementMonth: domain.NewDate(disbursement),
		InterestStartMonth:    domain.NewDate(utils.InterestStartMonth(disbursement, time.UTC)),
	}

	release, err := s.guard.Acquire(ctx, guard.Key("create-loan", req.MemberID))
	if err != nil {
		return nil, err
	}
	defer release()

	loan, err := s.api.CreateLoan(ctx, payload)
	if err != nil {
		return nil, err
	}
	invalidateAfterWrite(ctx, s.cache, cache.Loans, cache.OrgLoanStats, cache.LoanStats)
	return loan, nil
}

func (s *LoanService) ListEMIs(ctx context.Context, loanID string) ([]domain.LoanEMI, error) {
	if loanID == "" {
		return nil, customError.ErrMissingLoanID
	}
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.LoanEMIs, loanID), func(ctx context.Context) ([]domain.LoanEMI, error) {
		return s.api.ListEMIs(ctx, loanID)
	})
}

// RecordEMI records a principal repayment. A missing payment date means today.
func (s *LoanService) RecordEMI(ctx context.Context, loanID string, req domain.CreateLoanEMIRequest) (*domain.LoanEMI, error) {
	if loanID == "" {
		return nil, customError.ErrMissingLoanID
	}
	if req.PaymentDate.IsZero() {
		req.PaymentDate = domain.NewDate(utils.DayStart(s.now(), s.loc))
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	release, err := s.guard.Acquire(ctx, guard.Key("loan-emi", loanID))
	if err != nil {
		return nil, err
	}
	defer release()

	emi, err := s.api.CreateEMI(ctx, loanID, req)
	if err != nil {
		return nil, err
	}
	invalidateAfterWrite(ctx, s.cache, cache.LoanEMIs, cache.Loan, cache.Loans, cache.OrgLoanStats, cache.LoanStats)
	return emi, nil
}

func (s *LoanService) ListInterests(ctx context.Context, loanID string) (*domain.LoanInterests, error) {
	if loanID == "" {
		return nil, customError.ErrMissingLoanID
	}
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.LoanInterests, loanID), func(ctx context.Context) (*domain.LoanInterests, error) {
		return s.api.ListInterests(ctx, loanID)
	})
}

// InterestForm works out the next interest payment for a loan: the target
// month, the interest carried over, this month's interest and, for paid,
// what would remain due. A nil paid means nothing paid yet.
func (s *LoanService) InterestForm(ctx context.Context, loanID string, paid *decimal.Decimal) (*domain.InterestForm, error) {
	details, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	interests, err := s.ListInterests(ctx, loanID)
	if err != nil {
		return nil, err
	}

	paymentDates := make([]time.Time, 0, len(interests.Interests))
	for _, interest := range interests.Interests {
		if !interest.PaymentDate.IsZero() {
			paymentDates = append(paymentDates, interest.PaymentDate.Time)
		}
	}
	// Dates are civil days at midnight UTC.
	month := utils.NextInterestMonth(details.Loan.LoanDisbursementMonth.Time, paymentDates, time.UTC)

	previous := utils.PreviousInterestDue(interests.PaymentSummary.TotalInterest, interests.PaymentSummary.TotalPaidAmount)
	current := utils.CurrentMonthInterest(details.OutstandingBalance, details.Loan.MonthlyInterestRate)

	paidAmount := decimal.Zero
	if paid != nil {
		paidAmount = *paid
	}
	due, err := utils.CalculateInterestDue(previous, current, paidAmount)
	if err != nil {
		return nil, err
	}

	return &domain.InterestForm{
		LoanID:               loanID,
		PaymentMonth:         domain.NewDate(month),
		OutstandingBalance:   details.OutstandingBalance,
		MonthlyInterestRate:  details.Loan.MonthlyInterestRate,
		PreviousInterestDue:  due.PreviousInterestDue,
		CurrentMonthInterest: due.CurrentMonthInterest,
		TotalInterestDue:     due.TotalDue,
		PaidAmount:           due.PaidAmount,
		DueAfterPayment:      due.DueAfterPayment,
	}, nil
}

// RecordInterestPayment records paid against the loan's next interest month.
// The month and interest amount are derived from fresh backend data, never
// taken from the caller.
func (s *LoanService) RecordInterestPayment(ctx context.Context, loanID string, req domain.InterestPaymentRequest) (*domain.LoanInterest, error) {
	if loanID == "" {
		return nil, customError.ErrMissingLoanID
	}

	release, err := s.guard.Acquire(ctx, guard.Key("loan-interest", loanID))
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.cache.Invalidate(ctx, cache.Loan, cache.LoanInterests); err != nil {
		log.Printf("Error refreshing loan %s before interest payment: %v", loanID, err)
	}

	form, err := s.InterestForm(ctx, loanID, &req.PaidAmount)
	if err != nil {
		return nil, err
	}

	interest, err := s.api.CreateInterest(ctx, loanID, domain.CreateLoanInterestPayload{
		InterestAmount: form.CurrentMonthInterest,
		PaidAmount:     form.PaidAmount,
		PaymentDate:    form.PaymentMonth,
	})
	if err != nil {
		return nil, err
	}
	invalidateAfterWrite(ctx, s.cache, cache.LoanInterests, cache.Loan, cache.Loans, cache.OrgLoanStats, cache.LoanStats)
	return interest, nil
}

func (s *LoanService) MemberLoanStats(ctx context.Context) ([]domain.MemberLoanStats, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.LoanStats), s.api.MemberLoanStats)
}

func (s *LoanService) OrgLoanStats(ctx context.Context) (*domain.OrgLoanStats, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.OrgLoanStats), s.api.OrgLoanStats)
}
