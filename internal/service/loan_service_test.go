package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/ujjiboni/dashboard/internal/cache"
	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/guard"
	"github.com/ujjiboni/dashboard/internal/mocks"
	"github.com/ujjiboni/dashboard/internal/validation"
	customError "github.com/ujjiboni/dashboard/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type loanFixture struct {
	api   *mocks.MockBackend
	cache *cache.MemoryCache
	guard *guard.MemoryGuard
	svc   *LoanService
}

func newLoanFixture(t *testing.T) *loanFixture {
	t.Helper()
	dhaka, err := time.LoadLocation("Asia/Dhaka")
	require.NoError(t, err)

	f := &loanFixture{
		api:   mocks.NewMockBackend(),
		cache: cache.NewMemoryCache(time.Minute),
		guard: guard.NewMemoryGuard(),
	}
	f.svc = NewLoanService(f.api, f.cache, f.guard, validation.New(), dhaka)
	f.svc.now = func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) }
	return f
}

func day(year int, month time.Month, d int) domain.Date {
	return domain.NewDate(time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
}

func sampleLoan() *domain.LoanDetails {
	return &domain.LoanDetails{
		Loan: domain.Loan{
			ID:                    "l1",
			LoanNumber:            "LN-001",
			MonthlyInterestRate:   decimal.NewFromInt(2),
			LoanDisbursementMonth: day(2024, 1, 1),
			Status:                domain.LoanStatusActive,
		},
		OutstandingBalance: decimal.NewFromInt(10000),
	}
}

func sampleInterests(dates ...domain.Date) *domain.LoanInterests {
	interests := &domain.LoanInterests{
		PaymentSummary: domain.InterestPaymentSummary{
			TotalInterest:   decimal.NewFromInt(3000),
			TotalPaidAmount: decimal.NewFromInt(2000),
		},
	}
	for _, d := range dates {
		interests.Interests = append(interests.Interests, domain.LoanInterest{PaymentDate: d})
	}
	return interests
}

func validLoanRequest() domain.CreateLoanRequest {
	return domain.CreateLoanRequest{
		MemberID:              "m1",
		LoanType:              domain.LoanTypeBusiness,
		PrincipalAmount:       decimal.NewFromInt(50000),
		MonthlyInterestRate:   decimal.NewFromInt(2),
		LoanDisbursementMonth: day(2024, 1, 15),
	}
}

func TestCreateLoan_DerivesInterestStartMonth(t *testing.T) {
	f := newLoanFixture(t)

	req := validLoanRequest()
	req.InterestStartMonth = day(2030, 1, 1)

	f.api.On("CreateLoan", mock.Anything, mock.MatchedBy(func(p domain.CreateLoanPayload) bool {
		return p.LoanDisbursementMonth.String() == "2024-01-01" &&
			p.InterestStartMonth.String() == "2024-03-01" &&
			p.MemberID == "m1" &&
			p.LoanType == domain.LoanTypeBusiness
	})).Return(&domain.Loan{ID: "l1"}, nil)

	loan, err := f.svc.CreateLoan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "l1", loan.ID)
	f.api.AssertExpectations(t)
}

func TestCreateLoan_DefaultsToPersonal(t *testing.T) {
	f := newLoanFixture(t)

	req := validLoanRequest()
	req.LoanType = ""

	f.api.On("CreateLoan", mock.Anything, mock.MatchedBy(func(p domain.CreateLoanPayload) bool {
		return p.LoanType == domain.LoanTypePersonal
	})).Return(&domain.Loan{ID: "l2"}, nil)

	_, err := f.svc.CreateLoan(context.Background(), req)
	require.NoError(t, err)
	f.api.AssertExpectations(t)
}

func TestCreateLoan_ValidationBlocksSubmission(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.CreateLoanRequest)
		field    string
		expected string
	}{
		{
			name:     "zero principal",
			mutate:   func(r *domain.CreateLoanRequest) { r.PrincipalAmount = decimal.Zero },
			field:    "principalAmount",
			expected: "Principal amount must be greater than 0",
		},
		{
			name:     "principal over limit",
			mutate:   func(r *domain.CreateLoanRequest) { r.PrincipalAmount = decimal.NewFromInt(10000001) },
			field:    "principalAmount",
			expected: "Principal amount cannot exceed ৳10,000,000",
		},
		{
			name:     "rate over fifty",
			mutate:   func(r *domain.CreateLoanRequest) { r.MonthlyInterestRate = decimal.RequireFromString("50.01") },
			field:    "monthlyInterestRate",
			expected: "Interest rate cannot exceed 50%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLoanFixture(t)
			req := validLoanRequest()
			tt.mutate(&req)

			_, err := f.svc.CreateLoan(context.Background(), req)
			require.Error(t, err)

			var validationErr *customError.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.expected, validationErr.Message(tt.field))
			f.api.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateLoan_InvalidatesLoanList(t *testing.T) {
	f := newLoanFixture(t)
	ctx := context.Background()

	params := domain.LoanListParams{Page: 1, Limit: 20}
	f.api.On("ListLoans", mock.Anything, params).Return(&domain.LoanPage{Loans: []domain.Loan{{ID: "l0"}}}, nil).Twice()
	f.api.On("CreateLoan", mock.Anything, mock.Anything).Return(&domain.Loan{ID: "l1"}, nil)

	_, err := f.svc.ListLoans(ctx, params)
	require.NoError(t, err)
	_, err = f.svc.ListLoans(ctx, params)
	require.NoError(t, err)
	f.api.AssertNumberOfCalls(t, "ListLoans", 1)

	_, err = f.svc.CreateLoan(ctx, validLoanRequest())
	require.NoError(t, err)

	_, err = f.svc.ListLoans(ctx, params)
	require.NoError(t, err)
	f.api.AssertNumberOfCalls(t, "ListLoans", 2)
}

func TestListLoans_AllMeansNoFilter(t *testing.T) {
	f := newLoanFixture(t)

	f.api.On("ListLoans", mock.Anything, domain.LoanListParams{Page: 1, Limit: 20}).
		Return(&domain.LoanPage{}, nil).Once()

	_, err := f.svc.ListLoans(context.Background(), domain.LoanListParams{MemberID: "all", Status: "all"})
	require.NoError(t, err)
	f.api.AssertExpectations(t)
}

func TestInterestForm(t *testing.T) {
	tests := []struct {
		name          string
		dates         []domain.Date
		paid          *decimal.Decimal
		expectedMonth string
		expectedDue   decimal.Decimal
	}{
		{
			name:          "first payment starts two months after disbursement",
			expectedMonth: "2024-03-01",
			expectedDue:   decimal.NewFromInt(1200),
		},
		{
			name:          "rolls forward from the latest payment regardless of order",
			dates:         []domain.Date{day(2024, 3, 1), day(2024, 5, 1), day(2024, 4, 1)},
			expectedMonth: "2024-06-01",
			expectedDue:   decimal.NewFromInt(1200),
		},
		{
			name:          "partial payment",
			dates:         []domain.Date{day(2024, 3, 1)},
			paid:          decimalPtr(300),
			expectedMonth: "2024-04-01",
			expectedDue:   decimal.NewFromInt(900),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLoanFixture(t)
			f.api.On("GetLoan", mock.Anything, "l1").Return(sampleLoan(), nil)
			f.api.On("ListInterests", mock.Anything, "l1").Return(sampleInterests(tt.dates...), nil)

			form, err := f.svc.InterestForm(context.Background(), "l1", tt.paid)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedMonth, form.PaymentMonth.String())
			assert.True(t, form.PreviousInterestDue.Equal(decimal.NewFromInt(1000)))
			assert.True(t, form.CurrentMonthInterest.Equal(decimal.NewFromInt(200)))
			assert.True(t, form.TotalInterestDue.Equal(decimal.NewFromInt(1200)))
			assert.True(t, form.DueAfterPayment.Equal(tt.expectedDue), "got %s", form.DueAfterPayment)
		})
	}
}

func TestInterestForm_SameMonthFromCache(t *testing.T) {
	f := newLoanFixture(t)
	domain.SetLocation(f.svc.loc)
	t.Cleanup(func() { domain.SetLocation(time.UTC) })

	// Midnight 1 March in Dhaka, as the backend reports it.
	var interests domain.LoanInterests
	require.NoError(t, json.Unmarshal([]byte(`{
		"interests": [{"_id": "i1", "paymentDate": "2024-02-29T18:00:00.000Z", "paidAmount": 200}],
		"paymentSummary": {"totalInterest": 3000, "totalPaidAmount": 2000}
	}`), &interests))

	f.api.On("GetLoan", mock.Anything, "l1").Return(sampleLoan(), nil).Once()
	f.api.On("ListInterests", mock.Anything, "l1").Return(&interests, nil).Once()

	miss, err := f.svc.InterestForm(context.Background(), "l1", nil)
	require.NoError(t, err)
	hit, err := f.svc.InterestForm(context.Background(), "l1", nil)
	require.NoError(t, err)

	assert.Equal(t, "2024-04-01", miss.PaymentMonth.String())
	assert.Equal(t, miss.PaymentMonth, hit.PaymentMonth)
	f.api.AssertExpectations(t)
}

func TestInterestForm_RejectsOverpayment(t *testing.T) {
	f := newLoanFixture(t)
	f.api.On("GetLoan", mock.Anything, "l1").Return(sampleLoan(), nil)
	f.api.On("ListInterests", mock.Anything, "l1").Return(sampleInterests(), nil)

	_, err := f.svc.InterestForm(context.Background(), "l1", decimalPtr(1300))
	require.Error(t, err)

	var validationErr *customError.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "Amount cannot exceed ৳1200", validationErr.Message("paidAmount"))
}

func TestRecordInterestPayment(t *testing.T) {
	f := newLoanFixture(t)
	f.api.On("GetLoan", mock.Anything, "l1").Return(sampleLoan(), nil)
	f.api.On("ListInterests", mock.Anything, "l1").Return(sampleInterests(day(2024, 3, 1)), nil)
	f.api.On("CreateInterest", mock.Anything, "l1", mock.MatchedBy(func(p domain.CreateLoanInterestPayload) bool {
		return p.InterestAmount.Equal(decimal.NewFromInt(200)) &&
			p.PaidAmount.Equal(decimal.NewFromInt(300)) &&
			p.PaymentDate.String() == "2024-04-01"
	})).Return(&domain.LoanInterest{ID: "i1"}, nil)

	interest, err := f.svc.RecordInterestPayment(context.Background(), "l1", domain.InterestPaymentRequest{PaidAmount: decimal.NewFromInt(300)})
	require.NoError(t, err)
	assert.Equal(t, "i1", interest.ID)
	f.api.AssertExpectations(t)

	_, cached := f.cache.Get(context.Background(), cache.NewKey(cache.LoanInterests, "l1"))
	assert.False(t, cached)
}

func TestRecordInterestPayment_OverpaymentNotSubmitted(t *testing.T) {
	f := newLoanFixture(t)
	f.api.On("GetLoan", mock.Anything, "l1").Return(sampleLoan(), nil)
	f.api.On("ListInterests", mock.Anything, "l1").Return(sampleInterests(), nil)

	_, err := f.svc.RecordInterestPayment(context.Background(), "l1", domain.InterestPaymentRequest{PaidAmount: decimal.NewFromInt(-1)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrValidation))
	f.api.AssertNotCalled(t, "CreateInterest", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordInterestPayment_DuplicateInFlight(t *testing.T) {
	f := newLoanFixture(t)
	ctx := context.Background()

	release, err := f.guard.Acquire(ctx, guard.Key("loan-interest", "l1"))
	require.NoError(t, err)
	defer release()

	_, err = f.svc.RecordInterestPayment(ctx, "l1", domain.InterestPaymentRequest{PaidAmount: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, customError.ErrSubmissionInFlight)
	f.api.AssertNotCalled(t, "CreateInterest", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordEMI(t *testing.T) {
	f := newLoanFixture(t)
	ctx := context.Background()

	f.api.On("GetLoan", mock.Anything, "l1").Return(sampleLoan(), nil).Twice()
	f.api.On("CreateEMI", mock.Anything, "l1", mock.MatchedBy(func(r domain.CreateLoanEMIRequest) bool {
		return r.Amount.Equal(decimal.NewFromInt(5000)) && r.PaymentDate.String() == "2024-06-15"
	})).Return(&domain.LoanEMI{ID: "e1"}, nil)

	_, err := f.svc.GetLoan(ctx, "l1")
	require.NoError(t, err)

	emi, err := f.svc.RecordEMI(ctx, "l1", domain.CreateLoanEMIRequest{Amount: decimal.NewFromInt(5000)})
	require.NoError(t, err)
	assert.Equal(t, "e1", emi.ID)

	_, err = f.svc.GetLoan(ctx, "l1")
	require.NoError(t, err)
	f.api.AssertNumberOfCalls(t, "GetLoan", 2)
}

type failingInvalidation struct {
	*cache.MemoryCache
	calls int
}

func (c *failingInvalidation) Invalidate(context.Context, ...string) error {
	c.calls++
	return errors.New("redis down")
}

func TestRecordEMI_InvalidationFailureStillSucceeds(t *testing.T) {
	f := newLoanFixture(t)
	queryCache := &failingInvalidation{MemoryCache: f.cache}
	f.svc.cache = queryCache

	f.api.On("CreateEMI", mock.Anything, "l1", mock.Anything).Return(&domain.LoanEMI{ID: "e1"}, nil)

	emi, err := f.svc.RecordEMI(context.Background(), "l1", domain.CreateLoanEMIRequest{Amount: decimal.NewFromInt(5000)})
	require.NoError(t, err)
	assert.Equal(t, "e1", emi.ID)
	assert.Equal(t, 1, queryCache.calls)
	f.api.AssertNumberOfCalls(t, "CreateEMI", 1)
}

func TestCreateLoan_InvalidationFailureStillSucceeds(t *testing.T) {
	f := newLoanFixture(t)
	f.svc.cache = &failingInvalidation{MemoryCache: f.cache}
	f.api.On("CreateLoan", mock.Anything, mock.Anything).Return(&domain.Loan{ID: "l1"}, nil)

	loan, err := f.svc.CreateLoan(context.Background(), validLoanRequest())
	require.NoError(t, err)
	assert.Equal(t, "l1", loan.ID)
}

func TestRecordEMI_Validation(t *testing.T) {
	f := newLoanFixture(t)

	_, err := f.svc.RecordEMI(context.Background(), "l1", domain.CreateLoanEMIRequest{Amount: decimal.NewFromInt(10000001)})
	var validationErr *customError.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "Amount cannot exceed ৳10,000,000", validationErr.Message("amount"))

	_, err = f.svc.RecordEMI(context.Background(), "", domain.CreateLoanEMIRequest{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, customError.ErrMissingLoanID)
}

func TestLoanStats_AreCached(t *testing.T) {
	f := newLoanFixture(t)
	ctx := context.Background()

	f.api.On("OrgLoanStats", mock.Anything).Return(&domain.OrgLoanStats{TotalLoans: 3}, nil).Once()
	f.api.On("MemberLoanStats", mock.Anything).Return([]domain.MemberLoanStats{{MemberID: "m1", TotalLoans: 2}}, nil).Once()

	for i := 0; i < 2; i++ {
		stats, err := f.svc.OrgLoanStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalLoans)

		members, err := f.svc.MemberLoanStats(ctx)
		require.NoError(t, err)
		require.Len(t, members, 1)
	}
	f.api.AssertExpectations(t)
}

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
