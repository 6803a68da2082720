package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	LoanStatusActive    LoanStatus = "ACTIVE"
	LoanStatusCompleted LoanStatus = "COMPLETED"
)

const (
	LoanTypePersonal  LoanType = "PERSONAL"
	LoanTypeBusiness  LoanType = "BUSINESS"
	LoanTypeEmergency LoanType = "EMERGENCY"
	LoanTypeEducation LoanType = "EDUCATION"
)

// Business limits enforced before a loan, EMI or interest entry reaches the backend.
var (
	MaxLoanAmount          = decimal.NewFromInt(10000000)
	MaxMonthlyInterestRate = decimal.NewFromInt(50)
)

type LoanStatus string

func (s LoanStatus) Valid() bool {
	return s == LoanStatusActive || s == LoanStatusCompleted
}

type LoanType string

var loanTypeLabels = map[LoanType]string{
	LoanTypePersonal:  "Personal Loan",
	LoanTypeBusiness:  "Business Loan",
	LoanTypeEmergency: "Emergency Loan",
	LoanTypeEducation: "Education Loan",
}

func (t LoanType) Valid() bool {
	_, ok := loanTypeLabels[t]
	return ok
}

func (t LoanType) Label() string {
	return loanTypeLabels[t]
}

// InterestPaymentSummary is the backend's running interest ledger for a loan.
type InterestPaymentSummary struct {
	TotalInterest   decimal.Decimal `json:"totalInterest"`
	TotalPaidAmount decimal.Decimal `json:"totalPaidAmount"`
}

// Due is interest accrued but not yet paid.
func (s InterestPaymentSummary) Due() decimal.Decimal {
	return s.TotalInterest.Sub(s.TotalPaidAmount)
}

// Loan represents a loan entity
type Loan struct {
	ID                     string                  `json:"_id"`
	LoanNumber             string                  `json:"loanNumber"`
	Member                 MemberRef               `json:"memberId"`
	LoanType               LoanType                `json:"loanType"`
	PrincipalAmount        decimal.Decimal         `json:"principalAmount"`
	MonthlyInterestRate    decimal.Decimal         `json:"monthlyInterestRate"`
	Status                 LoanStatus              `json:"status"`
	Notes                  string                  `json:"notes,omitempty"`
	LoanDisbursementMonth  Date                    `json:"loanDisbursementMonth"`
	InterestStartMonth     Date                    `json:"interestStartMonth"`
	EnteredBy              MemberRef               `json:"enteredBy"`
	OutstandingBalance     decimal.Decimal         `json:"outstandingBalance"`
	InterestPaymentSummary *InterestPaymentSummary `json:"interestPaymentSummary,omitempty"`
	CreatedAt              time.Time               `json:"createdAt"`
	UpdatedAt              time.Time               `json:"updatedAt"`
}

// InterestDue is the unpaid interest reported for the loan, zero when unknown.
func (l *Loan) InterestDue() decimal.Decimal {
	if l.InterestPaymentSummary == nil {
		return decimal.Zero
	}
	return l.InterestPaymentSummary.Due()
}

// InterestPaid is the interest collected so far, zero when unknown.
func (l *Loan) InterestPaid() decimal.Decimal {
	if l.InterestPaymentSummary == nil {
		return decimal.Zero
	}
	return l.InterestPaymentSummary.TotalPaidAmount
}

// LoanEMI is a principal repayment installment.
type LoanEMI struct {
	ID          string          `json:"_id"`
	LoanID      string          `json:"loanId,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate Date            `json:"paymentDate"`
	EnteredBy   MemberRef       `json:"enteredBy"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// LoanInterest is one month's interest payment record.
type LoanInterest struct {
	ID                      string          `json:"_id"`
	LoanID                  string          `json:"loanId,omitempty"`
	PaymentDate             Date            `json:"paymentDate"`
	InterestAmount          decimal.Decimal `json:"interestAmount"`
	PreviousInterestDue     decimal.Decimal `json:"previousInterestDue"`
	PaidAmount              decimal.Decimal `json:"paidAmount"`
	DueAfterInterestPayment decimal.Decimal `json:"dueAfterInterestPayment"`
	EnteredBy               MemberRef       `json:"enteredBy"`
	CreatedAt               time.Time       `json:"createdAt"`
}

// CreateLoanRequest is the new-loan form. The interest start month is
// never taken from the caller; it is derived from the disbursement month.
type CreateLoanRequest struct {
	MemberID              string          `json:"memberId" validate:"required"`
	LoanType              LoanType        `json:"loanType" validate:"required,loan_type"`
	PrincipalAmount       decimal.Decimal `json:"principalAmount" validate:"decimal_gt=0,decimal_lte=10000000"`
	MonthlyInterestRate   decimal.Decimal `json:"monthlyInterestRate" validate:"decimal_gte=0,decimal_lte=50"`
	Notes                 string          `json:"notes"`
	LoanDisbursementMonth Date            `json:"loanDisbursementMonth" validate:"required"`
	InterestStartMonth    Date            `json:"-"`
}

// CreateLoanPayload is what the backend receives for a new loan.
type CreateLoanPayload struct {
	MemberID              string          `json:"memberId"`
	LoanType              LoanType        `json:"loanType"`
	PrincipalAmount       decimal.Decimal `json:"principalAmount"`
	MonthlyInterestRate   decimal.Decimal `json:"monthlyInterestRate"`
	Notes                 string          `json:"notes"`
	LoanDisbursementMonth Date            `json:"loanDisbursementMonth"`
	InterestStartMonth    Date            `json:"interestStartMonth"`
}

// CreateLoanEMIRequest is the EMI form.
type CreateLoanEMIRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"decimal_gt=0,decimal_lte=10000000"`
	PaymentDate Date            `json:"paymentDate" validate:"required"`
	Notes       string          `json:"notes"`
}

// InterestPaymentRequest is the interest form. Only the paid amount is
// user input; the month and interest figures are derived.
type InterestPaymentRequest struct {
	PaidAmount decimal.Decimal `json:"paidAmount"`
}

// CreateLoanInterestPayload is what the backend receives for an interest payment.
type CreateLoanInterestPayload struct {
	InterestAmount decimal.Decimal `json:"interestAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	PaymentDate    Date            `json:"paymentDate"`
}

// LoanListParams filters the loan list. "all" or "" means no filter.
type LoanListParams struct {
	Page     int        `json:"page"`
	Limit    int        `json:"limit"`
	MemberID string     `json:"memberId,omitempty"`
	Status   LoanStatus `json:"status,omitempty"`
}

// InterestForm is everything the interest payment form shows for a loan.
type InterestForm struct {
	LoanID               string          `json:"loanId"`
	PaymentMonth         Date            `json:"paymentMonth"`
	OutstandingBalance   decimal.Decimal `json:"outstandingBalance"`
	MonthlyInterestRate  decimal.Decimal `json:"monthlyInterestRate"`
	PreviousInterestDue  decimal.Decimal `json:"previousInterestDue"`
	CurrentMonthInterest decimal.Decimal `json:"currentMonthInterest"`
	TotalInterestDue     decimal.Decimal `json:"totalInterestDue"`
	PaidAmount           decimal.Decimal `json:"paidAmount"`
	DueAfterPayment      decimal.Decimal `json:"dueAfterPayment"`
}

// MemberLoanStats is the backend's per-member loan breakdown.
type MemberLoanStats struct {
	MemberID                string          `json:"memberId"`
	FullName                string          `json:"fullName,omitempty"`
	TotalLoans              int             `json:"totalLoans"`
	ActiveLoans             int             `json:"activeLoans"`
	TotalPrincipal          decimal.Decimal `json:"totalPrincipal"`
	TotalOutstandingBalance decimal.Decimal `json:"totalOutstandingBalance"`
	TotalInterestDue        decimal.Decimal `json:"totalInterestDue"`
}

// OrgLoanStats is the organisation-wide loan position.
type OrgLoanStats struct {
	TotalLoans              int             `json:"totalLoans"`
	ActiveLoans             int             `json:"activeLoans"`
	TotalPrincipal          decimal.Decimal `json:"totalPrincipal"`
	TotalOutstandingBalance decimal.Decimal `json:"totalOutstandingBalance"`
	TotalInterestDue        decimal.Decimal `json:"totalInterestDue"`
	TotalInterestPaid       decimal.Decimal `json:"totalInterestPaid"`
}

// OrganizationSummary combines account balances with the loan book.
type OrganizationSummary struct {
	Accounts                []AccountTypeTotal `json:"accounts"`
	TotalNetBalance         decimal.Decimal    `json:"totalNetBalance"`
	TotalOutstandingBalance decimal.Decimal    `json:"totalOutstandingBalance"`
	TotalInterestDue        decimal.Decimal    `json:"totalInterestDue"`
	GrossTotal              decimal.Decimal    `json:"grossTotal"`
}
