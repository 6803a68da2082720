package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/ujjiboni/dashboard/internal/domain"
	customError "github.com/ujjiboni/dashboard/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var january = domain.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

func validLoan() domain.CreateLoanRequest {
	return domain.CreateLoanRequest{
		MemberID:              "member-1",
		LoanType:              domain.LoanTypePersonal,
		PrincipalAmount:       decimal.NewFromInt(50000),
		MonthlyInterestRate:   decimal.NewFromInt(2),
		LoanDisbursementMonth: january,
	}
}

// fieldMessage validates obj and returns the message for field ("" if it passed).
func fieldMessage(t *testing.T, obj interface{}, field string) string {
	t.Helper()
	err := New().Struct(obj)
	if err == nil {
		return ""
	}
	var validationErr *customError.ValidationError
	require.True(t, errors.As(err, &validationErr), "unexpected error type %T", err)
	return validationErr.Message(field)
}

func TestCreateLoanRequest(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.CreateLoanRequest)
		field    string
		expected string
	}{
		{name: "valid loan", mutate: func(*domain.CreateLoanRequest) {}, field: "principalAmount"},
		{
			name:     "principal zero",
			mutate:   func(r *domain.CreateLoanRequest) { r.PrincipalAmount = decimal.Zero },
			field:    "principalAmount",
			expected: "Principal amount must be greater than 0",
		},
		{
			name:     "principal above limit",
			mutate:   func(r *domain.CreateLoanRequest) { r.PrincipalAmount = decimal.NewFromInt(10000001) },
			field:    "principalAmount",
			expected: "Principal amount cannot exceed ৳10,000,000",
		},
		{
			name:   "principal at limit",
			mutate: func(r *domain.CreateLoanRequest) { r.PrincipalAmount = decimal.NewFromInt(10000000) },
			field:  "principalAmount",
		},
		{
			name:     "rate above fifty",
			mutate:   func(r *domain.CreateLoanRequest) { r.MonthlyInterestRate = decimal.RequireFromString("50.01") },
			field:    "monthlyInterestRate",
			expected: "Interest rate cannot exceed 50%",
		},
		{
			name:   "rate at fifty",
			mutate: func(r *domain.CreateLoanRequest) { r.MonthlyInterestRate = decimal.NewFromInt(50) },
			field:  "monthlyInterestRate",
		},
		{
			name:   "rate zero",
			mutate: func(r *domain.CreateLoanRequest) { r.MonthlyInterestRate = decimal.Zero },
			field:  "monthlyInterestRate",
		},
		{
			name:     "negative rate",
			mutate:   func(r *domain.CreateLoanRequest) { r.MonthlyInterestRate = decimal.NewFromInt(-1) },
			field:    "monthlyInterestRate",
			expected: "Interest rate cannot be negative",
		},
		{
			name:     "missing member",
			mutate:   func(r *domain.CreateLoanRequest) { r.MemberID = "" },
			field:    "memberId",
			expected: "Member selection is required",
		},
		{
			name:     "missing disbursement month",
			mutate:   func(r *domain.CreateLoanRequest) { r.LoanDisbursementMonth = domain.Date{} },
			field:    "loanDisbursementMonth",
			expected: "Loan disbursement month is required",
		},
		{
			name:     "unknown loan type",
			mutate:   func(r *domain.CreateLoanRequest) { r.LoanType = "HOUSING" },
			field:    "loanType",
			expected: "Invalid loan type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validLoan()
			tt.mutate(&req)
			assert.Equal(t, tt.expected, fieldMessage(t, req, tt.field))
		})
	}
}

func TestCreateAccountRequest(t *testing.T) {
	base := domain.CreateAccountRequest{Name: "Abc", AccountHolder: "member-1", Type: domain.AccountTypeSavings}
	assert.NoError(t, New().Struct(base))

	short := base
	short.Name = "Ab"
	assert.Equal(t, "Account name must be at least 3 characters", fieldMessage(t, short, "name"))

	padded := base
	padded.Name = "  Ab  "
	assert.Equal(t, "Account name must be at least 3 characters", fieldMessage(t, padded, "name"))

	blank := base
	blank.Name = "   "
	assert.Equal(t, "Account name is required", fieldMessage(t, blank, "name"))

	badType := base
	badType.Type = "crypto"
	assert.Equal(t, "Invalid account type", fieldMessage(t, badType, "type"))
}

func TestEnterTransactionRequest(t *testing.T) {
	base := domain.EnterTransactionRequest{
		AccountID:       "acc-1",
		Amount:          decimal.NewFromInt(100),
		Type:            domain.TransactionTypeCredit,
		Comment:         "Monthly deposit",
		TransactionDate: january,
	}
	assert.NoError(t, New().Struct(base))

	zero := base
	zero.Amount = decimal.Zero
	assert.Equal(t, "Amount must be greater than 0", fieldMessage(t, zero, "amount"))

	noType := base
	noType.Type = ""
	assert.Equal(t, "Transaction type is required", fieldMessage(t, noType, "type"))

	badType := base
	badType.Type = "refund"
	assert.Equal(t, "Transaction type is required", fieldMessage(t, badType, "type"))

	shortComment := base
	shortComment.Comment = " ok "
	assert.Equal(t, "Comment must be at least 3 characters", fieldMessage(t, shortComment, "comment"))

	noDate := base
	noDate.TransactionDate = domain.Date{}
	assert.Equal(t, "Transaction date is required", fieldMessage(t, noDate, "transactionDate"))
}

func TestCreateLoanEMIRequest(t *testing.T) {
	base := domain.CreateLoanEMIRequest{Amount: decimal.NewFromInt(5000), PaymentDate: january}
	assert.NoError(t, New().Struct(base))

	over := base
	over.Amount = decimal.NewFromInt(10000001)
	assert.Equal(t, "Amount cannot exceed ৳10,000,000", fieldMessage(t, over, "amount"))

	negative := base
	negative.Amount = decimal.NewFromInt(-5)
	assert.Equal(t, "Amount must be greater than 0", fieldMessage(t, negative, "amount"))
}

func TestAuthForms(t *testing.T) {
	assert.NoError(t, New().Struct(domain.LoginRequest{Email: "admin@ujjiboni", Password: "secret"}))
	assert.Equal(t, "Invalid email", fieldMessage(t, domain.LoginRequest{Email: "admin", Password: "secret"}, "email"))
	assert.Equal(t, "Password must be at least 6 characters",
		fieldMessage(t, domain.LoginRequest{Email: "a@b", Password: "12345"}, "password"))

	change := domain.ChangePasswordRequest{CurrentPassword: "old", NewPassword: "newpass12", ConfirmPassword: "newpass12"}
	assert.NoError(t, New().Struct(change))

	lettersOnly := change
	lettersOnly.NewPassword, lettersOnly.ConfirmPassword = "abcdefgh", "abcdefgh"
	assert.Equal(t, "Password must contain at least one letter and one number", fieldMessage(t, lettersOnly, "newPassword"))

	mismatch := change
	mismatch.ConfirmPassword = "different1"
	assert.Equal(t, "Passwords do not match", fieldMessage(t, mismatch, "confirmPassword"))

	setup := domain.SetupPasswordRequest{Email: "rahim@ujjiboni.org", Password: "passw0rd", ConfirmPassword: "passw0rd", OTPCode: "123456"}
	assert.NoError(t, New().Struct(setup))

	badOTP := setup
	badOTP.OTPCode = "12345a"
	assert.Equal(t, "OTP must be exactly 6 digits", fieldMessage(t, badOTP, "otpCode"))

	badEmail := setup
	badEmail.Email = "rahim@ujjiboni"
	assert.Equal(t, "Please enter a valid email address", fieldMessage(t, badEmail, "email"))
}

func TestInviteMemberRequest(t *testing.T) {
	assert.NoError(t, New().Struct(domain.InviteMemberRequest{FullName: "Karim", Email: "karim@ujjiboni.org"}))
	assert.Equal(t, "Full name must be at least 2 characters long",
		fieldMessage(t, domain.InviteMemberRequest{FullName: "K", Email: "karim@ujjiboni.org"}, "fullName"))
	assert.Equal(t, "Email is required",
		fieldMessage(t, domain.InviteMemberRequest{FullName: "Karim"}, "email"))
}
