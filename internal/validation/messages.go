package validation

import (
	"github.com/go-playground/validator/v10"
)

// messages maps "Struct.Field.tag" to the text staff see next to the field.
var messages = map[string]string{
	"LoginRequest.Email.required":    "Invalid email",
	"LoginRequest.Email.loose_email": "Invalid email",
	"LoginRequest.Password.required": "Password must be at least 6 characters",
	"LoginRequest.Password.min":      "Password must be at least 6 characters",

	"ChangePasswordRequest.CurrentPassword.required": "Current password is required",
	"ChangePasswordRequest.NewPassword.min":          "New password must be at least 8 characters long",
	"ChangePasswordRequest.NewPassword.password":     "Password must contain at least one letter and one number",
	"ChangePasswordRequest.ConfirmPassword.eqfield":  "Passwords do not match",

	"SetupPasswordRequest.Email.strict_email":      "Please enter a valid email address",
	"SetupPasswordRequest.Password.min":            "Password must be at least 8 characters long",
	"SetupPasswordRequest.Password.password":       "Password must contain at least one letter and one number",
	"SetupPasswordRequest.ConfirmPassword.eqfield": "Passwords do not match",
	"SetupPasswordRequest.OTPCode.otp":             "OTP must be exactly 6 digits",

	"InviteMemberRequest.FullName.min":       "Full name must be at least 2 characters long",
	"InviteMemberRequest.FullName.max":       "Full name must be less than 50 characters",
	"InviteMemberRequest.Email.required":     "Email is required",
	"InviteMemberRequest.Email.strict_email": "Please enter a valid email address",

	"CreateAccountRequest.Name.trimmed_required":  "Account name is required",
	"CreateAccountRequest.Name.trimmed_min":       "Account name must be at least 3 characters",
	"CreateAccountRequest.AccountHolder.required": "Account holder is required",
	"CreateAccountRequest.Type.required":          "Account type is required",
	"CreateAccountRequest.Type.account_type":      "Invalid account type",

	"EnterTransactionRequest.AccountID.required":       "Account ID is missing",
	"EnterTransactionRequest.Amount.decimal_gt":        "Amount must be greater than 0",
	"EnterTransactionRequest.Type.required":            "Transaction type is required",
	"EnterTransactionRequest.Type.transaction_type":    "Transaction type is required",
	"EnterTransactionRequest.Comment.trimmed_required": "Comment is required",
	"EnterTransactionRequest.Comment.trimmed_min":      "Comment must be at least 3 characters",
	"EnterTransactionRequest.TransactionDate.required": "Transaction date is required",

	"CreateLoanRequest.MemberID.required":               "Member selection is required",
	"CreateLoanRequest.LoanType.required":               "Loan type is required",
	"CreateLoanRequest.LoanType.loan_type":              "Invalid loan type",
	"CreateLoanRequest.PrincipalAmount.decimal_gt":      "Principal amount must be greater than 0",
	"CreateLoanRequest.PrincipalAmount.decimal_lte":     "Principal amount cannot exceed ৳10,000,000",
	"CreateLoanRequest.MonthlyInterestRate.decimal_gte": "Interest rate cannot be negative",
	"CreateLoanRequest.MonthlyInterestRate.decimal_lte": "Interest rate cannot exceed 50%",
	"CreateLoanRequest.LoanDisbursementMonth.required":  "Loan disbursement month is required",

	"CreateLoanEMIRequest.Amount.decimal_gt":    "Amount must be greater than 0",
	"CreateLoanEMIRequest.Amount.decimal_lte":   "Amount cannot exceed ৳10,000,000",
	"CreateLoanEMIRequest.PaymentDate.required": "Payment date is required",
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := messages[fe.StructNamespace()+"."+fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required", "trimmed_required":
		return "This field is required"
	case "min", "trimmed_min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "decimal_gt":
		return "Value must be greater than " + fe.Param()
	case "decimal_gte":
		return "Value must be greater than or equal to " + fe.Param()
	case "decimal_lte":
		return "Value must be less than or equal to " + fe.Param()
	default:
		return "Invalid value"
	}
}
