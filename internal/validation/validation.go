package validation

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ujjiboni/dashboard/internal/domain"
	customError "github.com/ujjiboni/dashboard/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	looseEmailRegex  = regexp.MustCompile(`^\S+@\S+$`)
	strictEmailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	otpRegex         = regexp.MustCompile(`^\d{6}$`)
)

// Validator checks dashboard forms and reports inline field errors.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the dashboard's custom tags registered.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(domain.Date); ok {
			return d.Time
		}
		return nil
	}, domain.Date{})

	mustRegister(v, "decimal_gt", decimalCompare(func(d, p decimal.Decimal) bool { return d.GreaterThan(p) }))
	mustRegister(v, "decimal_gte", decimalCompare(func(d, p decimal.Decimal) bool { return d.GreaterThanOrEqual(p) }))
	mustRegister(v, "decimal_lte", decimalCompare(func(d, p decimal.Decimal) bool { return d.LessThanOrEqual(p) }))
	mustRegister(v, "trimmed_required", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "trimmed_min", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len([]rune(strings.TrimSpace(fl.Field().String()))) >= n
	})
	mustRegister(v, "password", func(fl validator.FieldLevel) bool {
		return hasLetterAndDigit(fl.Field().String())
	})
	mustRegister(v, "otp", func(fl validator.FieldLevel) bool {
		return otpRegex.MatchString(fl.Field().String())
	})
	mustRegister(v, "loose_email", func(fl validator.FieldLevel) bool {
		return looseEmailRegex.MatchString(fl.Field().String())
	})
	mustRegister(v, "strict_email", func(fl validator.FieldLevel) bool {
		return strictEmailRegex.MatchString(fl.Field().String())
	})
	mustRegister(v, "account_type", func(fl validator.FieldLevel) bool {
		return domain.AccountType(fl.Field().String()).Valid()
	})
	mustRegister(v, "transaction_type", func(fl validator.FieldLevel) bool {
		return domain.TransactionType(fl.Field().String()).Valid()
	})
	mustRegister(v, "loan_type", func(fl validator.FieldLevel) bool {
		return domain.LoanType(fl.Field().String()).Valid()
	})

	return &Validator{validate: v}
}

// Struct validates obj and returns a *errors.ValidationError listing every
// failing field, or nil.
func (v *Validator) Struct(obj interface{}) error {
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	result := &customError.ValidationError{}
	for _, fe := range fieldErrors {
		result.Fields = append(result.Fields, customError.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return result
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func decimalCompare(cmp func(value, param decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		param, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(value, param)
	}
}

func hasLetterAndDigit(s string) bool {
	var letter, digit bool
	for _, r := range s {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			letter = true
		case r < unicode.MaxASCII && unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}
