package handler

import (
	"net/http"

	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/service"
	customError "github.com/ujjiboni/dashboard/pkg/errors"
	"github.com/ujjiboni/dashboard/pkg/response"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type LoanHandler struct {
	loans service.Loans
}

func NewLoanHandler(loans service.Loans) *LoanHandler {
	return &LoanHandler{loans: loans}
}

func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := h.loans.ListLoans(r.Context(), domain.LoanListParams{
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
		MemberID: query.Get("memberId"),
		Status:   domain.LoanStatus(query.Get("status")),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, page)
}

func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLoanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	loan, err := h.loans.CreateLoan(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Created(w, loan)
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	details, err := h.loans.GetLoan(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, details)
}

func (h *LoanHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.loans.OrgLoanStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, stats)
}

func (h *LoanHandler) MemberStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.loans.MemberLoanStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, stats)
}

func (h *LoanHandler) EMIs(w http.ResponseWriter, r *http.Request) {
	emis, err := h.loans.ListEMIs(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, emis)
}

func (h *LoanHandler) RecordEMI(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLoanEMIRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	emi, err := h.loans.RecordEMI(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Created(w, emi)
}

func (h *LoanHandler) Interests(w http.ResponseWriter, r *http.Request) {
	interests, err := h.loans.ListInterests(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, interests)
}

// InterestForm previews the next interest payment; ?paidAmount= fills in
// what would remain due.
func (h *LoanHandler) InterestForm(w http.ResponseWriter, r *http.Request) {
	var paid *decimal.Decimal
	if raw := r.URL.Query().Get("paidAmount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			writeError(w, customError.NewValidationError("paidAmount", "Amount must be a number"))
			return
		}
		paid = &amount
	}

	form, err := h.loans.InterestForm(r.Context(), mux.Vars(r)["id"], paid)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, form)
}

func (h *LoanHandler) RecordInterest(w http.ResponseWriter, r *http.Request) {
	var req domain.InterestPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	interest, err := h.loans.RecordInterestPayment(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Created(w, interest)
}
