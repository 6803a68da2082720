package handler

import (
	"net/http"

	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/service"
	"github.com/ujjiboni/dashboard/pkg/response"

	"github.com/gorilla/mux"
)

type AccountHandler struct {
	accounts service.Accounts
}

func NewAccountHandler(accounts service.Accounts) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	accounts, err := h.accounts.ListAccounts(r.Context(), domain.AccountListParams{
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, accounts)
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.accounts.CreateAccount(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Created(w, account)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.AccountDetails(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, account)
}

func (h *AccountHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	result, err := h.accounts.AccountTransactions(r.Context(), mux.Vars(r)["id"], queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, result)
}

// EnterTransaction records a ledger entry against the account in the path.
func (h *AccountHandler) EnterTransaction(w http.ResponseWriter, r *http.Request) {
	var req domain.EnterTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.AccountID = mux.Vars(r)["id"]

	message, err := h.accounts.EnterTransaction(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Message(w, http.StatusCreated, message)
}
