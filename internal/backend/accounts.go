package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ujjiboni/dashboard/internal/domain"
	customError "github.com/ujjiboni/dashboard/pkg/errors"
)

type accountsResponse struct {
	Envelope
	Accounts []domain.Account `json:"accounts"`
}

type accountResponse struct {
	Envelope
	Account domain.Account `json:"account"`
}

type accountTransactionsResponse struct {
	Envelope
	Account      domain.Account       `json:"account"`
	Transactions []domain.Transaction `json:"transactions"`
}

func (c *Client) ListAccounts(ctx context.Context, params domain.AccountListParams) ([]domain.Account, error) {
	query := url.Values{}
	if params.SortBy != "" {
		query.Set("sortBy", params.SortBy)
	}
	if params.SortOrder != "" {
		query.Set("sortOrder", params.SortOrder)
	}

	var resp accountsResponse
	if err := c.get(ctx, "/accounts", query, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

func (c *Client) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	if id == "" {
		return nil, customError.ErrMissingAccountID
	}
	var resp accountResponse
	if err := c.get(ctx, "/accounts/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Account, nil
}

// ListAccountTransactions returns one page of an account's ledger.
func (c *Client) ListAccountTransactions(ctx context.Context, id string, page, limit int) (*domain.AccountTransactions, error) {
	if id == "" {
		return nil, customError.ErrMissingAccountID
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var resp accountTransactionsResponse
	if err := c.get(ctx, "/transactions/account/"+url.PathEscape(id), query, &resp); err != nil {
		return nil, err
	}
	return &domain.AccountTransactions{
		Account:      resp.Account,
		Transactions: resp.Transactions,
		Pagination:   resp.Pagination,
	}, nil
}

func (c *Client) CreateAccount(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error) {
	var resp accountResponse
	if err := c.post(ctx, "/accounts", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Account, nil
}

// EnterTransaction records a ledger entry and returns the backend message.
func (c *Client) EnterTransaction(ctx context.Context, req domain.EnterTransactionRequest) (string, error) {
	var resp Envelope
	if err := c.post(ctx, "/transactions", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
