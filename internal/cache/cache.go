package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Query keys, one per backend resource the dashboard reads.
const (
	Profile             = "profile"
	Accounts            = "accounts"
	Members             = "members"
	AccountDetails      = "account-details"
	AccountTransactions = "account-transactions"
	Loans               = "loans"
	Loan                = "loan"
	LoanEMIs            = "loan-emis"
	LoanInterests       = "loan-interests"
	LoanStats           = "loan-stats"
	OrgLoanStats        = "org-loan-stats"
)

// Key identifies a cached query by resource and parameters.
type Key struct {
	Resource string
	Params   []string
}

func NewKey(resource string, params ...interface{}) Key {
	k := Key{Resource: resource, Params: make([]string, 0, len(params))}
	for _, p := range params {
		k.Params = append(k.Params, fmt.Sprint(p))
	}
	return k
}

func (k Key) String() string {
	if len(k.Params) == 0 {
		return k.Resource
	}
	return k.Resource + ":" + strings.Join(k.Params, ":")
}

// QueryCache stores serialised query results until they go stale or their
// resource is invalidated.
type QueryCache interface {
	Get(ctx context.Context, key Key) ([]byte, bool)
	Set(ctx context.Context, key Key, value []byte)
	Invalidate(ctx context.Context, resources ...string) error
	InvalidateAll(ctx context.Context) error
	Ping(ctx context.Context) error
}

// Fetch returns the cached value for key, or loads, caches and returns it.
// Load errors are never cached.
func Fetch[T any](ctx context.Context, c QueryCache, key Key, load func(ctx context.Context) (T, error)) (T, error) {
	if data, ok := c.Get(ctx, key); ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
		log.Printf("cache: dropping undecodable entry %s", key)
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("cache: marshal error for key %s: %v", key, err)
		return v, nil
	}
	c.Set(ctx, key, data)
	return v, nil
}
