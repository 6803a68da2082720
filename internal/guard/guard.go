package guard

import (
	"context"
	"log"
	"sync"
	"time"

	customError "github.com/ujjiboni/dashboard/pkg/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Guard rejects a form submission while an identical one is still in flight.
type Guard interface {
	// Acquire claims key or fails with ErrSubmissionInFlight. The returned
	// release func must be called once the submission has finished.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Key builds a per-form guard key such as "loan-interest:<loanId>".
func Key(form, id string) string {
	if id == "" {
		return form
	}
	return form + ":" + id
}

type MemoryGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{inFlight: make(map[string]struct{})}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[key]; busy {
		return nil, customError.WrapSubmissionInFlight(key)
	}
	g.inFlight[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inFlight, key)
			g.mu.Unlock()
		})
	}, nil
}

const guardPrefix = "ujjiboni:submit:"

// releaseScript deletes the lock only if this holder still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard holds submission locks in Redis so duplicates are caught across
// service instances. Locks expire after ttl in case a holder dies.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, guardPrefix+key, token, g.ttl).Result()
	if err != nil {
		return nil, customError.WrapCacheError(err)
	}
	if !ok {
		return nil, customError.WrapSubmissionInFlight(key)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The request context may already be cancelled.
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, g.client, []string{guardPrefix + key}, token).Err(); err != nil && err != redis.Nil {
				log.Printf("RedisGuard: release error for key %s: %v", key, err)
			}
		})
	}, nil
}
