package service

import (
	"context"
	"log"
	"strings"

	"github.com/ujjiboni/dashboard/internal/cache"
)

// invalidateAfterWrite drops cached queries once the backend has accepted a
// mutation. Failures are logged, not returned: the write is already committed.
func invalidateAfterWrite(ctx context.Context, c cache.QueryCache, resources ...string) {
	if err := c.Invalidate(ctx, resources...); err != nil {
		log.Printf("Error invalidating cached %s: %v", strings.Join(resources, ", "), err)
	}
}
