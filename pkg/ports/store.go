package ports

import (
	"context"
	"fmt"

	"github.com/aretw0/tmsim/pkg/domain"
)

// ResultStore caches the results of finished runs.
// Runs are deterministic, so a result is valid for as long as the key is.
type ResultStore interface {
	// Save stores the result under key, replacing any previous entry.
	Save(ctx context.Context, key string, res *domain.Result) error

	// Load retrieves the result stored under key.
	// Returns domain.ErrResultNotFound if there is none.
	Load(ctx context.Context, key string) (*domain.Result, error)

	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every stored key.
	List(ctx context.Context) ([]string, error)
}

// ResultKey builds the cache key of a run. The step limit is part of the key
// because the same machine and input may stop differently under another limit.
func ResultKey(fingerprint string, limit int, input string) string {
	return fmt.Sprintf("%s:%d:%s", fingerprint, limit, input)
}
