package apivideo

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// batchDeleteConcurrency limits concurrent DELETE requests
const batchDeleteConcurrency = 5

// BatchDeleteResult contains the results of a batch delete operation
type BatchDeleteResult struct {
	Requested  int
	Successful []string
	Failed     []DeleteError
}

// DeleteError contains information about a failed delete operation
type DeleteError struct {
	ID  string
	Err error
}

// Error implements the error interface
func (e DeleteError) Error() string {
	return fmt.Sprintf("failed to delete %s: %v", e.ID, e.Err)
}

// Unwrap returns the underlying error
func (e DeleteError) Unwrap() error {
	return e.Err
}

// batchDelete deletes every id, continuing past individual failures. Results
// keep the order of ids.
func (r *resource[T]) batchDelete(ctx context.Context, ids []string) BatchDeleteResult {
	result := BatchDeleteResult{
		Requested: len(ids),
	}

	if len(ids) == 0 {
		return result
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchDeleteConcurrency)

	// Each goroutine owns one slot.
	errs := make([]error, len(ids))
	for i, id := range ids {
		g.Go(func() error {
			_, errs[i] = r.remove(ctx, r.itemPath(id))
			return nil // Don't stop on individual errors
		})
	}
	_ = g.Wait()

	for i, id := range ids {
		if errs[i] != nil {
			result.Failed = append(result.Failed, DeleteError{ID: id, Err: errs[i]})
			continue
		}
		result.Successful = append(result.Successful, id)
	}

	r.logger.Debug().
		Int("requested", result.Requested).
		Int("successful", len(result.Successful)).
		Int("failed", len(result.Failed)).
		Msg("Batch delete finished")

	return result
}
