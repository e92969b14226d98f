package usecase

import "github.com/solterra/storefront/internal/domain/model"

// RunBatch applies op to every item sequentially, isolating per-item failures.
// A failing item only increments the failed counter; it never aborts the rest
// of the batch.
func RunBatch[T any](items []T, op func(T) error) model.SyncResult {
	result := model.SyncResult{Total: len(items)}
	for _, item := range items {
		if err := op(item); err != nil {
			result.Failed++
			continue
		}
		result.Synced++
	}
	return result
}
