package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/solterra/storefront/internal/domain/model"
)

// StorefrontFacade exposes the subset of application functionality required
// by the worker.
type StorefrontFacade interface {
	OrdersForSync(ctx context.Context, limit int) ([]model.Order, error)
	SyncOrder(ctx context.Context, order model.Order) error
	MarkOrderSynced(ctx context.Context, id string) error
}

// SyncWorker periodically picks up paid orders and fans them out to the
// downstream systems concurrently.
type SyncWorker struct {
	facade       StorefrontFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSyncWorker constructs the sync worker pool.
func NewSyncWorker(facade StorefrontFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *SyncWorker {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &SyncWorker{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (w *SyncWorker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.worker(runCtx)
	}

	w.wg.Add(1)
	go w.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (w *SyncWorker) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *SyncWorker) dispatch(ctx context.Context) {
	defer w.wg.Done()
	defer close(w.jobs)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.fetchAndDispatch(ctx)
		}
	}
}

func (w *SyncWorker) fetchAndDispatch(ctx context.Context) {
	orders, err := w.facade.OrdersForSync(ctx, w.batchSize)
	if err != nil {
		w.logger.Error("fetch orders for sync failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case w.jobs <- order:
		}
	}
}

func (w *SyncWorker) worker(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-w.jobs:
			if !ok {
				return
			}
			w.handleOrder(ctx, order)
		}
	}
}

func (w *SyncWorker) handleOrder(ctx context.Context, order model.Order) {
	if err := w.facade.SyncOrder(ctx, order); err != nil {
		w.logger.Error("order fan-out failed",
			slog.String("order", order.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := w.facade.MarkOrderSynced(ctx, order.ID); err != nil {
		w.logger.Error("mark order synced failed",
			slog.String("order", order.ID),
			slog.String("error", err.Error()),
		)
	}
}
