package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/solterra/storefront/internal/domain/errors"
	"github.com/solterra/storefront/internal/domain/model"
)

// OrderRepositoryStub is an in-memory order repository for use case tests.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	orders map[string]*model.Order

	CreateFn   func(context.Context, *model.Order) (*model.Order, error)
	MarkPaidFn func(context.Context, string, time.Time) (*model.Order, error)
}

// NewOrderRepositoryStub constructs an empty in-memory repository.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{orders: make(map[string]*model.Order)}
}

// Create stores the order, rejecting duplicate ids.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[order.ID]; ok {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *order
	s.orders[order.ID] = &stored
	return &stored, nil
}

// GetByID returns a stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

// MarkPaid transitions a stored order to PAID.
func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, id string, paidAt time.Time) (*model.Order, error) {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, id, paidAt)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order.Status = model.OrderStatusPaid
	order.PaidAt = &paidAt
	copied := *order
	return &copied, nil
}

// SelectBatchForSync returns paid orders without a sync timestamp.
func (s *OrderRepositoryStub) SelectBatchForSync(ctx context.Context, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var batch []model.Order
	for _, order := range s.orders {
		if order.Status == model.OrderStatusPaid && order.SyncedAt == nil {
			batch = append(batch, *order)
			if len(batch) == limit {
				break
			}
		}
	}
	return batch, nil
}

// MarkSynced stamps the order with a sync timestamp.
func (s *OrderRepositoryStub) MarkSynced(ctx context.Context, id string, syncedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.SyncedAt = &syncedAt
	return nil
}

// ConsentRepositoryStub is an in-memory consent store.
type ConsentRepositoryStub struct {
	mu       sync.Mutex
	statuses map[string]model.ConsentStatus

	StatusFn func(context.Context, string) (model.ConsentStatus, error)
}

// NewConsentRepositoryStub constructs an empty consent store.
func NewConsentRepositoryStub() *ConsentRepositoryStub {
	return &ConsentRepositoryStub{statuses: make(map[string]model.ConsentStatus)}
}

// Status returns the stored status, defaulting to not_set.
func (s *ConsentRepositoryStub) Status(ctx context.Context, email string) (model.ConsentStatus, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, email)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.statuses[email]; ok {
		return status, nil
	}
	return model.ConsentNotSet, nil
}

// Set stores a consent decision.
func (s *ConsentRepositoryStub) Set(ctx context.Context, email string, status model.ConsentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[email] = status
	return nil
}

// EmailLogStub is an in-memory email log.
type EmailLogStub struct {
	mu   sync.Mutex
	sent map[string]map[model.EmailKind]bool

	RecordFn func(context.Context, string, model.EmailKind, time.Time) error
}

// NewEmailLogStub constructs an empty email log.
func NewEmailLogStub() *EmailLogStub {
	return &EmailLogStub{sent: make(map[string]map[model.EmailKind]bool)}
}

// Record marks one email kind as sent for the order.
func (s *EmailLogStub) Record(ctx context.Context, orderID string, kind model.EmailKind, sentAt time.Time) error {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, orderID, kind, sentAt)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sent[orderID] == nil {
		s.sent[orderID] = make(map[model.EmailKind]bool)
	}
	s.sent[orderID][kind] = true
	return nil
}

// SentKinds reports which kinds went out for the order.
func (s *EmailLogStub) SentKinds(ctx context.Context, orderID string) (map[model.EmailKind]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make(map[model.EmailKind]bool, len(s.sent[orderID]))
	for kind, ok := range s.sent[orderID] {
		result[kind] = ok
	}
	return result, nil
}

// Stats aggregates sent emails per kind.
func (s *EmailLogStub) Stats(ctx context.Context) (map[model.EmailKind]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := make(map[model.EmailKind]int)
	for _, kinds := range s.sent {
		for kind, ok := range kinds {
			if ok {
				stats[kind]++
			}
		}
	}
	return stats, nil
}

// PublisherStub captures enqueued email jobs.
type PublisherStub struct {
	mu        sync.Mutex
	Jobs      []model.EmailJob
	PublishFn func(context.Context, model.EmailJob) error
}

// Publish records the job and delegates when configured.
func (s *PublisherStub) Publish(ctx context.Context, job model.EmailJob) error {
	if s.PublishFn != nil {
		if err := s.PublishFn(ctx, job); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Jobs = append(s.Jobs, job)
	return nil
}
