package facade

import (
	"context"
	"sync"

	"github.com/solterra/storefront/internal/domain/model"
	"github.com/solterra/storefront/internal/usecase"
)

// CheckoutFacadeStub provides controllable behaviour for checkout endpoints.
type CheckoutFacadeStub struct {
	CreateSessionFn func(context.Context, []model.OrderItem) (string, error)
}

// CreateCheckoutSession delegates to the provided function or returns a fixed URL.
func (s CheckoutFacadeStub) CreateCheckoutSession(ctx context.Context, items []model.OrderItem) (string, error) {
	if s.CreateSessionFn != nil {
		return s.CreateSessionFn(ctx, items)
	}
	return "https://checkout.stripe.example/session/test", nil
}

// PayPalFacadeStub provides controllable behaviour for the PayPal endpoint.
type PayPalFacadeStub struct {
	PlaceFn func(context.Context, usecase.OrderSpec, string) (*model.Order, error)
}

// PlacePayPalOrder delegates to the provided function or echoes a paid order.
func (s PayPalFacadeStub) PlacePayPalOrder(ctx context.Context, spec usecase.OrderSpec, paypalOrderID string) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, spec, paypalOrderID)
	}
	return &model.Order{
		ID:            spec.ID,
		Email:         spec.Email,
		Items:         spec.Items,
		TotalAmount:   spec.TotalAmount,
		Currency:      spec.Currency,
		PaymentMethod: spec.PaymentMethod,
		Status:        model.OrderStatusPaid,
	}, nil
}

// SyncFacadeStub simulates fan-out operations.
type SyncFacadeStub struct {
	SyncLedgerFn   func(context.Context, []model.Order, map[string]bool) model.SyncResult
	LedgerOrdersFn func(context.Context) ([]model.LedgerEntry, error)
	RunEmailFn     func(context.Context, []model.Order) model.SyncResult
	EmailStatsFn   func(context.Context) (map[model.EmailKind]int, error)
	SyncContactsFn func(context.Context, model.ContactType, []model.Contact) (model.SyncResult, error)
}

// SyncLedger delegates or reports a fully synced batch.
func (s SyncFacadeStub) SyncLedger(ctx context.Context, orders []model.Order, emailSent map[string]bool) model.SyncResult {
	if s.SyncLedgerFn != nil {
		return s.SyncLedgerFn(ctx, orders, emailSent)
	}
	return model.SyncResult{Synced: len(orders), Total: len(orders)}
}

// LedgerOrders delegates or returns a single canned entry.
func (s SyncFacadeStub) LedgerOrders(ctx context.Context) ([]model.LedgerEntry, error) {
	if s.LedgerOrdersFn != nil {
		return s.LedgerOrdersFn(ctx)
	}
	return []model.LedgerEntry{{OrderID: "order-1", Currency: "USD"}}, nil
}

// RunEmailAutomation delegates or reports every order handled.
func (s SyncFacadeStub) RunEmailAutomation(ctx context.Context, orders []model.Order) model.SyncResult {
	if s.RunEmailFn != nil {
		return s.RunEmailFn(ctx, orders)
	}
	return model.SyncResult{Synced: len(orders), Total: len(orders)}
}

// EmailStats delegates or returns fixed counters.
func (s SyncFacadeStub) EmailStats(ctx context.Context) (map[model.EmailKind]int, error) {
	if s.EmailStatsFn != nil {
		return s.EmailStatsFn(ctx)
	}
	return map[model.EmailKind]int{model.EmailKindConfirmation: 1}, nil
}

// SyncContacts delegates or reports a fully synced batch.
func (s SyncFacadeStub) SyncContacts(ctx context.Context, contactType model.ContactType, contacts []model.Contact) (model.SyncResult, error) {
	if s.SyncContactsFn != nil {
		return s.SyncContactsFn(ctx, contactType, contacts)
	}
	return model.SyncResult{Synced: len(contacts), Total: len(contacts)}, nil
}

// StorefrontFacadeStub aggregates all handler-facing stubs for router tests.
type StorefrontFacadeStub struct {
	CheckoutFacadeStub
	PayPalFacadeStub
	SyncFacadeStub
}

// SyncOrderCall records one worker fan-out invocation.
type SyncOrderCall struct {
	OrderID string
}

// WorkerFacadeStub mimics worker interactions with the storefront facade.
type WorkerFacadeStub struct {
	Batches    [][]model.Order
	OrdersFn   func(context.Context, int) ([]model.Order, error)
	SyncFn     func(context.Context, model.Order) error
	MarkFn     func(context.Context, string) error
	mu         sync.Mutex
	batchIndex int
	Synced     []SyncOrderCall
	Marked     []string
}

// OrdersForSync returns the next configured batch or delegates.
func (s *WorkerFacadeStub) OrdersForSync(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batchIndex >= len(s.Batches) {
		return nil, nil
	}
	batch := s.Batches[s.batchIndex]
	s.batchIndex++
	return batch, nil
}

// SyncOrder records the call and delegates when configured.
func (s *WorkerFacadeStub) SyncOrder(ctx context.Context, order model.Order) error {
	s.mu.Lock()
	s.Synced = append(s.Synced, SyncOrderCall{OrderID: order.ID})
	s.mu.Unlock()
	if s.SyncFn != nil {
		return s.SyncFn(ctx, order)
	}
	return nil
}

// MarkOrderSynced records the call and delegates when configured.
func (s *WorkerFacadeStub) MarkOrderSynced(ctx context.Context, id string) error {
	s.mu.Lock()
	s.Marked = append(s.Marked, id)
	s.mu.Unlock()
	if s.MarkFn != nil {
		return s.MarkFn(ctx, id)
	}
	return nil
}

// SyncedCount returns how many orders went through SyncOrder.
func (s *WorkerFacadeStub) SyncedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Synced)
}

// MarkedCount returns how many orders were marked synced.
func (s *WorkerFacadeStub) MarkedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Marked)
}
