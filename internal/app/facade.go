package app

import (
	"context"
	"fmt"

	"github.com/solterra/storefront/internal/adapter/paypal"
	"github.com/solterra/storefront/internal/domain/model"
	"github.com/solterra/storefront/internal/usecase"
)

// CheckoutProvider creates payment redirect sessions.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, items []model.OrderItem) (string, error)
}

// CaptureProvider finalizes approved PayPal orders.
type CaptureProvider interface {
	CaptureOrder(ctx context.Context, paypalOrderID string) (*paypal.CaptureResult, error)
}

// StorefrontFacade aggregates use cases behind the surface the HTTP handlers
// and the sync worker consume.
type StorefrontFacade struct {
	orders   *usecase.OrderUseCase
	sync     *usecase.SyncUseCase
	emails   *usecase.EmailAutomationUseCase
	checkout CheckoutProvider
	captures CaptureProvider
}

// NewStorefrontFacade constructs StorefrontFacade.
func NewStorefrontFacade(
	orders *usecase.OrderUseCase,
	sync *usecase.SyncUseCase,
	emails *usecase.EmailAutomationUseCase,
	checkout CheckoutProvider,
	captures CaptureProvider,
) *StorefrontFacade {
	return &StorefrontFacade{
		orders:   orders,
		sync:     sync,
		emails:   emails,
		checkout: checkout,
		captures: captures,
	}
}

// CreateCheckoutSession builds a Stripe checkout redirect for the cart.
func (f *StorefrontFacade) CreateCheckoutSession(ctx context.Context, items []model.OrderItem) (string, error) {
	return f.checkout.CreateCheckoutSession(ctx, items)
}

// PlacePayPalOrder captures the provider order when a capture id is present,
// then records the order and immediately marks it paid. A mark-paid failure
// leaves the order in CREATED; there is no rollback and recovery is manual.
func (f *StorefrontFacade) PlacePayPalOrder(ctx context.Context, spec usecase.OrderSpec, paypalOrderID string) (*model.Order, error) {
	if paypalOrderID != "" {
		if _, err := f.captures.CaptureOrder(ctx, paypalOrderID); err != nil {
			return nil, err
		}
	}

	order, err := f.orders.Create(ctx, spec)
	if err != nil {
		return nil, err
	}

	return f.orders.MarkPaid(ctx, order.ID)
}

// SyncLedger pushes orders to the spreadsheet ledger.
func (f *StorefrontFacade) SyncLedger(ctx context.Context, orders []model.Order, emailSent map[string]bool) model.SyncResult {
	return f.sync.SyncLedger(ctx, orders, emailSent)
}

// LedgerOrders reads the current ledger contents.
func (f *StorefrontFacade) LedgerOrders(ctx context.Context) ([]model.LedgerEntry, error) {
	return f.sync.LedgerOrders(ctx)
}

// RunEmailAutomation enqueues due lifecycle emails for the orders.
func (f *StorefrontFacade) RunEmailAutomation(ctx context.Context, orders []model.Order) model.SyncResult {
	return f.emails.Run(ctx, orders)
}

// EmailStats reports sent lifecycle emails per kind.
func (f *StorefrontFacade) EmailStats(ctx context.Context) (map[model.EmailKind]int, error) {
	return f.emails.Stats(ctx)
}

// SyncContacts pushes a typed contact batch to the CRM.
func (f *StorefrontFacade) SyncContacts(ctx context.Context, contactType model.ContactType, contacts []model.Contact) (model.SyncResult, error) {
	return f.sync.SyncContacts(ctx, contactType, contacts)
}

// OrdersForSync returns paid orders awaiting their first fan-out.
func (f *StorefrontFacade) OrdersForSync(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.SelectBatchForSync(ctx, limit)
}

// SyncOrder runs the fan-out for a single order: ledger row plus due
// lifecycle emails. The targets stay independent; only a ledger failure makes
// the order eligible for another attempt.
func (f *StorefrontFacade) SyncOrder(ctx context.Context, order model.Order) error {
	orders := []model.Order{order}

	f.emails.Run(ctx, orders)

	ledgerResult := f.sync.SyncLedger(ctx, orders, f.emails.EmailSentMap(ctx, orders))
	if ledgerResult.Failed > 0 {
		return fmt.Errorf("ledger sync failed for order %s", order.ID)
	}
	return nil
}

// MarkOrderSynced records a completed fan-out.
func (f *StorefrontFacade) MarkOrderSynced(ctx context.Context, id string) error {
	return f.orders.MarkSynced(ctx, id)
}
