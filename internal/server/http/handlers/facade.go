package handlers

import (
	"context"

	"github.com/solterra/storefront/internal/domain/model"
	"github.com/solterra/storefront/internal/usecase"
)

// CheckoutFacade creates Stripe checkout sessions.
type CheckoutFacade interface {
	CreateCheckoutSession(ctx context.Context, items []model.OrderItem) (string, error)
}

// PayPalFacade captures and records PayPal orders.
type PayPalFacade interface {
	PlacePayPalOrder(ctx context.Context, spec usecase.OrderSpec, paypalOrderID string) (*model.Order, error)
}

// SyncFacade exposes the downstream fan-out operations used by the operator
// endpoints.
type SyncFacade interface {
	SyncLedger(ctx context.Context, orders []model.Order, emailSent map[string]bool) model.SyncResult
	LedgerOrders(ctx context.Context) ([]model.LedgerEntry, error)
	RunEmailAutomation(ctx context.Context, orders []model.Order) model.SyncResult
	EmailStats(ctx context.Context) (map[model.EmailKind]int, error)
	SyncContacts(ctx context.Context, contactType model.ContactType, contacts []model.Contact) (model.SyncResult, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	CheckoutFacade
	PayPalFacade
	SyncFacade
}
