package usecase

import (
	"context"
	"fmt"
	"log/slog"

	domainErrors "github.com/solterra/storefront/internal/domain/errors"
	"github.com/solterra/storefront/internal/domain/model"
)

// LedgerClient pushes order rows to the external spreadsheet ledger.
type LedgerClient interface {
	UpsertOrder(ctx context.Context, entry model.LedgerEntry) error
	ListOrders(ctx context.Context) ([]model.LedgerEntry, error)
}

// ContactClient upserts contacts in the remote CRM.
type ContactClient interface {
	UpsertContact(ctx context.Context, contactType model.ContactType, contact model.Contact) error
}

// SyncUseCase is the downstream fan-out: ledger rows and CRM contacts. Each
// target is independent and failure-isolated; a bad record only bumps the
// failed counter of its own batch.
type SyncUseCase struct {
	ledger   LedgerClient
	contacts ContactClient
	consents *ConsentUseCase
	logger   *slog.Logger
}

// NewSyncUseCase constructs SyncUseCase.
func NewSyncUseCase(ledger LedgerClient, contacts ContactClient, consents *ConsentUseCase, logger *slog.Logger) *SyncUseCase {
	return &SyncUseCase{ledger: ledger, contacts: contacts, consents: consents, logger: logger}
}

// SyncLedger upserts one ledger row per order. emailSent carries the
// external "confirmation email already sent" state per order id.
func (u *SyncUseCase) SyncLedger(ctx context.Context, orders []model.Order, emailSent map[string]bool) model.SyncResult {
	return RunBatch(orders, func(order model.Order) error {
		entry := ledgerEntry(order, emailSent[order.ID])
		if err := u.ledger.UpsertOrder(ctx, entry); err != nil {
			u.logger.Error("ledger upsert failed",
				slog.String("order", order.ID),
				slog.String("error", err.Error()),
			)
			return err
		}
		return nil
	})
}

// LedgerOrders reads the current ledger contents.
func (u *SyncUseCase) LedgerOrders(ctx context.Context) ([]model.LedgerEntry, error) {
	return u.ledger.ListOrders(ctx)
}

// SyncContacts upserts a batch of contacts of one type, skipping contacts
// that fail the consent check. Skipped contacts count as failed.
func (u *SyncUseCase) SyncContacts(ctx context.Context, contactType model.ContactType, contacts []model.Contact) (model.SyncResult, error) {
	if !model.ValidContactType(contactType) {
		return model.SyncResult{}, domainErrors.ErrUnknownContactType
	}

	result := RunBatch(contacts, func(contact model.Contact) error {
		allowed, err := u.consents.HasExplicitConsent(ctx, contact.Email, contact.Country)
		if err != nil {
			return err
		}
		if !allowed {
			return domainErrors.ErrConsentRequired
		}
		if err := u.contacts.UpsertContact(ctx, contactType, contact); err != nil {
			u.logger.Error("contact upsert failed",
				slog.String("type", string(contactType)),
				slog.String("error", err.Error()),
			)
			return err
		}
		return nil
	})

	return result, nil
}

func ledgerEntry(order model.Order, emailSent bool) model.LedgerEntry {
	paidAt := ""
	if order.PaidAt != nil {
		paidAt = order.PaidAt.UTC().Format("2006-01-02 15:04:05")
	}
	return model.LedgerEntry{
		OrderID:     order.ID,
		Email:       order.Email,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		Status:      fmt.Sprintf("%s/%s", order.PaymentMethod, order.Status),
		EmailSent:   emailSent,
		PaidAt:      paidAt,
	}
}
