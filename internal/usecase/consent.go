package usecase

import (
	"context"

	"github.com/solterra/storefront/internal/domain/model"
	"github.com/solterra/storefront/internal/domain/repository"
)

// ConsentUseCase gates CRM contact sync by stored marketing consent.
type ConsentUseCase struct {
	consents repository.ConsentRepository
}

// NewConsentUseCase constructs ConsentUseCase.
func NewConsentUseCase(consents repository.ConsentRepository) *ConsentUseCase {
	return &ConsentUseCase{consents: consents}
}

// HasExplicitConsent reports whether the contact may be synced. EU contacts
// need a stored grant; outside the EU only an explicit denial blocks sync.
func (u *ConsentUseCase) HasExplicitConsent(ctx context.Context, email, country string) (bool, error) {
	status, err := u.consents.Status(ctx, email)
	if err != nil {
		return false, err
	}
	return status.AllowsSync(country), nil
}

// Set records a consent decision for the contact.
func (u *ConsentUseCase) Set(ctx context.Context, email string, status model.ConsentStatus) error {
	return u.consents.Set(ctx, email, status)
}
