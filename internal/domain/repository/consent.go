package repository

import (
	"context"

	"github.com/solterra/storefront/internal/domain/model"
)

// ConsentRepository stores marketing-consent state keyed by contact email.
// Status returns ConsentNotSet for unknown contacts.
type ConsentRepository interface {
	Status(ctx context.Context, email string) (model.ConsentStatus, error)
	Set(ctx context.Context, email string, status model.ConsentStatus) error
}
