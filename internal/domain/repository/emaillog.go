package repository

import (
	"context"
	"time"

	"github.com/solterra/storefront/internal/domain/model"
)

// EmailLogRepository records which lifecycle emails were already sent per
// order. This is the side map the order itself never carries.
type EmailLogRepository interface {
	Record(ctx context.Context, orderID string, kind model.EmailKind, sentAt time.Time) error
	SentKinds(ctx context.Context, orderID string) (map[model.EmailKind]bool, error)
	Stats(ctx context.Context) (map[model.EmailKind]int, error)
}
