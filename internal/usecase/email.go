package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/solterra/storefront/internal/domain/model"
	"github.com/solterra/storefront/internal/domain/repository"
)

// EmailPublisher enqueues lifecycle email jobs for asynchronous delivery.
type EmailPublisher interface {
	Publish(ctx context.Context, job model.EmailJob) error
}

// EmailAutomationUseCase decides which lifecycle emails are due per paid
// order and enqueues them, recording each send in the email log.
type EmailAutomationUseCase struct {
	queue         EmailPublisher
	log           repository.EmailLogRepository
	followUpDelay time.Duration
	logger        *slog.Logger
	now           func() time.Time
}

// NewEmailAutomationUseCase constructs EmailAutomationUseCase.
func NewEmailAutomationUseCase(queue EmailPublisher, log repository.EmailLogRepository, followUpDelay time.Duration, logger *slog.Logger) *EmailAutomationUseCase {
	return &EmailAutomationUseCase{
		queue:         queue,
		log:           log,
		followUpDelay: followUpDelay,
		logger:        logger,
		now:           time.Now,
	}
}

// DueEmails returns the lifecycle emails due for an order given what was
// already sent. The confirmation is due as soon as the order is paid, the
// follow-up once the configured delay since PaidAt has elapsed.
func (u *EmailAutomationUseCase) DueEmails(order model.Order, sent map[model.EmailKind]bool) []model.EmailKind {
	if !order.Paid() || order.PaidAt == nil || order.Email == "" {
		return nil
	}

	var due []model.EmailKind
	if !sent[model.EmailKindConfirmation] {
		due = append(due, model.EmailKindConfirmation)
	}
	if !sent[model.EmailKindFollowUp] && u.now().Sub(*order.PaidAt) >= u.followUpDelay {
		due = append(due, model.EmailKindFollowUp)
	}
	return due
}

// Run walks the orders, enqueues every due email, and returns sent/failed
// counts. Counting is per email, and a failing order never aborts the rest.
func (u *EmailAutomationUseCase) Run(ctx context.Context, orders []model.Order) model.SyncResult {
	var result model.SyncResult
	for _, order := range orders {
		sent, err := u.log.SentKinds(ctx, order.ID)
		if err != nil {
			u.logger.Error("email log lookup failed",
				slog.String("order", order.ID),
				slog.String("error", err.Error()),
			)
			result.Failed++
			result.Total++
			continue
		}

		for _, kind := range u.DueEmails(order, sent) {
			result.Total++
			job := model.EmailJob{OrderID: order.ID, Email: order.Email, Kind: kind}
			if err := u.queue.Publish(ctx, job); err != nil {
				u.logger.Error("email enqueue failed",
					slog.String("order", order.ID),
					slog.String("kind", string(kind)),
					slog.String("error", err.Error()),
				)
				result.Failed++
				continue
			}
			if err := u.log.Record(ctx, order.ID, kind, u.now()); err != nil {
				u.logger.Error("email log record failed",
					slog.String("order", order.ID),
					slog.String("kind", string(kind)),
					slog.String("error", err.Error()),
				)
			}
			result.Synced++
		}
	}
	return result
}

// Stats returns total sent emails per kind from the email log.
func (u *EmailAutomationUseCase) Stats(ctx context.Context) (map[model.EmailKind]int, error) {
	return u.log.Stats(ctx)
}

// EmailSentMap reports per order whether the confirmation email went out,
// shaped for the ledger sync.
func (u *EmailAutomationUseCase) EmailSentMap(ctx context.Context, orders []model.Order) map[string]bool {
	sentMap := make(map[string]bool, len(orders))
	for _, order := range orders {
		sent, err := u.log.SentKinds(ctx, order.ID)
		if err != nil {
			continue
		}
		sentMap[order.ID] = sent[model.EmailKindConfirmation]
	}
	return sentMap
}
