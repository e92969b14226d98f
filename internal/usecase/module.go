package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/solterra/storefront/internal/config"
	"github.com/solterra/storefront/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewOrderUseCase,
	NewConsentUseCase,
	NewSyncUseCase,
	newEmailAutomation,
)

type emailAutomationParams struct {
	fx.In

	Queue  EmailPublisher
	Log    repository.EmailLogRepository
	Config *config.Config
	Logger *slog.Logger
}

func newEmailAutomation(p emailAutomationParams) *EmailAutomationUseCase {
	return NewEmailAutomationUseCase(p.Queue, p.Log, p.Config.FollowUpDelay, p.Logger)
}
