// Package builder wires configuration into a ready intake service.
package builder

import (
	"fmt"

	"go.uber.org/zap"

	"legal-intake-bot/internal/adapter/apihub"
	"legal-intake-bot/internal/adapter/memory"
	"legal-intake-bot/internal/adapter/openai"
	"legal-intake-bot/internal/config"
	"legal-intake-bot/internal/usecase/consultation"
	"legal-intake-bot/internal/usecase/intake"
)

func NewBackend(cfg config.Config) (consultation.Backend, error) {
	switch cfg.Consultation.Provider {
	case config.ProviderAPIHub:
		return apihub.NewClient(cfg.Consultation.URL), nil
	case config.ProviderOpenAI:
		if cfg.OpenAIBaseURL != "" {
			return openai.NewClientWithBaseURL(cfg.OpenAIKey, cfg.OpenAIBaseURL), nil
		}
		return openai.NewClient(cfg.OpenAIKey), nil
	default:
		return nil, fmt.Errorf("unknown consultation provider %q", cfg.Consultation.Provider)
	}
}

func NewIntakeService(cfg config.Config, logger *zap.Logger) (*intake.Service, error) {
	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}

	consultant := consultation.NewService(backend, cfg.Consultation.Model)
	controller := intake.NewController(intake.DefaultPrompts, cfg.Consultation.SystemPrompt, consultant)
	store := memory.NewStore(cfg.SessionTTL)

	logger.Info("intake service ready",
		zap.String("provider", cfg.Consultation.Provider),
		zap.String("model", cfg.Consultation.Model),
		zap.Duration("session_ttl", cfg.SessionTTL),
	)

	return intake.NewService(store, controller), nil
}
