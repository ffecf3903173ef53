package consultation

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"legal-intake-bot/internal/domain"
)

// FallbackReply replaces the assistant reply whenever the remote call fails.
const FallbackReply = "I'm sorry, I encountered an error. Please try again later."

type Backend interface {
	Complete(ctx context.Context, req Request) (string, error)
}

type Request struct {
	Model    string
	Messages []domain.Message
}

type Service struct {
	backend Backend
	model   string
}

func NewService(backend Backend, model string) *Service {
	return &Service{
		backend: backend,
		model:   model,
	}
}

// RequestConsultation makes exactly one backend call for transcript and
// always returns an assistant message. Failures are logged through the
// context logger and turned into FallbackReply.
func (s *Service) RequestConsultation(ctx context.Context, transcript []domain.Message) domain.Message {
	reply, err := s.backend.Complete(ctx, Request{
		Model:    s.model,
		Messages: transcript,
	})
	if err != nil {
		ctxzap.Extract(ctx).Error("consultation request failed",
			zap.Error(err),
			zap.String("model", s.model),
			zap.Int("messages", len(transcript)),
		)
		return domain.Message{Role: domain.RoleAssistant, Content: FallbackReply}
	}

	ctxzap.Extract(ctx).Debug("consultation received", zap.Int("reply_length", len(reply)))

	return domain.Message{Role: domain.RoleAssistant, Content: reply}
}
