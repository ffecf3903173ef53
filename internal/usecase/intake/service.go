package intake

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"legal-intake-bot/internal/domain"
)

const lockStripes = 64

// Service keeps one conversation per chat and serialises submissions per
// chat, so a chat never has more than one consultation in flight.
type Service struct {
	store      domain.ConversationStore
	controller *Controller
	locks      [lockStripes]sync.Mutex
	newID      func() string
}

func NewService(store domain.ConversationStore, controller *Controller) *Service {
	return &Service{
		store:      store,
		controller: controller,
		newID:      uuid.NewString,
	}
}

// Start discards whatever the chat had and begins a fresh intake.
func (s *Service) Start(ctx context.Context, chatID int64) domain.Conversation {
	mu := s.lock(chatID)
	mu.Lock()
	defer mu.Unlock()

	conv := s.controller.NewConversation(s.newID())
	s.store.Set(chatID, conv)

	ctxzap.Extract(ctx).Info("intake started", zap.String("conversation_id", conv.ID))

	return conv.Clone()
}

// Handle submits text for the chat's current prompt. The returned bool
// reports whether the submission was accepted. The chat lock is released
// while the consultation runs; the stored conversation shows AwaitingReply
// meanwhile and refuses further answers.
func (s *Service) Handle(ctx context.Context, chatID int64, text string) (domain.Conversation, bool) {
	mu := s.lock(chatID)
	mu.Lock()

	conv, ok := s.store.Get(chatID)
	if !ok {
		conv = s.controller.NewConversation(s.newID())
	}

	logger := ctxzap.Extract(ctx).With(zap.String("conversation_id", conv.ID))
	ctx = ctxzap.ToContext(ctx, logger)

	accepted := s.controller.RecordAnswer(ctx, &conv, text)
	s.store.Set(chatID, conv)
	mu.Unlock()

	if !accepted {
		return conv.Clone(), false
	}

	logger.Debug("answer recorded",
		zap.Int("prompt_index", conv.PromptIndex),
		zap.Stringer("phase", conv.Phase),
	)

	if conv.Phase != domain.PhaseAwaitingReply {
		return conv.Clone(), true
	}

	reply := s.controller.Consult(ctx, conv)
	s.controller.Complete(&conv, reply)

	mu.Lock()
	defer mu.Unlock()

	stored, ok := s.store.Get(chatID)
	if !ok || stored.ID != conv.ID || stored.Phase != domain.PhaseAwaitingReply {
		logger.Info("conversation replaced while awaiting reply, dropping consultation")
		return conv.Clone(), true
	}
	s.controller.Complete(&stored, reply)
	s.store.Set(chatID, stored)

	return stored.Clone(), true
}

// Cancel forgets the chat's conversation.
func (s *Service) Cancel(ctx context.Context, chatID int64) {
	mu := s.lock(chatID)
	mu.Lock()
	defer mu.Unlock()

	s.store.Delete(chatID)
	ctxzap.Extract(ctx).Info("intake cancelled")
}

// Snapshot returns the chat's conversation, creating none.
func (s *Service) Snapshot(chatID int64) (domain.Conversation, bool) {
	return s.store.Get(chatID)
}

func (s *Service) CurrentPrompt(conv domain.Conversation) (string, bool) {
	return s.controller.CurrentPrompt(conv)
}

func (s *Service) lock(chatID int64) *sync.Mutex {
	idx := chatID % lockStripes
	if idx < 0 {
		idx = -idx
	}
	return &s.locks[idx]
}
