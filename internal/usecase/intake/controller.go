package intake

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"legal-intake-bot/internal/domain"
)

type Consultant interface {
	RequestConsultation(ctx context.Context, transcript []domain.Message) domain.Message
}

// Controller walks a conversation through the prompt table and hands the
// finished transcript to the consultant.
type Controller struct {
	prompts      []Prompt
	systemPrompt string
	consultant   Consultant
}

func NewController(prompts []Prompt, systemPrompt string, consultant Consultant) *Controller {
	if len(prompts) == 0 {
		prompts = DefaultPrompts
	}
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &Controller{
		prompts:      append([]Prompt(nil), prompts...),
		systemPrompt: systemPrompt,
		consultant:   consultant,
	}
}

func (c *Controller) NewConversation(id string) domain.Conversation {
	return domain.Conversation{
		ID:      id,
		Answers: make([]string, len(c.prompts)),
		Phase:   domain.PhaseAsking,
	}
}

// CurrentPrompt returns the question awaiting an answer, or false once the
// intake no longer expects input.
func (c *Controller) CurrentPrompt(conv domain.Conversation) (string, bool) {
	if conv.Phase != domain.PhaseAsking {
		return "", false
	}
	if conv.PromptIndex < 0 || conv.PromptIndex >= len(c.prompts) {
		return "", false
	}
	return c.prompts[conv.PromptIndex].Text, true
}

// SubmitAnswer records text as the answer to the current prompt. Blank text
// and submissions outside the asking phase are ignored and report false.
// The last answer triggers the consultation; conv is Done when it returns.
func (c *Controller) SubmitAnswer(ctx context.Context, conv *domain.Conversation, text string) bool {
	if !c.RecordAnswer(ctx, conv, text) {
		return false
	}
	if conv.Phase == domain.PhaseAwaitingReply {
		c.Complete(conv, c.Consult(ctx, *conv))
	}
	return true
}

// RecordAnswer is the first half of SubmitAnswer: it stores the answer and
// advances the prompt, leaving conv in AwaitingReply after the last one.
func (c *Controller) RecordAnswer(ctx context.Context, conv *domain.Conversation, text string) bool {
	prompt, ok := c.CurrentPrompt(*conv)
	if !ok || strings.TrimSpace(text) == "" {
		return false
	}

	if len(conv.Answers) < len(c.prompts) {
		answers := make([]string, len(c.prompts))
		copy(answers, conv.Answers)
		conv.Answers = answers
	}
	conv.Answers[conv.PromptIndex] = text
	conv.Transcript = append(conv.Transcript, domain.Message{
		Role:    domain.RoleUser,
		Content: prompt + " " + text,
	})

	if conv.PromptIndex < len(c.prompts)-1 {
		conv.PromptIndex++
		return true
	}

	conv.Phase = domain.PhaseAwaitingReply
	ctxzap.Extract(ctx).Info("intake complete, requesting consultation",
		zap.Int("transcript_length", len(conv.Transcript)),
	)
	return true
}

// Consult sends the system instruction and the transcript to the consultant.
// It does not touch conv.
func (c *Controller) Consult(ctx context.Context, conv domain.Conversation) domain.Message {
	request := make([]domain.Message, 0, len(conv.Transcript)+1)
	request = append(request, domain.Message{Role: domain.RoleSystem, Content: c.systemPrompt})
	request = append(request, conv.Transcript...)

	return c.consultant.RequestConsultation(ctx, request)
}

// Complete appends the reply to a conversation awaiting it. It reports false
// if conv is not awaiting a reply.
func (c *Controller) Complete(conv *domain.Conversation, reply domain.Message) bool {
	if conv.Phase != domain.PhaseAwaitingReply {
		return false
	}
	conv.Transcript = append(conv.Transcript, reply)
	conv.Phase = domain.PhaseDone
	return true
}
