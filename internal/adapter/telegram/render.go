package telegram

import (
	"strings"

	"legal-intake-bot/internal/domain"
)

const (
	greetingText  = "Hi! I will ask three short questions about your legal case and then prepare a brief consultation."
	finishedText  = "This consultation is finished. Send /start to begin a new one."
	pendingText   = "Your consultation is being prepared, please wait."
	cancelledText = "Consultation cancelled. Send /start to begin a new one."
	helpText      = "/start - begin a new consultation\n/transcript - show this conversation\n/cancel - forget this conversation"
)

type action int

const (
	actionSubmit action = iota
	actionStart
	actionPending
	actionFinished
	actionIgnore
)

// nextAction decides how the bot treats a plain text message given the
// chat's stored conversation. The first prompt has to be seen before
// anything counts as an answer.
func nextAction(conv domain.Conversation, exists bool, text string) action {
	if !exists {
		return actionStart
	}
	switch conv.Phase {
	case domain.PhaseAwaitingReply:
		return actionPending
	case domain.PhaseDone:
		return actionFinished
	}
	if strings.TrimSpace(text) == "" {
		return actionIgnore
	}
	return actionSubmit
}

// replyFor picks what the bot says after an accepted answer: the next
// prompt while asking, the consultation once it arrived.
func replyFor(conv domain.Conversation, prompt string, asking bool) string {
	if asking {
		return prompt
	}
	if last, ok := conv.LastMessage(); ok && last.Role == domain.RoleAssistant {
		return last.Content
	}
	return finishedText
}

func renderTranscript(msgs []domain.Message) string {
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch m.Role {
		case domain.RoleUser:
			b.WriteString("You: ")
		case domain.RoleAssistant:
			b.WriteString("Assistant: ")
		}
		b.WriteString(m.Content)
	}
	return b.String()
}

func splitText(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/chunkSize+1)
	for start := 0; start < len(runes); start += chunkSize {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
