package intake

import (
	"context"
	"testing"

	"legal-intake-bot/internal/domain"
)

type stubConsultant struct {
	reply    string
	calls    int
	received []domain.Message
}

func (s *stubConsultant) RequestConsultation(ctx context.Context, transcript []domain.Message) domain.Message {
	s.calls++
	s.received = append([]domain.Message(nil), transcript...)
	return domain.Message{Role: domain.RoleAssistant, Content: s.reply}
}

func newTestController() (*Controller, *stubConsultant) {
	consultant := &stubConsultant{reply: "Consult a tenant rights attorney."}
	return NewController(DefaultPrompts, DefaultSystemPrompt, consultant), consultant
}

func TestSubmitAnswerAdvancesPrompt(t *testing.T) {
	c, consultant := newTestController()
	conv := c.NewConversation("c-1")

	for i, answer := range []string{"Rental apartment, eviction notice", "Landlord and tenant"} {
		if conv.PromptIndex != i {
			t.Fatalf("prompt index = %d, want %d", conv.PromptIndex, i)
		}
		if !c.SubmitAnswer(context.Background(), &conv, answer) {
			t.Fatalf("answer %d rejected", i)
		}
		if conv.PromptIndex != i+1 {
			t.Fatalf("prompt index = %d after answer %d, want %d", conv.PromptIndex, i, i+1)
		}
		if len(conv.Transcript) != i+1 {
			t.Fatalf("transcript length = %d, want %d", len(conv.Transcript), i+1)
		}
		want := domain.Message{Role: domain.RoleUser, Content: DefaultPrompts[i].Text + " " + answer}
		if got := conv.Transcript[i]; got != want {
			t.Fatalf("message %d = %+v, want %+v", i, got, want)
		}
		if conv.Answers[i] != answer {
			t.Fatalf("answer slot %d = %q, want %q", i, conv.Answers[i], answer)
		}
	}

	if consultant.calls != 0 {
		t.Fatalf("consultant called before the last answer")
	}
}

func TestSubmitAnswerIgnoresBlank(t *testing.T) {
	c, consultant := newTestController()
	conv := c.NewConversation("c-1")

	for _, idx := range []int{0, 1, 2} {
		for conv.PromptIndex < idx {
			c.SubmitAnswer(context.Background(), &conv, "answer")
		}
		for _, blank := range []string{"", " ", "\t\n  "} {
			before := len(conv.Transcript)
			if c.SubmitAnswer(context.Background(), &conv, blank) {
				t.Fatalf("blank %q accepted at index %d", blank, idx)
			}
			if conv.PromptIndex != idx || len(conv.Transcript) != before {
				t.Fatalf("blank %q changed state at index %d", blank, idx)
			}
		}
	}

	if consultant.calls != 0 {
		t.Fatalf("blank submissions must not reach the consultant")
	}
}

func TestFinalAnswerRequestsConsultation(t *testing.T) {
	c, consultant := newTestController()
	conv := c.NewConversation("c-1")

	c.SubmitAnswer(context.Background(), &conv, "Rental apartment, eviction notice")
	c.SubmitAnswer(context.Background(), &conv, "Landlord and tenant")
	if !c.SubmitAnswer(context.Background(), &conv, "Stop the eviction") {
		t.Fatal("final answer rejected")
	}

	if consultant.calls != 1 {
		t.Fatalf("consultant calls = %d, want 1", consultant.calls)
	}
	if len(conv.Transcript) != 4 {
		t.Fatalf("transcript length = %d, want 4", len(conv.Transcript))
	}
	last := conv.Transcript[3]
	if last != (domain.Message{Role: domain.RoleAssistant, Content: "Consult a tenant rights attorney."}) {
		t.Fatalf("unexpected reply %+v", last)
	}
	if conv.PromptIndex != 2 {
		t.Fatalf("prompt index = %d, want to stay at 2", conv.PromptIndex)
	}
	if conv.Phase != domain.PhaseDone {
		t.Fatalf("phase = %s, want done", conv.Phase)
	}

	if len(consultant.received) != 4 {
		t.Fatalf("consultant got %d messages, want 4", len(consultant.received))
	}
	system := consultant.received[0]
	if system.Role != domain.RoleSystem || system.Content != DefaultSystemPrompt {
		t.Fatalf("unexpected system message %+v", system)
	}
	for i, m := range consultant.received[1:] {
		if m != conv.Transcript[i] {
			t.Fatalf("request message %d = %+v, want %+v", i+1, m, conv.Transcript[i])
		}
	}
}

func TestSubmitAfterDoneIsIgnored(t *testing.T) {
	c, consultant := newTestController()
	conv := c.NewConversation("c-1")
	for _, a := range []string{"a", "b", "c"} {
		c.SubmitAnswer(context.Background(), &conv, a)
	}

	if c.SubmitAnswer(context.Background(), &conv, "again") {
		t.Fatal("submission after done accepted")
	}
	if len(conv.Transcript) != 4 || consultant.calls != 1 {
		t.Fatalf("state changed after done: %d messages, %d calls", len(conv.Transcript), consultant.calls)
	}
}

func TestCurrentPrompt(t *testing.T) {
	c, _ := newTestController()
	conv := c.NewConversation("c-1")

	for i := range DefaultPrompts {
		for j := 0; j < 3; j++ {
			got, ok := c.CurrentPrompt(conv)
			if !ok || got != DefaultPrompts[i].Text {
				t.Fatalf("current prompt = %q, %v; want %q", got, ok, DefaultPrompts[i].Text)
			}
		}
		if conv.PromptIndex != i || len(conv.Transcript) != i {
			t.Fatalf("CurrentPrompt mutated the conversation")
		}
		c.SubmitAnswer(context.Background(), &conv, "answer")
	}

	if got, ok := c.CurrentPrompt(conv); ok {
		t.Fatalf("expected no prompt after the intake, got %q", got)
	}
}

func TestSubmitAnswerKeepsTextAsTyped(t *testing.T) {
	c, _ := newTestController()
	conv := c.NewConversation("c-1")

	c.SubmitAnswer(context.Background(), &conv, " padded ")
	want := DefaultPrompts[0].Text + "  padded "
	if conv.Transcript[0].Content != want {
		t.Fatalf("content = %q, want %q", conv.Transcript[0].Content, want)
	}
}

func TestSubmitAnswerOnZeroConversation(t *testing.T) {
	c, _ := newTestController()
	var conv domain.Conversation

	if !c.SubmitAnswer(context.Background(), &conv, "answer") {
		t.Fatal("zero conversation should start at the first prompt")
	}
	if len(conv.Answers) != len(DefaultPrompts) || conv.Answers[0] != "answer" {
		t.Fatalf("unexpected answers %v", conv.Answers)
	}
}

func TestRecordAnswerLeavesFinalAnswerAwaitingReply(t *testing.T) {
	c, consultant := newTestController()
	conv := c.NewConversation("c-1")
	for _, a := range []string{"a", "b", "c"} {
		if !c.RecordAnswer(context.Background(), &conv, a) {
			t.Fatalf("answer %q rejected", a)
		}
	}

	if conv.Phase != domain.PhaseAwaitingReply || len(conv.Transcript) != 3 {
		t.Fatalf("phase = %s with %d messages, want awaiting_reply with 3", conv.Phase, len(conv.Transcript))
	}
	if consultant.calls != 0 {
		t.Fatal("RecordAnswer must not call the consultant")
	}
	if c.RecordAnswer(context.Background(), &conv, "d") {
		t.Fatal("answer accepted while awaiting reply")
	}

	reply := c.Consult(context.Background(), conv)
	if !c.Complete(&conv, reply) || conv.Phase != domain.PhaseDone || len(conv.Transcript) != 4 {
		t.Fatalf("Complete did not finish the conversation: %+v", conv)
	}
	if c.Complete(&conv, reply) {
		t.Fatal("Complete accepted a second reply")
	}
}
