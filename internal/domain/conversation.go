package domain

// Phase is where a conversation stands in the intake flow.
type Phase int

const (
	PhaseAsking Phase = iota
	PhaseAwaitingReply
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseAsking:
		return "asking"
	case PhaseAwaitingReply:
		return "awaiting_reply"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Conversation is the state of one intake session. It is a plain value:
// copies handed to callers never alias the stored transcript.
type Conversation struct {
	ID          string
	Transcript  []Message
	Answers     []string
	PromptIndex int
	Phase       Phase
}

func (c Conversation) Clone() Conversation {
	c.Transcript = append([]Message(nil), c.Transcript...)
	c.Answers = append([]string(nil), c.Answers...)
	return c
}

// LastMessage returns the newest transcript entry.
func (c Conversation) LastMessage() (Message, bool) {
	if len(c.Transcript) == 0 {
		return Message{}, false
	}
	return c.Transcript[len(c.Transcript)-1], true
}
