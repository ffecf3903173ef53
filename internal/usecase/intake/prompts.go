package intake

// Prompt is one fixed question of the intake. Key names the answer slot.
type Prompt struct {
	Key  string
	Text string
}

// DefaultPrompts are asked in order, one answer each.
var DefaultPrompts = []Prompt{
	{Key: "housing", Text: "What is the housing of your legal case?"},
	{Key: "parties", Text: "Who are the parties involved in the case?"},
	{Key: "goal", Text: "What is the goal or desired outcome of your case?"},
}

const DefaultSystemPrompt = "You are a helpful legal assistant. Please provide a brief consultation based on the information given about a legal case."
