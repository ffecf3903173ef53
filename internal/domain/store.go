package domain

type ConversationStore interface {
	Get(chatID int64) (Conversation, bool)
	Set(chatID int64, conv Conversation)
	Delete(chatID int64)
}
