package models

// Conversation turn senders
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ConversationTurn is one caller-held history entry replayed per request.
type ConversationTurn struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type AskRequest struct {
	Query    string             `json:"query"`
	Division string             `json:"division"`
	History  []ConversationTurn `json:"history,omitempty"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}
