package dto

type CreateDirectChatRequest struct {
	ContactID string `json:"contact_id"`
}

type CreateDirectChatResponse struct {
	ChatID string `json:"chat_id"`
}

// ChatSummary annotates a chat with its most recent message. LastMessage and
// Time are empty strings, never null, when the chat has no messages.
type ChatSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsGroup     bool   `json:"is_group"`
	LastMessage string `json:"last_message"`
	Time        string `json:"time"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

type SendMessageResponse struct {
	ID   string `json:"id"`
	Time string `json:"time"`
}

type MessageView struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Time       string `json:"time"`
}
