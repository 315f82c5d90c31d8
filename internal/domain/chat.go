package domain

import "time"

// Sender identifies who wrote a transcript line
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Fixed widget texts
const (
	GreetingText   = "Selamat datang di toko oleh-oleh khas Yogyakarta! Ada yang bisa saya bantu?"
	TypingText     = "Mengetik..."
	FallbackText   = "Maaf, terjadi kesalahan saat menghubungi server. Silakan coba lagi."
	EmptyReplyText = "Maaf, saya tidak bisa menjawab."
)

// Message represents one line of the widget transcript
type Message struct {
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
	IsTyping  bool   `json:"isTyping"`
	IsError   bool   `json:"isError"`
}

// NewUserMessage builds a user line stamped at t
func NewUserMessage(text string, t time.Time) Message {
	return Message{Sender: SenderUser, Text: text, Timestamp: t.UnixMilli()}
}

// NewAssistantMessage builds an assistant line stamped at t
func NewAssistantMessage(text string, t time.Time, isError bool) Message {
	return Message{Sender: SenderAssistant, Text: text, Timestamp: t.UnixMilli(), IsError: isError}
}

// NewPlaceholder builds the transient "typing" assistant line
func NewPlaceholder(t time.Time) Message {
	return Message{Sender: SenderAssistant, Text: TypingText, Timestamp: t.UnixMilli(), IsTyping: true}
}

// IsPlaceholder reports whether the message stands in for a pending reply
func (m Message) IsPlaceholder() bool {
	return m.IsTyping || m.Text == TypingText
}

// AskRequest is the body posted to the assistant service
type AskRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId"`
}

// AskResponse is the assistant service's reply
type AskResponse struct {
	Response string `json:"response"`
	IsError  bool   `json:"isError,omitempty"`
}
