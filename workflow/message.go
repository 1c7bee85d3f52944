package workflow

import (
	"context"

	"github.com/kbukum/slaybot/dialogue"
)

// Message is an incoming chat message.
type Message struct {
	ID     int
	ChatID int64
	UserID int64
	// HasSender is false for channel posts.
	HasSender     bool
	Text          string
	StickerFileID string
	ReplyTo       *Message
}

// Key returns the conversation key of the message. It is only meaningful
// when HasSender is true.
func (m Message) Key() dialogue.Key {
	return dialogue.Key{UserID: m.UserID, ChatID: m.ChatID}
}

func (m Message) origin() dialogue.Origin {
	return dialogue.Origin{MessageID: m.ID, ChatID: m.ChatID, UserID: m.UserID, Text: m.Text}
}

func fromOrigin(o dialogue.Origin) Message {
	return Message{ID: o.MessageID, ChatID: o.ChatID, UserID: o.UserID, HasSender: true, Text: o.Text}
}

// Callback is a press on an inline keyboard button.
type Callback struct {
	ID     string
	UserID int64
	ChatID int64
	// MessageID is the message carrying the keyboard.
	MessageID int
	Data      string
}

// Messenger sends replies to the chat transport.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendSticker(ctx context.Context, chatID int64, fileID string) error
	// SendMenu sends text with an inline keyboard laid out in columns. Each
	// button's callback data equals its label. It returns the message id.
	SendMenu(ctx context.Context, chatID int64, text string, buttons []string, columns int) (int, error)
	// SendSuggestions sends text with a one-time reply keyboard.
	SendSuggestions(ctx context.Context, chatID int64, text string, options []string) error
	AnswerCallback(ctx context.Context, callbackID string) error
}
