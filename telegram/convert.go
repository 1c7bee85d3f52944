package telegram

import (
	"github.com/go-telegram/bot/models"

	"github.com/kbukum/slaybot/workflow"
)

// toMessage converts a Bot API message. Channel posts carry no sender.
func toMessage(m *models.Message, channelPost bool) workflow.Message {
	out := shallowMessage(m, channelPost)
	if m.ReplyToMessage != nil {
		reply := shallowMessage(m.ReplyToMessage, false)
		out.ReplyTo = &reply
	}
	return out
}

func shallowMessage(m *models.Message, channelPost bool) workflow.Message {
	out := workflow.Message{
		ID:     m.ID,
		ChatID: m.Chat.ID,
		Text:   m.Text,
	}
	if m.From != nil && !channelPost {
		out.UserID = m.From.ID
		out.HasSender = true
	}
	if m.Sticker != nil {
		out.StickerFileID = m.Sticker.FileID
	}
	return out
}

// toCallback converts a callback query. Queries whose message is unknown
// cannot be attributed to a chat and are dropped.
func toCallback(q *models.CallbackQuery) (workflow.Callback, bool) {
	cb := workflow.Callback{ID: q.ID, UserID: q.From.ID, Data: q.Data}
	switch {
	case q.Message.Message != nil:
		cb.ChatID = q.Message.Message.Chat.ID
		cb.MessageID = q.Message.Message.ID
	case q.Message.InaccessibleMessage != nil:
		cb.ChatID = q.Message.InaccessibleMessage.Chat.ID
		cb.MessageID = q.Message.InaccessibleMessage.MessageID
	default:
		return cb, false
	}
	return cb, true
}

// inlineKeyboard lays buttons out in rows of columns. Callback data equals
// the label.
func inlineKeyboard(buttons []string, columns int) *models.InlineKeyboardMarkup {
	columns = max(columns, 1)
	rows := make([][]models.InlineKeyboardButton, 0, (len(buttons)+columns-1)/columns)
	for start := 0; start < len(buttons); start += columns {
		end := min(start+columns, len(buttons))
		row := make([]models.InlineKeyboardButton, 0, end-start)
		for _, b := range buttons[start:end] {
			row = append(row, models.InlineKeyboardButton{Text: b, CallbackData: b})
		}
		rows = append(rows, row)
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// suggestionKeyboard is a one-time reply keyboard with one option per row.
func suggestionKeyboard(options []string) *models.ReplyKeyboardMarkup {
	rows := make([][]models.KeyboardButton, len(options))
	for i, o := range options {
		rows[i] = []models.KeyboardButton{{Text: o}}
	}
	return &models.ReplyKeyboardMarkup{
		Keyboard:        rows,
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
		Selective:       true,
	}
}
