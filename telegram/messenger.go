package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	goerrors "github.com/kbukum/slaybot/errors"
	"github.com/kbukum/slaybot/resilience"
	"github.com/kbukum/slaybot/workflow"
)

const service = "telegram"

// API is the subset of the Bot API the messenger calls. *bot.Bot
// implements it.
type API interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendSticker(ctx context.Context, params *bot.SendStickerParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// Messenger implements workflow.Messenger. Every call waits for the send
// rate limiter first.
type Messenger struct {
	api     API
	limiter *resilience.RateLimiter
}

var _ workflow.Messenger = (*Messenger)(nil)

// NewMessenger creates a messenger over api.
func NewMessenger(api API, rate resilience.RateLimiterConfig) *Messenger {
	return &Messenger{api: api, limiter: resilience.NewRateLimiter(rate)}
}

func (m *Messenger) send(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	msg, err := m.api.SendMessage(ctx, params)
	if err != nil {
		return nil, goerrors.ExternalServiceError(service, err)
	}
	return msg, nil
}

// SendText sends a plain text message.
func (m *Messenger) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := m.send(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	return err
}

// SendSticker sends a sticker by its file id.
func (m *Messenger) SendSticker(ctx context.Context, chatID int64, fileID string) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := m.api.SendSticker(ctx, &bot.SendStickerParams{
		ChatID:  chatID,
		Sticker: &models.InputFileString{Data: fileID},
	})
	if err != nil {
		return goerrors.ExternalServiceError(service, err)
	}
	return nil
}

// SendMenu sends text with an inline keyboard and returns the message id.
func (m *Messenger) SendMenu(ctx context.Context, chatID int64, text string, buttons []string, columns int) (int, error) {
	msg, err := m.send(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: inlineKeyboard(buttons, columns),
	})
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// SendSuggestions sends text with a one-time reply keyboard.
func (m *Messenger) SendSuggestions(ctx context.Context, chatID int64, text string, options []string) error {
	_, err := m.send(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: suggestionKeyboard(options),
	})
	return err
}

// AnswerCallback acknowledges a callback query.
func (m *Messenger) AnswerCallback(ctx context.Context, callbackID string) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := m.api.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: callbackID}); err != nil {
		return goerrors.ExternalServiceError(service, err)
	}
	return nil
}
