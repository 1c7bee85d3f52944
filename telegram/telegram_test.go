package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	goerrors "github.com/kbukum/slaybot/errors"
	"github.com/kbukum/slaybot/logger"
	"github.com/kbukum/slaybot/resilience"
	"github.com/kbukum/slaybot/workflow"
)

type fakeAPI struct {
	mu       sync.Mutex
	messages []*bot.SendMessageParams
	stickers []*bot.SendStickerParams
	answered []string
	err      error
}

func (f *fakeAPI) SendMessage(_ context.Context, p *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.messages = append(f.messages, p)
	return &models.Message{ID: 40 + len(f.messages)}, nil
}

func (f *fakeAPI) SendSticker(_ context.Context, p *bot.SendStickerParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.stickers = append(f.stickers, p)
	return &models.Message{ID: 1}, nil
}

func (f *fakeAPI) AnswerCallbackQuery(_ context.Context, p *bot.AnswerCallbackQueryParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answered = append(f.answered, p.CallbackQueryID)
	return true, f.err
}

var fastRate = resilience.RateLimiterConfig{Rate: 1000, Burst: 1000}

func TestMessenger_SendText(t *testing.T) {
	api := &fakeAPI{}
	m := NewMessenger(api, fastRate)
	if err := m.SendText(context.Background(), 7, "hi"); err != nil {
		t.Fatal(err)
	}
	if len(api.messages) != 1 || api.messages[0].ChatID != int64(7) || api.messages[0].Text != "hi" {
		t.Errorf("messages = %+v", api.messages)
	}
}

func TestMessenger_SendMenuLayout(t *testing.T) {
	api := &fakeAPI{}
	m := NewMessenger(api, fastRate)
	buttons := []string{"/help", "/friday", "/get", "/list", "/add", "/rename", "/delete", "/cancel", "/extra"}

	id, err := m.SendMenu(context.Background(), 7, "pick", buttons, 4)
	if err != nil {
		t.Fatal(err)
	}
	if id != 41 {
		t.Errorf("id = %d, want 41", id)
	}
	kb, ok := api.messages[0].ReplyMarkup.(*models.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("markup = %T", api.messages[0].ReplyMarkup)
	}
	if len(kb.InlineKeyboard) != 3 || len(kb.InlineKeyboard[0]) != 4 || len(kb.InlineKeyboard[2]) != 1 {
		t.Fatalf("layout = %+v", kb.InlineKeyboard)
	}
	if b := kb.InlineKeyboard[1][0]; b.Text != "/add" || b.CallbackData != "/add" {
		t.Errorf("button = %+v", b)
	}
}

func TestMessenger_SendSuggestions(t *testing.T) {
	api := &fakeAPI{}
	m := NewMessenger(api, fastRate)
	if err := m.SendSuggestions(context.Background(), 7, "choose", []string{"/get a", "/get b"}); err != nil {
		t.Fatal(err)
	}
	kb, ok := api.messages[0].ReplyMarkup.(*models.ReplyKeyboardMarkup)
	if !ok {
		t.Fatalf("markup = %T", api.messages[0].ReplyMarkup)
	}
	if len(kb.Keyboard) != 2 || kb.Keyboard[1][0].Text != "/get b" || !kb.OneTimeKeyboard {
		t.Errorf("keyboard = %+v", kb)
	}
}

func TestMessenger_SendSticker(t *testing.T) {
	api := &fakeAPI{}
	m := NewMessenger(api, fastRate)
	if err := m.SendSticker(context.Background(), 7, "file-1"); err != nil {
		t.Fatal(err)
	}
	f, ok := api.stickers[0].Sticker.(*models.InputFileString)
	if !ok || f.Data != "file-1" {
		t.Errorf("sticker = %+v", api.stickers[0].Sticker)
	}
}

func TestMessenger_ErrorsAreClassified(t *testing.T) {
	api := &fakeAPI{err: errors.New("bad gateway")}
	m := NewMessenger(api, fastRate)
	err := m.SendText(context.Background(), 7, "hi")
	if !goerrors.HasCode(err, goerrors.ErrCodeExternalService) {
		t.Errorf("expected EXTERNAL_SERVICE_ERROR, got %v", err)
	}
}

func TestMessenger_CanceledContext(t *testing.T) {
	api := &fakeAPI{}
	m := NewMessenger(api, resilience.RateLimiterConfig{Rate: 0.001, Burst: 1})
	ctx := context.Background()
	if err := m.SendText(ctx, 1, "first"); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(ctx)
	cancel()
	if err := m.SendText(ctx, 1, "second"); err == nil {
		t.Error("expected error once the bucket is empty and ctx is done")
	}
	if len(api.messages) != 1 {
		t.Errorf("sent %d messages", len(api.messages))
	}
}

func TestToMessage(t *testing.T) {
	m := &models.Message{
		ID:      10,
		Chat:    models.Chat{ID: -100},
		From:    &models.User{ID: 5},
		Text:    "/model",
		Sticker: nil,
		ReplyToMessage: &models.Message{
			ID:   9,
			Chat: models.Chat{ID: -100},
			From: &models.User{ID: 1},
			Text: "generated",
		},
	}
	got := toMessage(m, false)
	if !got.HasSender || got.UserID != 5 || got.ChatID != -100 || got.ID != 10 {
		t.Errorf("message = %+v", got)
	}
	if got.ReplyTo == nil || got.ReplyTo.Text != "generated" {
		t.Errorf("reply = %+v", got.ReplyTo)
	}

	post := toMessage(&models.Message{ID: 1, Chat: models.Chat{ID: -200}, Text: "/add"}, true)
	if post.HasSender {
		t.Error("channel post has a sender")
	}

	st := toMessage(&models.Message{ID: 2, Chat: models.Chat{ID: 1}, From: &models.User{ID: 1},
		Sticker: &models.Sticker{FileID: "abc"}}, false)
	if st.StickerFileID != "abc" {
		t.Errorf("sticker = %q", st.StickerFileID)
	}
}

func TestToCallback(t *testing.T) {
	q := &models.CallbackQuery{
		ID:   "q1",
		From: models.User{ID: 5},
		Data: "/help",
		Message: models.MaybeInaccessibleMessage{
			Message: &models.Message{ID: 77, Chat: models.Chat{ID: -100}},
		},
	}
	cb, ok := toCallback(q)
	if !ok || cb.ChatID != -100 || cb.MessageID != 77 || cb.UserID != 5 || cb.Data != "/help" {
		t.Errorf("callback = %+v, %v", cb, ok)
	}

	if _, ok := toCallback(&models.CallbackQuery{ID: "q2"}); ok {
		t.Error("callback without message accepted")
	}
}

type recordingHandler struct {
	mu        sync.Mutex
	messages  []workflow.Message
	callbacks []workflow.Callback
	err       error
}

func (h *recordingHandler) HandleMessage(_ context.Context, msg workflow.Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msg)
	return h.err
}

func (h *recordingHandler) HandleCallback(_ context.Context, cb workflow.Callback) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks = append(h.callbacks, cb)
	return h.err
}

func newTestComponent(t *testing.T) *Component {
	t.Helper()
	c, err := NewComponent(Config{Token: "123:abc"}, logger.Nop())
	if err != nil {
		t.Fatalf("NewComponent() error: %v", err)
	}
	return c
}

func TestComponent_Dispatch(t *testing.T) {
	c := newTestComponent(t)
	h := &recordingHandler{err: errors.New("ignored")}
	c.SetHandler(h)
	ctx := context.Background()

	c.dispatch(ctx, nil, &models.Update{Message: &models.Message{ID: 1, Chat: models.Chat{ID: 2}, From: &models.User{ID: 3}, Text: "/help"}})
	c.dispatch(ctx, nil, &models.Update{ChannelPost: &models.Message{ID: 4, Chat: models.Chat{ID: 5}, Text: "/add"}})
	c.dispatch(ctx, nil, &models.Update{CallbackQuery: &models.CallbackQuery{
		ID: "q", From: models.User{ID: 3}, Data: "/list",
		Message: models.MaybeInaccessibleMessage{Message: &models.Message{ID: 9, Chat: models.Chat{ID: 2}}},
	}})
	c.dispatch(ctx, nil, &models.Update{})

	if len(h.messages) != 2 || !h.messages[0].HasSender || h.messages[1].HasSender {
		t.Errorf("messages = %+v", h.messages)
	}
	if len(h.callbacks) != 1 || h.callbacks[0].MessageID != 9 {
		t.Errorf("callbacks = %+v", h.callbacks)
	}
}

func TestComponent_RequiresTokenAndHandler(t *testing.T) {
	if _, err := NewComponent(Config{}, nil); err == nil {
		t.Error("expected error without token")
	}
	c := newTestComponent(t)
	if err := c.Start(context.Background()); err == nil {
		t.Error("expected error without handler")
	}
	if h := c.Health(context.Background()); h.Status != "unhealthy" {
		t.Errorf("health = %+v", h)
	}
	if err := c.Stop(context.Background()); err != nil {
		t.Errorf("Stop() before Start error: %v", err)
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{Token: "t"}
	cfg.ApplyDefaults()
	if cfg.PollTimeout != defaultPollTimeout || cfg.Workers != defaultWorkers || cfg.SendRate.Rate != defaultSendRate {
		t.Errorf("defaults = %+v", cfg)
	}
}
