package telegram

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/kbukum/slaybot/component"
	"github.com/kbukum/slaybot/httpclient"
	"github.com/kbukum/slaybot/logger"
	"github.com/kbukum/slaybot/workflow"
)

// Handler consumes converted updates. *workflow.Engine implements it.
type Handler interface {
	HandleMessage(ctx context.Context, msg workflow.Message) error
	HandleCallback(ctx context.Context, cb workflow.Callback) error
}

// Component runs the long-polling loop.
type Component struct {
	cfg       Config
	log       *logger.Logger
	bot       *bot.Bot
	messenger *Messenger

	mu       sync.RWMutex
	handler  Handler
	username string
	cancel   context.CancelFunc
	done     chan struct{}
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates the bot client without contacting the API. Set a
// handler with SetHandler before Start.
func NewComponent(cfg Config, log *logger.Logger) (*Component, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	c := &Component{cfg: cfg, log: log.WithComponent("telegram")}

	hc, err := httpclient.New(httpclient.Config{
		Timeout:  cfg.PollTimeout + cfg.HandlerTimeout,
		ProxyURL: cfg.ProxyURL,
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: http client: %w", err)
	}

	opts := []bot.Option{
		bot.WithSkipGetMe(),
		bot.WithDefaultHandler(c.dispatch),
		bot.WithErrorsHandler(func(err error) {
			c.log.WithError(err).Warn("bot api error")
		}),
		bot.WithHTTPClient(cfg.PollTimeout, hc.HTTPClient()),
		bot.WithWorkers(cfg.Workers),
		bot.WithAllowedUpdates(bot.AllowedUpdates{"message", "channel_post", "callback_query"}),
	}
	if cfg.ServerURL != "" {
		opts = append(opts, bot.WithServerURL(cfg.ServerURL))
	}

	b, err := bot.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	c.bot = b
	c.messenger = NewMessenger(b, cfg.SendRate)
	return c, nil
}

// Messenger returns the rate-limited sender.
func (c *Component) Messenger() *Messenger { return c.messenger }

// SetHandler sets the update consumer.
func (c *Component) SetHandler(h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = h
}

// Name returns the component name.
func (c *Component) Name() string { return "telegram" }

// Start checks the token and starts polling in the background.
func (c *Component) Start(ctx context.Context) error {
	c.mu.RLock()
	ready := c.handler != nil
	c.mu.RUnlock()
	if !ready {
		return fmt.Errorf("telegram: no update handler set")
	}

	me, err := c.bot.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("telegram: getMe: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.mu.Lock()
	c.username = me.Username
	c.cancel, c.done = cancel, done
	c.mu.Unlock()

	go func() {
		defer close(done)
		c.bot.Start(runCtx)
	}()

	c.log.Info("polling started", logger.Fields("username", me.Username))
	return nil
}

// Stop ends polling and waits for in-flight updates.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Health reports whether polling is running.
func (c *Component) Health(context.Context) component.Health {
	c.mu.RLock()
	running := c.cancel != nil
	c.mu.RUnlock()
	if !running {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not polling"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns summary info for the startup display.
func (c *Component) Describe() component.Description {
	c.mu.RLock()
	defer c.mu.RUnlock()
	details := fmt.Sprintf("workers=%d poll=%s", c.cfg.Workers, c.cfg.PollTimeout)
	if c.username != "" {
		details = "@" + c.username + " " + details
	}
	return component.Description{Name: "Telegram Bot", Type: "bot", Details: details}
}

// dispatch routes one update. Failures are logged; they never stop polling.
func (c *Component) dispatch(ctx context.Context, _ *bot.Bot, update *models.Update) {
	c.mu.RLock()
	h := c.handler
	c.mu.RUnlock()
	if h == nil || update == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.HandlerTimeout)
	defer cancel()

	var err error
	switch {
	case update.Message != nil:
		err = h.HandleMessage(ctx, toMessage(update.Message, false))
	case update.ChannelPost != nil:
		err = h.HandleMessage(ctx, toMessage(update.ChannelPost, true))
	case update.CallbackQuery != nil:
		cb, ok := toCallback(update.CallbackQuery)
		if !ok {
			c.log.Debug("callback without message dropped")
			return
		}
		err = h.HandleCallback(ctx, cb)
	default:
		return
	}
	if err != nil {
		c.log.WithError(err).Error("update failed", logger.Fields("update_id", update.ID))
	}
}
