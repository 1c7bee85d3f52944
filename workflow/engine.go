package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/slaybot/dialogue"
	"github.com/kbukum/slaybot/generation"
	"github.com/kbukum/slaybot/logger"
	"github.com/kbukum/slaybot/observability"
)

// Generator rephrases text and attributes past outputs.
type Generator interface {
	Generate(ctx context.Context, input string) (generation.Result, error)
	MessageInfo(text string) (provider string, ok bool)
}

// Catalog is the sticker registry the engine edits.
type Catalog interface {
	Get(name string) (string, bool)
	Exists(name string) bool
	List() []string
	Add(ctx context.Context, name, ref string) error
	Rename(ctx context.Context, oldName, newName string) error
	Remove(ctx context.Context, name string) error
}

// Engine dispatches chat updates.
type Engine struct {
	gen     Generator
	catalog Catalog
	store   *dialogue.Store
	out     Messenger

	prefix  string
	loc     *time.Location
	now     func() time.Time
	log     *logger.Logger
	metrics *observability.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(log *logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log.WithComponent("workflow")
		}
	}
}

// WithMetrics records dispatched commands.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock replaces the wall clock used by /friday.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine.
func NewEngine(gen Generator, catalog Catalog, store *dialogue.Store, out Messenger, cfg Config, opts ...Option) (*Engine, error) {
	cfg.ApplyDefaults()
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("workflow: timezone %q: %w", cfg.Timezone, err)
	}
	e := &Engine{
		gen:     gen,
		catalog: catalog,
		store:   store,
		out:     out,
		prefix:  cfg.TriggerPrefix,
		loc:     loc,
		now:     time.Now,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// HandleMessage processes one incoming message. Updates for the same
// conversation are handled one at a time. Only transport failures are
// returned; business outcomes become replies.
func (e *Engine) HandleMessage(ctx context.Context, msg Message) error {
	ctx, span := observability.StartSpan(ctx, "workflow.message",
		attribute.Int64(observability.AttrChatID, msg.ChatID),
		attribute.Int64(observability.AttrUserID, msg.UserID),
	)
	defer span.End()

	if msg.HasSender {
		unlock := e.store.Lock(msg.Key())
		defer unlock()
	}

	err := e.handleMessage(ctx, msg)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return err
}

func (e *Engine) handleMessage(ctx context.Context, msg Message) error {
	if cmd, arg, ok := ParseCommand(msg.Text); ok {
		return e.dispatch(ctx, msg, cmd, arg)
	}
	if strings.HasPrefix(strings.TrimSpace(msg.Text), "/") {
		return nil
	}

	if msg.HasSender {
		if state, ok := e.store.Get(msg.Key()); ok {
			consumed, err := e.continueFlow(ctx, msg, state)
			if consumed || err != nil {
				return err
			}
		}
	}

	if e.prefix != "" && strings.HasPrefix(msg.Text, e.prefix) {
		return e.rephrase(ctx, msg, strings.TrimSpace(strings.TrimPrefix(msg.Text, e.prefix)))
	}
	return nil
}

// HandleCallback processes a press on the /slay menu. Every callback is
// answered; presses by anyone but the menu owner are ignored.
func (e *Engine) HandleCallback(ctx context.Context, cb Callback) error {
	ctx, span := observability.StartSpan(ctx, "workflow.callback",
		attribute.Int64(observability.AttrChatID, cb.ChatID),
		attribute.Int64(observability.AttrUserID, cb.UserID),
	)
	defer span.End()

	if err := e.out.AnswerCallback(ctx, cb.ID); err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}

	key := dialogue.Key{UserID: cb.UserID, ChatID: cb.ChatID}
	unlock := e.store.Lock(key)
	defer unlock()

	state, ok := e.store.Get(key)
	menu, isMenu := state.(dialogue.ShowingCommandMenu)
	if !ok || !isMenu || menu.Owner != cb.UserID || menu.MenuMessageID != cb.MessageID {
		e.log.Debug("callback ignored", logger.Fields(
			logger.FieldChatID, cb.ChatID, logger.FieldUserID, cb.UserID))
		return nil
	}

	cmd, arg, ok := ParseCommand(cb.Data)
	if !ok {
		e.log.Warn("unknown menu command", logger.Fields(logger.FieldCommand, cb.Data))
		return nil
	}

	e.store.Remove(key)
	original := fromOrigin(menu.Original)
	var err error
	if cmd == CmdCancel {
		err = e.out.SendText(ctx, original.ChatID, textCancelled)
	} else {
		err = e.dispatch(ctx, original, cmd, arg)
	}
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return err
}

// dispatch runs cmd for msg. The caller holds the conversation lock.
func (e *Engine) dispatch(ctx context.Context, msg Message, cmd Command, arg string) error {
	observability.SetSpanAttributes(ctx, attribute.String(observability.AttrCommand, string(cmd)))
	e.metrics.RecordCommand(ctx, string(cmd))
	e.log.Debug("command received", logger.Fields(
		logger.FieldCommand, string(cmd),
		logger.FieldChatID, msg.ChatID,
		logger.FieldUserID, msg.UserID,
	))

	k := kindOf(cmd)
	if k != kindStateless {
		if !msg.HasSender {
			return e.out.SendText(ctx, msg.ChatID, textChannelsUnsupported)
		}
		if k == kindControl {
			return e.cancel(ctx, msg)
		}
		if state, ok := e.store.Get(msg.Key()); ok {
			e.log.Debug("trigger refused during flow", logger.Fields(
				logger.FieldCommand, string(cmd), logger.FieldState, state.Kind()))
			return e.out.SendText(ctx, msg.ChatID, textBusy)
		}
	}

	switch cmd {
	case CmdHelp:
		return e.out.SendText(ctx, msg.ChatID, helpText())
	case CmdFriday:
		return e.friday(ctx, msg)
	case CmdModel:
		return e.model(ctx, msg)
	case CmdGet:
		return e.get(ctx, msg, arg)
	case CmdList:
		return e.list(ctx, msg)
	case CmdAdd:
		return e.startAdd(ctx, msg, arg)
	case CmdRename:
		return e.startRename(ctx, msg, arg)
	case CmdDelete:
		return e.startDelete(ctx, msg, arg)
	case CmdSlay:
		return e.slay(ctx, msg)
	}
	return nil
}

func (e *Engine) cancel(ctx context.Context, msg Message) error {
	if _, had := e.store.Remove(msg.Key()); !had {
		return nil
	}
	return e.out.SendText(ctx, msg.ChatID, textCancelled)
}

func (e *Engine) slay(ctx context.Context, msg Message) error {
	id, err := e.out.SendMenu(ctx, msg.ChatID, textChooseCommand, menuCommands(), MenuColumns)
	if err != nil {
		return err
	}
	e.store.Set(msg.Key(), dialogue.ShowingCommandMenu{
		Owner:         msg.UserID,
		Original:      msg.origin(),
		MenuMessageID: id,
	})
	return nil
}

func (e *Engine) rephrase(ctx context.Context, msg Message, input string) error {
	if input == "" {
		return nil
	}
	res, err := e.gen.Generate(ctx, input)
	if err != nil {
		e.log.WithError(err).Error("rephrase failed", logger.Fields(logger.FieldChatID, msg.ChatID))
		return e.out.SendText(ctx, msg.ChatID, textGenerationFailed)
	}
	return e.out.SendText(ctx, msg.ChatID, res.Text)
}
