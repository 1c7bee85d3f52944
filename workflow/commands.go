package workflow

import (
	"context"
	"fmt"
	"strings"
)

func (e *Engine) friday(ctx context.Context, msg Message) error {
	text := fridayText(e.now().In(e.loc))
	res, err := e.gen.Generate(ctx, text)
	if err != nil {
		e.log.WithError(err).Warn("friday rephrase failed, sending original text")
		return e.out.SendText(ctx, msg.ChatID, text)
	}
	if err := e.out.SendText(ctx, msg.ChatID, res.Text); err != nil {
		e.log.WithError(err).Warn("sending rephrased friday text failed, sending original text")
		return e.out.SendText(ctx, msg.ChatID, text)
	}
	return nil
}

func (e *Engine) model(ctx context.Context, msg Message) error {
	if msg.ReplyTo == nil {
		return e.out.SendText(ctx, msg.ChatID, textModelNotReply)
	}
	if msg.ReplyTo.Text == "" {
		return e.out.SendText(ctx, msg.ChatID, textModelNoText)
	}
	provider, ok := e.gen.MessageInfo(msg.ReplyTo.Text)
	if !ok {
		return e.out.SendText(ctx, msg.ChatID, textModelUnknown)
	}
	return e.out.SendText(ctx, msg.ChatID, fmt.Sprintf(textModelFound, provider))
}

func (e *Engine) get(ctx context.Context, msg Message, name string) error {
	if name == "" {
		names := e.catalog.List()
		if len(names) == 0 {
			return e.out.SendText(ctx, msg.ChatID, textListEmpty)
		}
		options := make([]string, len(names))
		for i, n := range names {
			options[i] = string(CmdGet) + " " + n
		}
		return e.out.SendSuggestions(ctx, msg.ChatID, textChooseOption, options)
	}

	ref, ok := e.catalog.Get(name)
	if !ok {
		return e.out.SendText(ctx, msg.ChatID, textStickerUnknown)
	}
	return e.out.SendSticker(ctx, msg.ChatID, ref)
}

func (e *Engine) list(ctx context.Context, msg Message) error {
	names := e.catalog.List()
	if len(names) == 0 {
		return e.out.SendText(ctx, msg.ChatID, textListEmpty)
	}
	return e.out.SendText(ctx, msg.ChatID, textListHeader+"\n"+strings.Join(names, "\n"))
}
