package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/slaybot/dialogue"
	goerrors "github.com/kbukum/slaybot/errors"
	"github.com/kbukum/slaybot/logger"
)

func (e *Engine) startAdd(ctx context.Context, msg Message, name string) error {
	if name == "" {
		return e.prompt(ctx, msg, textAddAskName, dialogue.AwaitingStickerNameForAdd{})
	}
	if e.catalog.Exists(name) {
		return e.out.SendText(ctx, msg.ChatID, fmt.Sprintf(textAddNameTaken, name))
	}
	return e.prompt(ctx, msg, fmt.Sprintf(textAddAskSticker, name), dialogue.AwaitingStickerMediaForAdd{Name: name})
}

func (e *Engine) startRename(ctx context.Context, msg Message, name string) error {
	if name == "" {
		return e.prompt(ctx, msg, textRenameAskOld, dialogue.AwaitingStickerNameForRename{})
	}
	if !e.catalog.Exists(name) {
		return e.out.SendText(ctx, msg.ChatID, fmt.Sprintf(textRenameUnknown, name))
	}
	return e.prompt(ctx, msg, fmt.Sprintf(textRenameAskNew, name), dialogue.AwaitingNewNameForRename{OldName: name})
}

func (e *Engine) startDelete(ctx context.Context, msg Message, name string) error {
	if name == "" {
		return e.prompt(ctx, msg, textDeleteAskName, dialogue.AwaitingStickerNameForDelete{})
	}
	return e.remove(ctx, msg, name)
}

// prompt sends text and, once it is delivered, moves the conversation to next.
func (e *Engine) prompt(ctx context.Context, msg Message, text string, next dialogue.State) error {
	if err := e.out.SendText(ctx, msg.ChatID, text); err != nil {
		return err
	}
	e.store.Set(msg.Key(), next)
	return nil
}

// continueFlow feeds msg to the active flow. It reports whether the flow
// consumed the message.
func (e *Engine) continueFlow(ctx context.Context, msg Message, state dialogue.State) (bool, error) {
	switch s := state.(type) {
	case dialogue.AwaitingStickerNameForAdd:
		return true, e.receiveAddName(ctx, msg)
	case dialogue.AwaitingStickerMediaForAdd:
		return true, e.receiveSticker(ctx, msg, s.Name)
	case dialogue.AwaitingStickerNameForRename:
		return true, e.receiveRenameOld(ctx, msg)
	case dialogue.AwaitingNewNameForRename:
		return true, e.receiveRenameNew(ctx, msg, s.OldName)
	case dialogue.AwaitingStickerNameForDelete:
		return true, e.receiveDeleteName(ctx, msg)
	case dialogue.ShowingCommandMenu:
		return false, nil
	}
	return false, nil
}

func (e *Engine) receiveAddName(ctx context.Context, msg Message) error {
	name := strings.TrimSpace(msg.Text)
	if name == "" {
		return e.out.SendText(ctx, msg.ChatID, textNameRequired)
	}
	if e.catalog.Exists(name) {
		return e.out.SendText(ctx, msg.ChatID, fmt.Sprintf(textAddNameTaken, name))
	}
	return e.prompt(ctx, msg, fmt.Sprintf(textAddAskSticker, name), dialogue.AwaitingStickerMediaForAdd{Name: name})
}

func (e *Engine) receiveSticker(ctx context.Context, msg Message, name string) error {
	if msg.StickerFileID == "" {
		return e.out.SendText(ctx, msg.ChatID, textAddNotSticker)
	}

	err := e.catalog.Add(ctx, name, msg.StickerFileID)
	e.store.Remove(msg.Key())

	switch {
	case err == nil:
		e.log.Info("sticker added", logger.Fields(logger.FieldSticker, name, logger.FieldUserID, msg.UserID))
		return e.out.SendText(ctx, msg.ChatID, fmt.Sprintf(textAddSaved, name))
	case goerrors.HasCode(err, goerrors.ErrCodeAlreadyExists):
		return e.out.SendText(ctx, msg.ChatID, fmt.Sprintf(textAddRaceConflict, name))
	default:
		e.log.WithError(err).Error("sticker add failed", logger.Fields(logger.FieldSticker, name))
		return e.out.SendText(ctx, msg.ChatID, textAddFailed)
	}
}

func (e *Engine) receiveRenameOld(ctx context.Context, msg Message) error {
	name := strings.TrimSpace(msg.Text)
	if name == "" {
		return e.out.SendText(ctx, msg.ChatID, textNameRequired)
	}
	if !e.catalog.Exists(name) {
		return e.out.SendText(ctx, msg.ChatID, fmt.Sprintf(textRenameUnknown, name))
	}
	return e.prompt(ctx, msg, fmt.Sprintf(textRenameAskNew, name), dialogue.AwaitingNewNameForRename{OldName: name})
}

// receiveRenameNew ends the rename flow whatever the outcome.
func (e *Engine) receiveRenameNew(ctx context.Context, msg Message, oldName string) error {
	e.store.Remove(msg.Key())

	newName := strings.TrimSpace(msg.Text)
	if newName == "" {
		return e.out.SendText(ctx, msg.ChatID, textNameRequired)
	}

	err := e.catalog.Rename(ctx, oldName, newName)
	switch {
	case err == nil:
		e.log.Info("sticker renamed", logger.Fields(logger.FieldSticker, newName, "old_name", oldName))
		return e.out.SendText(ctx, msg.ChatID, fmt.Sprintf(textRenameSaved, newName))
	case goerrors.HasCode(err, goerrors.ErrCodeAlreadyExists):
		return e.out.SendText(ctx, msg.ChatID, fmt.Sprintf(textRenameNameTaken, newName))
	case goerrors.HasCode(err, goerrors.ErrCodeNotFound):
		return e.out.SendText(ctx, msg.ChatID, fmt.Sprintf(textRenameUnknown, oldName))
	default:
		e.log.WithError(err).Error("sticker rename failed", logger.Fields(logger.FieldSticker, oldName))
		return e.out.SendText(ctx, msg.ChatID, textRenameFailed)
	}
}

func (e *Engine) receiveDeleteName(ctx context.Context, msg Message) error {
	name := strings.TrimSpace(msg.Text)
	if name == "" {
		return e.out.SendText(ctx, msg.ChatID, textNameRequired)
	}
	return e.remove(ctx, msg, name)
}

// remove deletes name and leaves the conversation idle.
func (e *Engine) remove(ctx context.Context, msg Message, name string) error {
	err := e.catalog.Remove(ctx, name)
	e.store.Remove(msg.Key())

	switch {
	case err == nil:
		e.log.Info("sticker removed", logger.Fields(logger.FieldSticker, name, logger.FieldUserID, msg.UserID))
		return e.out.SendText(ctx, msg.ChatID, fmt.Sprintf(textDeleteDone, name))
	case goerrors.HasCode(err, goerrors.ErrCodeNotFound):
		return e.out.SendText(ctx, msg.ChatID, fmt.Sprintf(textDeleteUnknown, name))
	default:
		e.log.WithError(err).Error("sticker remove failed", logger.Fields(logger.FieldSticker, name))
		return e.out.SendText(ctx, msg.ChatID, textDeleteFailed)
	}
}
