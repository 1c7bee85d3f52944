// Package telegram connects the workflow engine to the Telegram Bot API
// through github.com/go-telegram/bot. It long-polls for updates, converts
// them to workflow messages and callbacks, and implements
// workflow.Messenger with a rate-limited sender.
package telegram
