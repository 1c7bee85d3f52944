// Package component defines lifecycle-managed parts of the bot (storage,
// sticker catalog, telemetry, health server, Telegram poller) and a
// registry that starts them in order and stops them in reverse.
package component
