// Package errors defines the bot's structured error type.
//
// Every failure that crosses a package boundary (catalog conflicts, storage
// write failures, provider pool exhaustion) is reported as an *AppError
// with a machine-readable code, so callers branch on HasCode instead of
// matching message strings.
package errors
