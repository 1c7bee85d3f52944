// Package dialogue keeps the multi-step conversation state of every
// (user, chat) pair. A key without an entry is idle.
package dialogue
