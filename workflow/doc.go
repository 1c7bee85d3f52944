// Package workflow turns chat updates into command handling and
// conversation state transitions.
//
// The Engine owns no transport. It reads and writes through a Messenger,
// keeps per-conversation state in a dialogue.Store and serialises updates
// for the same (user, chat) pair with the store's key lock.
package workflow
