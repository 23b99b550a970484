package state

import tele "gopkg.in/telebot.v4"

// State identifies a pending conversation step awaiting user input.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
)

// Manager tracks at most one pending state per user.
//
// Consume is the only read used on the message path: it returns the
// pending state and clears it in a single step, so two concurrent
// messages from the same user can never both observe the same state.
type Manager interface {
	Set(userID int64, st State)
	Get(userID int64) State
	Consume(userID int64) State
	InProgress(userID int64) bool
	Clear(userID int64)
}

// ArgHandler processes the user-supplied text that completes a pending state.
type ArgHandler func(c tele.Context, arg string) error
