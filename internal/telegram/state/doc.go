// Package state tracks one-shot conversation states for Telegram bots.
// A pending state marks the next plain-text message from a user as the
// argument of an earlier prompt; consuming it is atomic, so retries and
// concurrent messages resolve to exactly one handler invocation.
package state
