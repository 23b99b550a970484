// Package commands defines the metadata registered for each bot command.
package commands

import tele "gopkg.in/telebot.v4"

// Command couples a handler with what the registry needs to expose it: the
// command menu description, admin gating and visibility.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
}
