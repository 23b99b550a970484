// Package keyboard builds telebot reply markups from compact button specs.
package keyboard

import tele "gopkg.in/telebot.v4"

// InlineBtn is a compact spec for one inline keyboard button.
type InlineBtn struct {
	Text   string
	Unique string
	Data   string
}

// RemoveKeyboard hides a previously sent reply keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// LocationRequest builds a one-time reply keyboard with a single button
// asking the user to share their location.
func LocationRequest(label string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	markup.Reply(markup.Row(markup.Location(label)))
	return markup
}

// InlineButtonsRows builds an inline keyboard from explicit rows.
func InlineButtonsRows(rows ...[]InlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	grid := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		grid[i] = make([]tele.InlineButton, len(row))
		for j, btn := range row {
			grid[i][j] = *markup.Data(btn.Text, btn.Unique, btn.Data).Inline()
		}
	}
	markup.InlineKeyboard = grid
	return markup
}

// InlineButtons places each button on its own row.
func InlineButtons(buttons []InlineBtn) *tele.ReplyMarkup {
	return InlineButtonsNPerRow(buttons, 1)
}

// InlineButtonsNPerRow chunks a flat button list into rows of up to n.
func InlineButtonsNPerRow(buttons []InlineBtn, n int) *tele.ReplyMarkup {
	if n < 1 {
		n = 1
	}
	var rows [][]InlineBtn
	for len(buttons) > n {
		rows = append(rows, buttons[:n])
		buttons = buttons[n:]
	}
	if len(buttons) > 0 {
		rows = append(rows, buttons)
	}
	return InlineButtonsRows(rows...)
}
