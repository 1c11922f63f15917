// Package tui holds the components shared by the studio and browse programs.
package tui

import (
	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
)

// ProgramSender is an interface for sending messages to the Bubbletea program.
// Background callbacks use it to post into Update; tests substitute a recorder.
type ProgramSender interface {
	Send(tea.Msg)
}

// Drawable components render to a screen rectangle
type Drawable interface {
	Draw(scr uv.Screen, area uv.Rectangle)
}

// Updateable components handle messages
type Updateable interface {
	Update(tea.Msg) tea.Cmd
}

var (
	_ Drawable   = (*Header)(nil)
	_ Drawable   = (*Footer)(nil)
	_ Drawable   = (*StatusBar)(nil)
	_ Drawable   = (*Toast)(nil)
	_ Drawable   = (*ActivityLog)(nil)
	_ Updateable = (*Toast)(nil)
	_ Updateable = (*ActivityLog)(nil)
	_ Updateable = (*FilePicker)(nil)
)
