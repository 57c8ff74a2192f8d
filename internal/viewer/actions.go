package viewer

import (
	"fmt"

	"github.com/Faultbox/pcdview/internal/engine/input"
	"github.com/Faultbox/pcdview/internal/engine/loader"
)

// action is a viewer command bound to a key.
type action int

const (
	actionNone action = iota
	actionQuit
	actionReset
	actionPick
	actionScreenshot
	actionOpen
)

var keyActions = map[int]action{
	input.KeyEscape: actionQuit,
	input.KeyR:      actionReset,
	input.KeyP:      actionPick,
	input.KeyF12:    actionScreenshot,
	input.KeyO:      actionOpen,
}

// actionForKey returns the command bound to a key code.
func actionForKey(code int) action {
	return keyActions[code]
}

// loadingTitle formats the window title while a cloud streams in.
func loadingTitle(base string, p loader.Progress) string {
	if pct := p.Percent(); pct >= 0 {
		return fmt.Sprintf("%s - loading %.0f%%", base, pct)
	}
	return fmt.Sprintf("%s - loading %d bytes", base, p.Loaded)
}

// loadedTitle formats the window title for a loaded cloud.
func loadedTitle(base, name string, points int) string {
	return fmt.Sprintf("%s - %s (%d points)", base, name, points)
}
