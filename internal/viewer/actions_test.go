package viewer

import (
	"testing"

	"github.com/Faultbox/pcdview/internal/engine/input"
	"github.com/Faultbox/pcdview/internal/engine/loader"
)

func TestActionForKey(t *testing.T) {
	tests := []struct {
		code int
		want action
	}{
		{input.KeyEscape, actionQuit},
		{input.KeyR, actionReset},
		{input.KeyP, actionPick},
		{input.KeyF12, actionScreenshot},
		{input.KeyO, actionOpen},
		{input.KeyA, actionNone}, // held by the trackball
		{0, actionNone},
	}
	for _, tt := range tests {
		if got := actionForKey(tt.code); got != tt.want {
			t.Errorf("actionForKey(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestTrackballKeysHaveNoViewerAction(t *testing.T) {
	for _, code := range []int{input.KeyA, input.KeyS, input.KeyD} {
		if actionForKey(code) != actionNone {
			t.Errorf("key %d is bound to a viewer action", code)
		}
	}
}

func TestTitles(t *testing.T) {
	if got := loadingTitle("pcdview", loader.Progress{Loaded: 5, Total: 20}); got != "pcdview - loading 25%" {
		t.Errorf("loadingTitle = %q", got)
	}
	if got := loadingTitle("pcdview", loader.Progress{Loaded: 512, Total: -1}); got != "pcdview - loading 512 bytes" {
		t.Errorf("loadingTitle = %q", got)
	}
	if got := loadedTitle("pcdview", "cube-20", 8000); got != "pcdview - cube-20 (8000 points)" {
		t.Errorf("loadedTitle = %q", got)
	}
}
