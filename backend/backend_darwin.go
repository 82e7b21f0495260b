//go:build darwin

package backend

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// darwinBackend binds shortcuts through the shared keyboard hook and asks
// System Events (via osascript) about the frontmost application.
type darwinBackend struct {
	*hookBinder
}

func newPlatformBackend() (Backend, error) {
	return &darwinBackend{hookBinder: newHookBinder()}, nil
}

func (b *darwinBackend) Init() error {
	// The keyboard hook and window queries both need the Accessibility
	// permission; probing System Events here surfaces the problem at
	// startup instead of on the first invocation.
	if _, err := osascript(context.Background(),
		`tell application "System Events" to count processes`); err != nil {
		return &InitError{Reason: "System Events unavailable (check Accessibility permission)", Err: err}
	}
	return nil
}

func (b *darwinBackend) SimulateShortcut(combo string) { tapCombo(combo) }

func (b *darwinBackend) Pointer(ctx context.Context) (Point, error) {
	return pointerLocation(ctx)
}

func (b *darwinBackend) FocusedWindow(ctx context.Context) (WindowInfo, error) {
	app, err := osascript(ctx,
		`tell application "System Events" to get name of first application process whose frontmost is true`)
	if err != nil {
		return WindowInfo{}, fmt.Errorf("focused window query: %w", err)
	}
	title, err := osascript(ctx,
		`tell application "System Events" to get title of front window of (first application process whose frontmost is true)`)
	if err != nil {
		// Some processes have no titled windows; the app name is enough.
		title = ""
	}
	// macOS has no WM_CLASS; the bundle-less app name is the closest
	// stable identifier menus can match on.
	return WindowInfo{WMClass: app, Title: title, App: app}, nil
}

func osascript(ctx context.Context, script string) (string, error) {
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		return "", fmt.Errorf("osascript: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
