//go:build linux

package backend

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
)

// linuxBackend binds shortcuts through the shared keyboard hook and asks
// xdotool about the focused window.
type linuxBackend struct {
	*hookBinder
}

func newPlatformBackend() (Backend, error) {
	return &linuxBackend{hookBinder: newHookBinder()}, nil
}

func (b *linuxBackend) Init() error {
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return &InitError{Reason: "no display server (DISPLAY and WAYLAND_DISPLAY unset)"}
	}
	if _, err := exec.LookPath("xdotool"); err != nil {
		// Not fatal: invocations proceed with a degraded context.
		log.Printf("backend: xdotool not found, focused-window queries will fail: %v", err)
	}
	return nil
}

func (b *linuxBackend) SimulateShortcut(combo string) { tapCombo(combo) }

func (b *linuxBackend) Pointer(ctx context.Context) (Point, error) {
	return pointerLocation(ctx)
}

func (b *linuxBackend) FocusedWindow(ctx context.Context) (WindowInfo, error) {
	wmClass, err := xdotool(ctx, "getactivewindow", "getwindowclassname")
	if err != nil {
		return WindowInfo{}, fmt.Errorf("focused window query: %w", err)
	}
	title, err := xdotool(ctx, "getactivewindow", "getwindowname")
	if err != nil {
		// The class is the part callers key menus off; keep going.
		log.Printf("backend: window title query failed: %v", err)
	}
	return WindowInfo{WMClass: wmClass, Title: title}, nil
}

func xdotool(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "xdotool", args...).Output()
	if err != nil {
		return "", fmt.Errorf("xdotool %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}
