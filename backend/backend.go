// Package backend abstracts the OS-specific pieces the launcher needs:
// global shortcut registration, pointer and focused-window queries, and
// synthetic input injection. One concrete implementation exists per
// supported OS; callers hold the Backend interface and never branch on
// the OS themselves.
package backend

import (
	"context"
	"errors"
	"fmt"
)

// Point is a pointer position in screen coordinates, valid only at the
// instant it was sampled.
type Point struct {
	X int
	Y int
}

// WindowInfo is a snapshot of the window that held input focus at sample
// time. It must be captured before the overlay surface is shown, because
// once shown the overlay itself becomes the focused window.
type WindowInfo struct {
	WMClass string
	Title   string
	App     string
}

// Backend is the per-OS capability set. Init must be called exactly once
// before any other method. FocusedWindow and Pointer are read-only queries
// and may be called concurrently; BindShortcut and UnbindAllShortcuts are
// not safe to call concurrently with themselves.
type Backend interface {
	// Init performs one-time OS setup (hooks, permission checks).
	Init() error

	// BindShortcut registers a global hotkey. The callback fires on every
	// matching key event system-wide, even when this process has no focused
	// window. Binding a combo that this instance already bound replaces the
	// previous callback.
	BindShortcut(combo string, fn func()) error

	// UnbindAllShortcuts releases every binding made through this instance.
	// Best effort: individual native failures are logged, never returned.
	// Safe to call with nothing bound.
	UnbindAllShortcuts()

	// SimulateShortcut injects a synthetic key combo into the OS input
	// stream, e.g. to trigger the native task switcher after the overlay
	// hides. Failures are logged, never propagated.
	SimulateShortcut(combo string)

	// FocusedWindow returns info about the window currently holding OS
	// input focus.
	FocusedWindow(ctx context.Context) (WindowInfo, error)

	// Pointer returns the current pointer position in screen coordinates.
	Pointer(ctx context.Context) (Point, error)
}

// ErrUnsupportedPlatform is returned by New on operating systems without a
// backend implementation. Fatal at startup, never recoverable at runtime.
var ErrUnsupportedPlatform = errors.New("no backend for this platform")

// InitError means the OS integration cannot be brought up at all and the
// application cannot start.
type InitError struct {
	Reason string
	Err    error
}

func (e *InitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend init: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("backend init: %s", e.Reason)
}

func (e *InitError) Unwrap() error { return e.Err }

// ShortcutConflictError means the OS rejected a registration because
// another process already claims the combo.
type ShortcutConflictError struct {
	Combo string
	Err   error
}

func (e *ShortcutConflictError) Error() string {
	return fmt.Sprintf("shortcut %q already claimed by another process: %v", e.Combo, e.Err)
}

func (e *ShortcutConflictError) Unwrap() error { return e.Err }

// UnsupportedComboError means the combo cannot be represented on this OS.
type UnsupportedComboError struct {
	Combo string
	Key   string
}

func (e *UnsupportedComboError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("shortcut %q: key %q cannot be mapped on this platform", e.Combo, e.Key)
	}
	return fmt.Sprintf("shortcut %q cannot be mapped on this platform", e.Combo)
}
