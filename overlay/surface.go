// Package overlay owns the menu overlay surface and its show/hide state
// machine.
package overlay

import "pie-menu/backend"

// MenuContext is the payload a show carries: where the pointer was and
// which window had focus when the invocation fired. FocusedWindow is nil
// when the query failed and the menu shows with a degraded context.
type MenuContext struct {
	Pointer       backend.Point
	FocusedWindow *backend.WindowInfo
}

// Surface abstracts the real overlay window. SetInteractive flips the
// focusable and input-pass-through attributes together: the surface is
// either fully interactive or fully click-through, never a mix.
type Surface interface {
	Show(ctx MenuContext)
	Hide()
	SetInteractive(on bool)

	// ShowDevTools is a diagnostics passthrough; surfaces without dev
	// tooling log and do nothing.
	ShowDevTools()
}
