//go:build !windows

package overlay

import "log"

// setClickThrough is Windows-only; elsewhere the compositor decides and we
// rely on the surface being unfocused during the fade-out.
func setClickThrough(title string, enable bool) {
	log.Printf("overlay: click-through=%v not supported on this platform", enable)
}
