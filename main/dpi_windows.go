//go:build windows

package main

import (
	"log"

	"golang.org/x/sys/windows"
)

// enableDPIAwareness marks the process per-monitor DPI aware so pointer
// coordinates and overlay geometry line up on scaled displays.
func enableDPIAwareness() {
	user32 := windows.NewLazySystemDLL("user32.dll")
	setCtx := user32.NewProc("SetProcessDpiAwarenessContext")
	if setCtx.Find() == nil {
		// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 is (DPI_AWARENESS_CONTEXT)-4
		r, _, _ := setCtx.Call(^uintptr(3))
		if r != 0 {
			return
		}
	}
	// Fallback for pre-1703 systems
	shcore := windows.NewLazySystemDLL("shcore.dll")
	setAwareness := shcore.NewProc("SetProcessDpiAwareness")
	if setAwareness.Find() == nil {
		const processPerMonitorDpiAware = 2
		_, _, _ = setAwareness.Call(processPerMonitorDpiAware)
		return
	}
	log.Printf("DPI awareness unavailable on this system")
}
