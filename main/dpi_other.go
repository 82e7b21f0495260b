//go:build !windows

package main

// DPI scaling is handled by the display server on non-Windows platforms.
func enableDPIAwareness() {}
