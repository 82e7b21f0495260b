//go:build windows

package overlay

import (
	"log"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW    = user32.NewProc("FindWindowW")
	procGetWindowLongW = user32.NewProc("GetWindowLongW")
	procSetWindowLongW = user32.NewProc("SetWindowLongW")
)

const (
	gwlExStyle      = -20
	wsExLayered     = 0x00080000
	wsExTransparent = 0x00000020
	wsExNoActivate  = 0x08000000
)

// setClickThrough toggles the extended styles that make the overlay pass
// input to whatever is beneath it and stop taking activation. The native
// handle is resolved by window title because the toolkit does not expose
// it.
func setClickThrough(title string, enable bool) {
	ptr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		log.Printf("overlay: bad window title: %v", err)
		return
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(ptr)))
	if hwnd == 0 {
		log.Printf("overlay: window %q not found, click-through unchanged", title)
		return
	}

	style, _, _ := procGetWindowLongW.Call(hwnd, uintptr(uint32(int32(gwlExStyle))))
	if enable {
		style |= wsExLayered | wsExTransparent | wsExNoActivate
	} else {
		style &^= wsExTransparent | wsExNoActivate
	}
	_, _, _ = procSetWindowLongW.Call(hwnd, uintptr(uint32(int32(gwlExStyle))), style)
}
