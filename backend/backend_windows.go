//go:build windows

package backend

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procRegisterHotKey      = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey    = user32.NewProc("UnregisterHotKey")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procGetClassNameW       = user32.NewProc("GetClassNameW")
	procGetWindowTextW      = user32.NewProc("GetWindowTextW")
)

const (
	modAlt      = 0x0001
	modControl  = 0x0002
	modShift    = 0x0004
	modWin      = 0x0008
	modNoRepeat = 0x4000

	wmNull   = 0x0000
	wmQuit   = 0x0012
	wmHotkey = 0x0312

	// ERROR_HOTKEY_ALREADY_REGISTERED
	errnoHotkeyClaimed = 1409
)

type winMsg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      [2]int32
}

type winRegistration struct {
	combo string
	mods  uintptr
	vk    uintptr
	fn    func()
	reply chan error
}

// windowsBackend registers hotkeys with the OS hotkey table. RegisterHotKey
// and GetMessage must run on the same thread, so a dedicated locked
// goroutine owns both; BindShortcut hands registrations to it through the
// pending queue and a WM_NULL wakeup.
type windowsBackend struct {
	mu        sync.Mutex
	callbacks map[int32]func()
	byCombo   map[string]int32
	pending   []winRegistration
	nextID    int32

	tid     uint32
	ready   chan struct{}
	done    chan struct{}
	running bool
}

func newPlatformBackend() (Backend, error) {
	return &windowsBackend{
		callbacks: make(map[int32]func()),
		byCombo:   make(map[string]int32),
		nextID:    1,
		ready:     make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

func (b *windowsBackend) Init() error {
	go b.messageLoop()
	<-b.ready
	if b.tid == 0 {
		return &InitError{Reason: "hotkey message loop failed to start"}
	}
	b.running = true
	return nil
}

func (b *windowsBackend) messageLoop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	b.tid = windows.GetCurrentThreadId()
	close(b.ready)

	var m winMsg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(ret) <= 0 {
			break
		}
		switch m.message {
		case wmHotkey:
			b.mu.Lock()
			fn := b.callbacks[int32(m.wParam)]
			b.mu.Unlock()
			if fn != nil {
				fn()
			}
		case wmNull:
			b.drainPending()
		}
	}

	b.unregisterAllOnLoopThread()
	close(b.done)
}

// drainPending runs queued RegisterHotKey calls on the loop thread.
func (b *windowsBackend) drainPending() {
	b.mu.Lock()
	regs := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, reg := range regs {
		id := b.nextID
		ret, _, callErr := procRegisterHotKey.Call(0, uintptr(id), reg.mods|modNoRepeat, reg.vk)
		if ret == 0 {
			if errno, ok := callErr.(windows.Errno); ok && errno == errnoHotkeyClaimed {
				reg.reply <- &ShortcutConflictError{Combo: reg.combo, Err: callErr}
			} else {
				reg.reply <- fmt.Errorf("RegisterHotKey(%q): %w", reg.combo, callErr)
			}
			continue
		}
		b.nextID++
		b.mu.Lock()
		b.callbacks[id] = reg.fn
		b.byCombo[normalizeCombo(reg.combo)] = id
		b.mu.Unlock()
		reg.reply <- nil
	}
}

// unregisterAllOnLoopThread releases every registration before the loop
// exits. Best effort: failures are logged and the rest still release.
func (b *windowsBackend) unregisterAllOnLoopThread() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for combo, id := range b.byCombo {
		ret, _, callErr := procUnregisterHotKey.Call(0, uintptr(id))
		if ret == 0 {
			log.Printf("backend: UnregisterHotKey(%q) failed: %v", combo, callErr)
		}
	}
	b.callbacks = make(map[int32]func())
	b.byCombo = make(map[string]int32)
}

func (b *windowsBackend) BindShortcut(combo string, fn func()) error {
	if !b.running {
		return &InitError{Reason: "backend not initialized"}
	}
	mods, key, err := splitCombo(combo)
	if err != nil {
		return err
	}
	vk, ok := vkForKey(key)
	if !ok {
		return &UnsupportedComboError{Combo: combo, Key: key}
	}
	var m uintptr
	for _, mod := range mods {
		switch mod {
		case "ctrl":
			m |= modControl
		case "alt":
			m |= modAlt
		case "shift":
			m |= modShift
		case "cmd":
			m |= modWin
		}
	}

	norm := normalizeCombo(combo)
	b.mu.Lock()
	if id, bound := b.byCombo[norm]; bound {
		// Same combo bound again by this instance: the native registration
		// stays, only the callback is replaced.
		b.callbacks[id] = fn
		b.mu.Unlock()
		log.Printf("backend: rebinding %q, previous callback replaced", norm)
		return nil
	}
	reg := winRegistration{combo: combo, mods: m, vk: uintptr(vk), fn: fn, reply: make(chan error, 1)}
	b.pending = append(b.pending, reg)
	b.mu.Unlock()

	b.wakeLoop()
	if err := <-reg.reply; err != nil {
		return err
	}
	log.Printf("backend: bound %q", norm)
	return nil
}

func (b *windowsBackend) wakeLoop() {
	_, _, _ = procPostThreadMessageW.Call(uintptr(b.tid), wmNull, 0, 0)
}

func (b *windowsBackend) UnbindAllShortcuts() {
	if !b.running {
		return
	}
	b.running = false
	_, _, _ = procPostThreadMessageW.Call(uintptr(b.tid), wmQuit, 0, 0)
	select {
	case <-b.done:
	case <-time.After(2 * time.Second):
		log.Printf("backend: timed out waiting for hotkey loop shutdown")
	}
}

func (b *windowsBackend) SimulateShortcut(combo string) { tapCombo(combo) }

func (b *windowsBackend) Pointer(ctx context.Context) (Point, error) {
	return pointerLocation(ctx)
}

func (b *windowsBackend) FocusedWindow(ctx context.Context) (WindowInfo, error) {
	if err := ctx.Err(); err != nil {
		return WindowInfo{}, err
	}
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return WindowInfo{}, fmt.Errorf("focused window query: no foreground window")
	}

	var cls [256]uint16
	n, _, _ := procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&cls[0])), uintptr(len(cls)))
	var title [512]uint16
	tn, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&title[0])), uintptr(len(title)))

	return WindowInfo{
		WMClass: windows.UTF16ToString(cls[:n]),
		Title:   windows.UTF16ToString(title[:tn]),
	}, nil
}
