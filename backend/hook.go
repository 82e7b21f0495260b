//go:build linux || darwin

package backend

import (
	"log"
	"sync"

	gohook "github.com/robotn/gohook"
)

// hookBinder implements shortcut binding on top of the gohook keyboard
// hook. It is shared by the backends that have no native hotkey table
// (Linux, macOS); Windows uses RegisterHotKey instead.
//
// gohook has no per-combo unregister, so the binder keeps its own combo ->
// callback table and registers each combo with the hook at most once. The
// hook callback looks the current function up in the table, which makes
// rebinding the same combo an overwrite rather than a duplicate.
type hookBinder struct {
	mu         sync.Mutex
	bindings   map[string]func()
	registered map[string]bool
	started    bool

	// Seams for tests; the real functions drive gohook.
	registerFn func(keys []string, fire func())
	startFn    func()
	stopFn     func()
}

func newHookBinder() *hookBinder {
	b := &hookBinder{
		bindings:   make(map[string]func()),
		registered: make(map[string]bool),
	}
	b.registerFn = func(keys []string, fire func()) {
		gohook.Register(gohook.KeyDown, keys, func(gohook.Event) { fire() })
	}
	b.startFn = func() {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("PANIC in keyboard hook goroutine: %v", r)
				}
			}()
			s := gohook.Start()
			<-gohook.Process(s)
			log.Printf("keyboard hook stopped")
		}()
	}
	b.stopFn = gohook.End
	return b
}

func (b *hookBinder) BindShortcut(combo string, fn func()) error {
	if err := validateComboKeys(combo); err != nil {
		return err
	}
	keys := parseCombo(combo)
	norm := normalizeCombo(combo)

	b.mu.Lock()
	defer b.mu.Unlock()

	_, rebind := b.bindings[norm]
	b.bindings[norm] = fn
	if rebind {
		log.Printf("hook: rebinding %q, previous callback replaced", norm)
		return nil
	}

	if !b.registered[norm] {
		b.registerFn(keys, func() { b.dispatch(norm) })
		b.registered[norm] = true
	}
	if !b.started {
		b.startFn()
		b.started = true
	}
	log.Printf("hook: bound %q", norm)
	return nil
}

// dispatch runs on the hook goroutine; the callback must not block.
func (b *hookBinder) dispatch(norm string) {
	b.mu.Lock()
	fn := b.bindings[norm]
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (b *hookBinder) UnbindAllShortcuts() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		b.stopFn()
		b.started = false
	}
	n := len(b.bindings)
	b.bindings = make(map[string]func())
	b.registered = make(map[string]bool)
	if n > 0 {
		log.Printf("hook: released %d binding(s)", n)
	}
}
