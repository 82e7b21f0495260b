//go:build linux || darwin

package backend

import (
	"errors"
	"testing"
)

// testBinder returns a hookBinder whose gohook seams are replaced with
// recorders, so binding behavior is testable without a real keyboard hook.
func testBinder() (*hookBinder, *hookCalls) {
	calls := &hookCalls{fires: make(map[string]func())}
	b := &hookBinder{
		bindings:   make(map[string]func()),
		registered: make(map[string]bool),
	}
	b.registerFn = func(keys []string, fire func()) {
		calls.registers++
		calls.fires[normalizeCombo(joinKeys(keys))] = fire
	}
	b.startFn = func() { calls.starts++ }
	b.stopFn = func() { calls.stops++ }
	return b, calls
}

type hookCalls struct {
	registers int
	starts    int
	stops     int
	fires     map[string]func()
}

func joinKeys(keys []string) string {
	s := ""
	for i, k := range keys {
		if i > 0 {
			s += "+"
		}
		s += k
	}
	return s
}

func TestBindShortcutRegistersOnce(t *testing.T) {
	b, calls := testBinder()

	if err := b.BindShortcut("Ctrl+Alt+Q", func() {}); err != nil {
		t.Fatalf("BindShortcut failed: %v", err)
	}
	if calls.registers != 1 || calls.starts != 1 {
		t.Fatalf("expected 1 register and 1 start, got %d/%d", calls.registers, calls.starts)
	}

	if err := b.BindShortcut("Ctrl+Space", func() {}); err != nil {
		t.Fatalf("BindShortcut failed: %v", err)
	}
	if calls.registers != 2 {
		t.Errorf("second combo should register, got %d registers", calls.registers)
	}
	if calls.starts != 1 {
		t.Errorf("hook should start only once, got %d starts", calls.starts)
	}
}

func TestBindShortcutIdempotentOverwrite(t *testing.T) {
	b, calls := testBinder()

	first, second := 0, 0
	if err := b.BindShortcut("Ctrl+Alt+Q", func() { first++ }); err != nil {
		t.Fatalf("BindShortcut failed: %v", err)
	}
	if err := b.BindShortcut("ctrl+alt+q", func() { second++ }); err != nil {
		t.Fatalf("rebind failed: %v", err)
	}
	if calls.registers != 1 {
		t.Errorf("rebinding the same combo must not re-register with the hook, got %d registers", calls.registers)
	}

	// Firing the combo runs only the latest callback.
	calls.fires["ctrl+alt+q"]()
	if first != 0 || second != 1 {
		t.Errorf("expected only the replacement callback to fire, got first=%d second=%d", first, second)
	}
}

func TestBindShortcutUnsupportedKey(t *testing.T) {
	b, _ := testBinder()
	err := b.BindShortcut("Ctrl+VolumeUp", func() {})
	var unsupported *UnsupportedComboError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedComboError, got %v", err)
	}
}

func TestUnbindAllShortcuts(t *testing.T) {
	b, calls := testBinder()

	// Safe with nothing bound.
	b.UnbindAllShortcuts()
	if calls.stops != 0 {
		t.Errorf("unbind with nothing bound should not stop the hook")
	}

	_ = b.BindShortcut("Ctrl+Alt+Q", func() {})
	b.UnbindAllShortcuts()
	if calls.stops != 1 {
		t.Errorf("expected the hook to stop once, got %d", calls.stops)
	}
	if len(b.bindings) != 0 || len(b.registered) != 0 {
		t.Errorf("unbind must leave the binding table empty")
	}

	// A fired event after unbind finds no callback and is a no-op.
	calls.fires["ctrl+alt+q"]()
}
