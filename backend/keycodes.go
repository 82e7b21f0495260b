package backend

import "strings"

// vkForKey maps a normalized non-modifier key name to its Windows
// virtual-key code. The name set doubles as the cross-platform answer to
// "can this key appear in a combo at all": a key without an entry here is
// rejected as unrepresentable on every backend.
func vkForKey(name string) (uint16, bool) {
	name = strings.ToLower(strings.TrimSpace(name))

	// Letters A-Z are VK 0x41-0x5A, digits 0-9 are VK 0x30-0x39.
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return uint16(c - 'a' + 0x41), true
		case c >= '0' && c <= '9':
			return uint16(c - '0' + 0x30), true
		}
	}

	switch name {
	// Function keys F1-F24 are VK 0x70-0x87.
	case "f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10",
		"f11", "f12", "f13", "f14", "f15", "f16", "f17", "f18", "f19",
		"f20", "f21", "f22", "f23", "f24":
		n := 0
		for _, c := range name[1:] {
			n = n*10 + int(c-'0')
		}
		return uint16(0x70 + n - 1), true

	case "space":
		return 0x20, true
	case "enter", "return":
		return 0x0D, true
	case "esc", "escape":
		return 0x1B, true
	case "tab":
		return 0x09, true
	case "backspace":
		return 0x08, true
	case "delete", "del":
		return 0x2E, true
	case "insert", "ins":
		return 0x2D, true
	case "home":
		return 0x24, true
	case "end":
		return 0x23, true
	case "pageup", "pgup":
		return 0x21, true
	case "pagedown", "pgdn":
		return 0x22, true

	case "left":
		return 0x25, true
	case "up":
		return 0x26, true
	case "right":
		return 0x27, true
	case "down":
		return 0x28, true
	}

	return 0, false
}

// validateComboKeys rejects combos containing a non-modifier key we cannot
// represent. Used by every backend before touching native registration.
func validateComboKeys(combo string) error {
	_, key, err := splitCombo(combo)
	if err != nil {
		return err
	}
	if _, ok := vkForKey(key); !ok {
		return &UnsupportedComboError{Combo: combo, Key: key}
	}
	return nil
}
