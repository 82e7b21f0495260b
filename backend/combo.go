package backend

import "strings"

// parseCombo converts a combo string like "Ctrl+Alt+Q" to normalized
// lowercase key names. Modifier aliases (win/super) collapse to "cmd" so a
// combo has exactly one spelling per binding table entry.
func parseCombo(combo string) []string {
	parts := strings.Split(strings.ToLower(combo), "+")
	var keys []string

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch part {
		case "ctrl", "alt", "shift":
			keys = append(keys, part)
		case "win", "cmd", "super":
			keys = append(keys, "cmd")
		default:
			keys = append(keys, part)
		}
	}

	return keys
}

// normalizeCombo is the canonical binding-table key for a combo.
func normalizeCombo(combo string) string {
	return strings.Join(parseCombo(combo), "+")
}

func isModifier(key string) bool {
	switch key {
	case "ctrl", "alt", "shift", "cmd":
		return true
	}
	return false
}

// splitCombo separates a combo into its modifiers and its single
// non-modifier key. A combo with zero or more than one non-modifier key
// cannot be registered as a native hotkey.
func splitCombo(combo string) (mods []string, key string, err error) {
	for _, name := range parseCombo(combo) {
		if isModifier(name) {
			mods = append(mods, name)
			continue
		}
		if key != "" {
			return nil, "", &UnsupportedComboError{Combo: combo, Key: name}
		}
		key = name
	}
	if key == "" {
		return nil, "", &UnsupportedComboError{Combo: combo}
	}
	return mods, key, nil
}
