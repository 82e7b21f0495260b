package backend

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseCombo(t *testing.T) {
	tests := []struct {
		combo    string
		expected []string
	}{
		{"Ctrl+Alt+Q", []string{"ctrl", "alt", "q"}},
		{"ctrl + space", []string{"ctrl", "space"}},
		{"Win+Tab", []string{"cmd", "tab"}},
		{"Super+F12", []string{"cmd", "f12"}},
		{"Shift+Cmd+3", []string{"shift", "cmd", "3"}},
		{"q", []string{"q"}},
	}

	for _, tt := range tests {
		t.Run(tt.combo, func(t *testing.T) {
			got := parseCombo(tt.combo)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseCombo(%q) = %v, expected %v", tt.combo, got, tt.expected)
			}
		})
	}
}

func TestNormalizeComboCollapsesAliases(t *testing.T) {
	if normalizeCombo("Win+A") != normalizeCombo("super+a") {
		t.Errorf("win and super should normalize to the same combo")
	}
	if normalizeCombo("CTRL + ALT + Q") != "ctrl+alt+q" {
		t.Errorf("normalizeCombo should lowercase and strip spaces, got %q", normalizeCombo("CTRL + ALT + Q"))
	}
}

func TestSplitCombo(t *testing.T) {
	mods, key, err := splitCombo("Ctrl+Shift+P")
	if err != nil {
		t.Fatalf("splitCombo failed: %v", err)
	}
	if !reflect.DeepEqual(mods, []string{"ctrl", "shift"}) {
		t.Errorf("mods = %v, expected [ctrl shift]", mods)
	}
	if key != "p" {
		t.Errorf("key = %q, expected p", key)
	}
}

func TestSplitComboRejectsModifierOnly(t *testing.T) {
	_, _, err := splitCombo("Ctrl+Shift")
	var unsupported *UnsupportedComboError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedComboError, got %v", err)
	}
}

func TestSplitComboRejectsTwoKeys(t *testing.T) {
	_, _, err := splitCombo("Ctrl+A+B")
	var unsupported *UnsupportedComboError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedComboError, got %v", err)
	}
	if unsupported.Key != "b" {
		t.Errorf("error should name the second key, got %q", unsupported.Key)
	}
}
