package messages

import (
	"strings"
	"testing"
)

func TestShowMenuWireFormat(t *testing.T) {
	msg := ShowMenu{
		Pointer:       Pointer{X: 512, Y: 300},
		FocusedWindow: &FocusedWindow{WMClass: "firefox"},
	}
	data, err := Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"type":"show-menu"`, `"x":512`, `"y":300`, `"wmClass":"firefox"`} {
		if !strings.Contains(s, want) {
			t.Errorf("wire form missing %s: %s", want, s)
		}
	}

	decoded, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	sm, ok := decoded.(ShowMenu)
	if !ok {
		t.Fatalf("decoded to %T, expected ShowMenu", decoded)
	}
	if sm.Pointer != msg.Pointer || sm.FocusedWindow == nil || sm.FocusedWindow.WMClass != "firefox" {
		t.Errorf("round trip mangled payload: %+v", sm)
	}
}

func TestShowMenuOmitsMissingWindow(t *testing.T) {
	data, err := Marshal(ShowMenu{Pointer: Pointer{X: 1, Y: 2}})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(data), "focusedWindow") {
		t.Errorf("degraded context should omit focusedWindow: %s", data)
	}
}

func TestUnmarshalRequestHide(t *testing.T) {
	m, err := Unmarshal([]byte(`{"type":"request-hide","payload":{"delayMs":300}}`))
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	rh, ok := m.(RequestHide)
	if !ok {
		t.Fatalf("decoded to %T, expected RequestHide", m)
	}
	if rh.DelayMs != 300 {
		t.Errorf("DelayMs = %d, expected 300", rh.DelayMs)
	}
}

func TestUnmarshalUnknownType(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"type":"resize-window"}`)); err == nil {
		t.Fatal("unknown message type should error")
	}
}
