// Package messages defines the commands and events exchanged with the
// render surface over the local IPC channel.
package messages

import (
	"encoding/json"
	"fmt"
)

// Message is the base interface for all surface protocol messages.
type Message interface {
	Type() string
}

// Type constants for wire identification.
const (
	TypeTriggerInvocation = "trigger-invocation"
	TypeShowMenu          = "show-menu"
	TypeRequestHide       = "request-hide"
	TypeSimulateShortcut  = "simulate-shortcut"
	TypeShowDevTools      = "show-dev-tools"
	TypeLog               = "log"
)

// Pointer is a screen-space coordinate pair.
type Pointer struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// FocusedWindow describes the window that had focus when the menu was
// invoked. Omitted from ShowMenu when the query failed.
type FocusedWindow struct {
	WMClass string `json:"wmClass"`
	Title   string `json:"title,omitempty"`
	App     string `json:"app,omitempty"`
}

// TriggerInvocation - open the menu as if the hotkey fired. Sent by a
// delegating client process or a debug tool.
type TriggerInvocation struct{}

func (TriggerInvocation) Type() string { return TypeTriggerInvocation }

// ShowMenu - sent to the render surface with the invocation context so it
// can position and contextualize the menu.
type ShowMenu struct {
	Pointer       Pointer        `json:"pointer"`
	FocusedWindow *FocusedWindow `json:"focusedWindow,omitempty"`
}

func (ShowMenu) Type() string { return TypeShowMenu }

// RequestHide - sent by the render surface after a selection or cancel.
// DelayMs < 0 asks for the configured default fade delay.
type RequestHide struct {
	DelayMs int `json:"delayMs"`
}

func (RequestHide) Type() string { return TypeRequestHide }

// SimulateShortcut - ask the backend to inject a key combo, typically the
// OS task switcher, after the menu hides.
type SimulateShortcut struct {
	Combo string `json:"targetCombo"`
}

func (SimulateShortcut) Type() string { return TypeSimulateShortcut }

// ShowDevTools - diagnostics passthrough to the surface, no state effect.
type ShowDevTools struct{}

func (ShowDevTools) Type() string { return TypeShowDevTools }

// Log - a log line forwarded from the render surface into our log output.
type Log struct {
	Text string `json:"text"`
}

func (Log) Type() string { return TypeLog }

// envelope is the wire framing: one JSON object per line.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Marshal frames a message for the wire (without trailing newline).
func Marshal(m Message) ([]byte, error) {
	payload, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Type: m.Type(), Payload: payload})
}

// Unmarshal decodes one wire line into its typed message.
func Unmarshal(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("bad envelope: %w", err)
	}

	var m Message
	switch env.Type {
	case TypeTriggerInvocation:
		m = &TriggerInvocation{}
	case TypeShowMenu:
		m = &ShowMenu{}
	case TypeRequestHide:
		m = &RequestHide{}
	case TypeSimulateShortcut:
		m = &SimulateShortcut{}
	case TypeShowDevTools:
		m = &ShowDevTools{}
	case TypeLog:
		m = &Log{}
	default:
		return nil, fmt.Errorf("unknown message type %q", env.Type)
	}

	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, m); err != nil {
			return nil, fmt.Errorf("bad %s payload: %w", env.Type, err)
		}
	}
	return deref(m), nil
}

// deref returns the value form so callers can type-switch on concrete
// structs rather than pointers.
func deref(m Message) Message {
	switch v := m.(type) {
	case *TriggerInvocation:
		return *v
	case *ShowMenu:
		return *v
	case *RequestHide:
		return *v
	case *SimulateShortcut:
		return *v
	case *ShowDevTools:
		return *v
	case *Log:
		return *v
	}
	return m
}
