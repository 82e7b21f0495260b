// Package tray puts the resident launcher in the system tray: a tooltip
// showing the active hotkey, an About entry, and the quit path.
package tray

import (
	"fmt"
	"log"
	"sync"

	"github.com/getlantern/systray"
)

type Config struct {
	Title   string
	Tooltip string
	// OnQuit runs when the user picks Quit; it should cancel the loop
	// context so shortcut unbinding happens on the normal shutdown path.
	OnQuit func()
}

type Tray struct {
	cfg Config
}

func New(cfg Config) (*Tray, error) {
	return &Tray{cfg: cfg}, nil
}

// Run starts the systray loop. Blocks; call it on its own goroutine.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Destroy removes the tray icon.
func (t *Tray) Destroy() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetIcon([]byte(IconSVG))
	systray.SetTitle(t.cfg.Title)
	systray.SetTooltip(t.cfg.Tooltip)

	about := systray.AddMenuItem("About", "Show hotkey and endpoint info")
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Unbind shortcuts and exit")

	go func() {
		for {
			select {
			case <-about.ClickedCh:
				log.Printf("tray: %s", AboutText())
			case <-quit.ClickedCh:
				if t.cfg.OnQuit != nil {
					t.cfg.OnQuit()
				}
				systray.Quit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

// UpdateTooltip changes the tray tooltip, e.g. while the menu is up.
func UpdateTooltip(tooltip string) {
	systray.SetTooltip(tooltip)
}

var (
	aboutMu     sync.Mutex
	aboutHotkey string
	aboutExtra  string
)

// SetAboutHotkey records the active hotkey for the About text.
func SetAboutHotkey(hk string) {
	aboutMu.Lock()
	defer aboutMu.Unlock()
	aboutHotkey = hk
}

// SetAboutExtra appends one extra line (e.g. the IPC endpoint).
func SetAboutExtra(s string) {
	aboutMu.Lock()
	defer aboutMu.Unlock()
	aboutExtra = s
}

func AboutText() string {
	aboutMu.Lock()
	defer aboutMu.Unlock()
	s := fmt.Sprintf("Pie Menu Launcher - hotkey %s", aboutHotkey)
	if aboutExtra != "" {
		s += " - " + aboutExtra
	}
	return s
}
