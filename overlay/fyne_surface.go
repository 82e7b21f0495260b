package overlay

import (
	"image/color"
	"log"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
)

// surfaceTitle is also how the Windows click-through helper finds the
// native window handle.
const surfaceTitle = "pie-menu-overlay"

// FyneSurface is the real overlay window: frameless, full screen, hidden
// until the first invocation. Window operations are marshalled onto the
// fyne UI thread; Run must be called on the main goroutine and blocks for
// the process lifetime.
type FyneSurface struct {
	app fyne.App
	win fyne.Window
}

func NewFyneSurface() *FyneSurface {
	a := app.New()
	w := a.NewWindow(surfaceTitle)
	w.SetPadded(false)
	w.SetFullScreen(true)
	w.SetContent(canvas.NewRectangle(color.Transparent))
	return &FyneSurface{app: a, win: w}
}

// Run starts the fyne event loop. Blocks until Quit.
func (s *FyneSurface) Run() { s.app.Run() }

func (s *FyneSurface) Quit() { s.app.Quit() }

func (s *FyneSurface) Show(ctx MenuContext) {
	fyne.Do(func() {
		s.win.Show()
		s.win.RequestFocus()
	})
}

func (s *FyneSurface) Hide() {
	fyne.Do(func() { s.win.Hide() })
}

func (s *FyneSurface) SetInteractive(on bool) {
	setClickThrough(surfaceTitle, !on)
	if !on {
		fyne.Do(func() { s.win.Canvas().Unfocus() })
	}
}

func (s *FyneSurface) ShowDevTools() {
	log.Printf("overlay: dev tools requested, surface has none")
}
