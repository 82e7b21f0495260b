package overlay

import (
	"log"
	"time"
)

// State of the overlay surface lifecycle.
type State int

const (
	// Hidden - the surface is not on screen and no hide is in flight.
	Hidden State = iota
	// VisibleInteractive - the surface is shown, focusable, accepting input.
	VisibleInteractive
	// VisiblePendingHide - the surface is still rendering its fade-out but
	// already click-through; a hide timer is armed.
	VisiblePendingHide
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case VisibleInteractive:
		return "visible-interactive"
	case VisiblePendingHide:
		return "visible-pending-hide"
	}
	return "unknown"
}

type pendingHide struct {
	timer *time.Timer
	gen   uint64
}

// Controller drives the Surface through the Hidden / VisibleInteractive /
// VisiblePendingHide state machine. The pending timer handle is the single
// source of truth for "a hide is in flight": it exists exactly while the
// state is VisiblePendingHide.
//
// All methods MUST be called from the single event-loop goroutine. Timers
// never mutate state directly; they post their generation on HideElapsed
// and the loop calls CompleteHide, so a timer that fires after being
// superseded is discarded by the generation check.
type Controller struct {
	surface Surface
	state   State
	pending *pendingHide
	nextGen uint64
	elapsed chan uint64
}

func NewController(surface Surface) *Controller {
	return &Controller{
		surface: surface,
		state:   Hidden,
		elapsed: make(chan uint64, 4),
	}
}

// HideElapsed delivers the generation of each expired hide timer. The
// event loop selects on it and forwards the value to CompleteHide.
func (c *Controller) HideElapsed() <-chan uint64 { return c.elapsed }

func (c *Controller) State() State { return c.state }

// Show reveals the surface for a new invocation. Any pending hide from a
// previous cycle is preempted, never queued.
func (c *Controller) Show(ctx MenuContext) {
	c.CancelPendingHide()
	c.surface.SetInteractive(true)
	c.surface.Show(ctx)
	c.state = VisibleInteractive
	log.Printf("overlay: shown at (%d,%d)", ctx.Pointer.X, ctx.Pointer.Y)
}

// CancelPendingHide disarms the hide timer if one exists, returning the
// surface to the interactive state. No-op when nothing is armed; safe to
// call in any state.
func (c *Controller) CancelPendingHide() {
	if c.pending == nil {
		return
	}
	c.pending.timer.Stop()
	c.pending = nil
	// A stopped timer may already have fired; its generation is stale now
	// and CompleteHide will ignore it.
	c.surface.SetInteractive(true)
	c.state = VisibleInteractive
	log.Printf("overlay: pending hide cancelled")
}

// RequestHide starts the delayed-hide handshake: interactivity ends
// immediately (the surface goes click-through while the fade-out renders)
// and the actual hide happens when the timer elapses.
func (c *Controller) RequestHide(delay time.Duration) {
	if c.state == Hidden {
		log.Printf("overlay: hide requested while hidden, ignoring")
		return
	}
	if c.pending != nil {
		c.pending.timer.Stop()
		c.pending = nil
	}

	c.surface.SetInteractive(false)
	c.nextGen++
	gen := c.nextGen
	t := time.AfterFunc(delay, func() {
		select {
		case c.elapsed <- gen:
		default:
			log.Printf("overlay: hide-elapsed channel full, dropping gen %d", gen)
		}
	})
	c.pending = &pendingHide{timer: t, gen: gen}
	c.state = VisiblePendingHide
	log.Printf("overlay: hide armed in %s (gen %d)", delay, gen)
}

// CompleteHide finishes a hide whose timer elapsed. Generations that no
// longer match the armed timer belong to a preempted cycle and are
// silently dropped.
func (c *Controller) CompleteHide(gen uint64) {
	if c.pending == nil || c.pending.gen != gen {
		log.Printf("overlay: stale hide timer (gen %d), ignoring", gen)
		return
	}
	c.pending = nil
	c.surface.Hide()
	c.state = Hidden
	log.Printf("overlay: hidden")
}

// ShowDevTools forwards the diagnostics request to the surface.
func (c *Controller) ShowDevTools() { c.surface.ShowDevTools() }
