// Package eventloop coordinates the end-to-end invocation sequence: hotkey
// fires, pending hide is cancelled, pointer and focused window are queried
// in parallel, and the combined context is handed to the overlay and the
// render surface.
package eventloop

import (
	"context"
	"fmt"
	"log"
	"time"

	"pie-menu/backend"
	"pie-menu/config"
	"pie-menu/ipc"
	"pie-menu/messages"
	"pie-menu/overlay"
	"pie-menu/worker"
)

// Loop is the single-threaded coordinator. All state lives on the Run
// goroutine; hotkey callbacks, timer expirations, query joins and IPC
// reads reach it only through channels.
type Loop struct {
	backend backend.Backend
	ctrl    *overlay.Controller
	pool    *worker.Pool
	srv     ipc.Server

	hotkeyCh chan struct{}
	contexts chan invocation
	seq      uint64

	hideDelay     time.Duration
	queryTimeout  time.Duration
	switcherCombo string
}

// invocation carries a resolved context tagged with the invocation
// sequence number that produced it, so a slow query from a superseded
// invocation can never overwrite a newer one.
type invocation struct {
	seq uint64
	ctx overlay.MenuContext
}

// New creates the loop. If cfg is nil, defaults are used.
func New(cfg *config.Config, b backend.Backend, ctrl *overlay.Controller, srv ipc.Server) *Loop {
	hideDelay := config.DefaultHideDelayMs
	queryTimeout := config.DefaultQueryTimeoutMs
	switcherCombo := ""
	if cfg != nil {
		if cfg.HideDelayMs > 0 {
			hideDelay = cfg.HideDelayMs
		}
		if cfg.QueryTimeoutMs > 0 {
			queryTimeout = cfg.QueryTimeoutMs
		}
		switcherCombo = cfg.SwitcherCombo
	}

	return &Loop{
		backend:       b,
		ctrl:          ctrl,
		pool:          worker.New(2),
		srv:           srv,
		hotkeyCh:      make(chan struct{}, 4),
		contexts:      make(chan invocation, 4),
		hideDelay:     time.Duration(hideDelay) * time.Millisecond,
		queryTimeout:  time.Duration(queryTimeout) * time.Millisecond,
		switcherCombo: switcherCombo,
	}
}

// Trigger posts an invocation event into the loop. Safe to call from any
// goroutine; never blocks. Used as the hotkey callback.
func (l *Loop) Trigger() {
	select {
	case l.hotkeyCh <- struct{}{}:
	default:
		log.Printf("eventloop: invocation queue full, dropping trigger")
	}
}

// BindHotkey registers the global shortcut that opens the menu.
func (l *Loop) BindHotkey(combo string) error {
	return l.backend.BindShortcut(combo, l.Trigger)
}

// Run starts the IPC server and processes events until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.srv.Start(ctx); err != nil {
		return err
	}
	if p := l.srv.Port(); p > 0 {
		log.Printf("Resident listening on 127.0.0.1:%d", p)
	}
	defer func() { _ = l.srv.Close() }()
	defer l.pool.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.hotkeyCh:
			l.startInvocation(ctx)
		case m := <-l.srv.Inbound():
			l.handleMessage(ctx, m)
		case inv := <-l.contexts:
			l.handleContext(inv)
		case gen := <-l.ctrl.HideElapsed():
			l.ctrl.CompleteHide(gen)
		}
	}
}

func (l *Loop) handleMessage(ctx context.Context, m messages.Message) {
	switch msg := m.(type) {
	case messages.TriggerInvocation:
		l.startInvocation(ctx)
	case messages.RequestHide:
		delay := time.Duration(msg.DelayMs) * time.Millisecond
		if msg.DelayMs < 0 {
			delay = l.hideDelay
		}
		l.ctrl.RequestHide(delay)
	case messages.SimulateShortcut:
		combo := msg.Combo
		if combo == "" {
			combo = l.switcherCombo
		}
		l.backend.SimulateShortcut(combo)
	case messages.ShowDevTools:
		l.ctrl.ShowDevTools()
	case messages.Log:
		log.Printf("surface: %s", msg.Text)
	default:
		log.Printf("eventloop: unhandled inbound message %s", m.Type())
	}
}

// startInvocation kicks off the concurrent context queries for a new
// invocation. The focused window MUST be sampled before the overlay shows,
// which holds because the overlay is only shown from handleContext, after
// both queries resolved.
func (l *Loop) startInvocation(ctx context.Context) {
	l.seq++
	seq := l.seq
	log.Printf("eventloop: invocation %d", seq)

	l.ctrl.CancelPendingHide()

	qctx, cancel := context.WithTimeout(ctx, l.queryTimeout)

	type winResult struct {
		info backend.WindowInfo
		err  error
	}
	type ptrResult struct {
		pt  backend.Point
		err error
	}
	winCh := make(chan winResult, 1)
	ptrCh := make(chan ptrResult, 1)

	l.submit(qctx, func(c context.Context) {
		info, err := l.backend.FocusedWindow(c)
		winCh <- winResult{info: info, err: err}
	})
	l.submit(qctx, func(c context.Context) {
		pt, err := l.backend.Pointer(c)
		ptrCh <- ptrResult{pt: pt, err: err}
	})

	// Join off-loop; invocation latency is bounded by the slower query,
	// not their sum. Either failure degrades the context instead of
	// aborting the invocation. The join must also survive a query that
	// never reports at all (a task skipped by a saturated pool, or a hung
	// OS call): each read gives up at the query deadline, after one last
	// non-blocking drain in case the result and the deadline raced.
	go func() {
		defer cancel()

		var win winResult
		select {
		case win = <-winCh:
		case <-qctx.Done():
			select {
			case win = <-winCh:
			default:
				win = winResult{err: fmt.Errorf("focused-window query never resolved: %w", qctx.Err())}
			}
		}
		var ptr ptrResult
		select {
		case ptr = <-ptrCh:
		case <-qctx.Done():
			select {
			case ptr = <-ptrCh:
			default:
				ptr = ptrResult{err: fmt.Errorf("pointer query never resolved: %w", qctx.Err())}
			}
		}

		mc := overlay.MenuContext{}
		if win.err != nil {
			log.Printf("eventloop: focused-window query failed, menu shows without window context: %v", win.err)
		} else {
			info := win.info
			mc.FocusedWindow = &info
		}
		if ptr.err != nil {
			log.Printf("eventloop: pointer query failed, menu shows at origin: %v", ptr.err)
		} else {
			mc.Pointer = ptr.pt
		}

		select {
		case l.contexts <- invocation{seq: seq, ctx: mc}:
		case <-ctx.Done():
		}
	}()
}

// submit runs a query on the pool, falling back to a plain goroutine if
// the pool is saturated by overlapping invocations.
func (l *Loop) submit(ctx context.Context, task worker.Task) {
	if !l.pool.Submit(ctx, task) {
		log.Printf("eventloop: query pool saturated, running query inline")
		go task(ctx)
	}
}

func (l *Loop) handleContext(inv invocation) {
	if inv.seq != l.seq {
		log.Printf("eventloop: discarding context from superseded invocation %d (latest %d)", inv.seq, l.seq)
		return
	}

	l.ctrl.Show(inv.ctx)

	event := messages.ShowMenu{
		Pointer: messages.Pointer{X: inv.ctx.Pointer.X, Y: inv.ctx.Pointer.Y},
	}
	if w := inv.ctx.FocusedWindow; w != nil {
		event.FocusedWindow = &messages.FocusedWindow{WMClass: w.WMClass, Title: w.Title, App: w.App}
	}
	l.srv.Publish(event)
}

// HideDelay returns the configured default fade delay.
func (l *Loop) HideDelay() time.Duration { return l.hideDelay }
