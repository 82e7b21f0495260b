package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pie-menu/backend"
	"pie-menu/config"
	"pie-menu/eventloop"
	"pie-menu/ipc"
	"pie-menu/logutil"
	"pie-menu/overlay"
	"pie-menu/tray"
)

// normalizeFlagDashes maps GNU-style --trigger to Go's -trigger
func normalizeFlagDashes() {
	for i := 1; i < len(os.Args); i++ {
		if os.Args[i] == "--trigger" {
			os.Args[i] = "-trigger"
		}
	}
}

func main() {
	// Ensure DPI awareness before creating any windows or querying metrics
	enableDPIAwareness()

	trigger := flag.Bool("trigger", false, "Ask the running resident to open the menu, then exit")
	normalizeFlagDashes()
	flag.Parse()

	// Load .env early so IPC_PORT_* are applied before any port scan
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logutil.Setup(cfg.EnableFileLogging)

	if *trigger {
		runTrigger()
		return
	}

	// ---------- SINGLE-INSTANCE PRE-FLIGHT ----------
	startPort, _ := ipc.PortRange()
	addr := fmt.Sprintf("127.0.0.1:%d", startPort)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("Pre-flight: port %d busy, resident already exists", startPort)
		fmt.Printf("one is already running on port %d\n", startPort)
		os.Exit(1)
	}
	// We claimed the port; release it so the IPC server can re-bind.
	_ = listener.Close()
	log.Printf("Pre-flight: port %d free, we are the resident", startPort)
	// ------------------------------------------------

	b, err := backend.New()
	if err != nil {
		log.Fatalf("Cannot select a platform backend: %v", err)
	}
	if err := b.Init(); err != nil {
		log.Fatalf("Backend init failed: %v", err)
	}

	surface := overlay.NewFyneSurface()
	ctrl := overlay.NewController(surface)
	srv := ipc.NewServer()
	loop := eventloop.New(cfg, b, ctrl, srv)

	if err := loop.BindHotkey(cfg.Hotkey); err != nil {
		log.Fatalf("Cannot bind hotkey %q: %v", cfg.Hotkey, err)
	}

	log.Printf("Pie menu launcher initialized")
	log.Printf("Hotkey: %s", cfg.Hotkey)
	log.Printf("Hide delay: %dms", cfg.HideDelayMs)
	tray.SetAboutHotkey(cfg.Hotkey)
	tray.SetAboutExtra(fmt.Sprintf("Resident TCP port: %d", startPort))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trayIcon, _ := tray.New(tray.Config{
		Title:   "Pie Menu",
		Tooltip: fmt.Sprintf("Pie Menu - press %s", cfg.Hotkey),
		OnQuit:  cancel,
	})
	go trayIcon.Run()
	defer trayIcon.Destroy()

	// Handle SIGINT/SIGTERM
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	// Released exactly once, on the way out, even if the loop errored.
	defer b.UnbindAllShortcuts()

	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx) }()
	go func() {
		<-ctx.Done()
		surface.Quit()
	}()

	// The GUI toolkit owns the main goroutine for the process lifetime.
	surface.Run()

	cancel()
	if err := <-loopDone; err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("event loop stopped: %v", err)
	}
}

// runTrigger delegates one invocation to a running resident.
func runTrigger() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	delegated, err := ipc.NewClient().TriggerInvocation(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to reach resident: %v\n", err)
		os.Exit(1)
	}
	if !delegated {
		fmt.Fprintln(os.Stderr, "No resident pie-menu process found")
		os.Exit(1)
	}
	log.Printf("Delegated invocation to resident")
}
