// Command glyph is the multi-window terminal's entry point: it wires the
// orchestration core (internal/core) to its concrete collaborators — a
// real PTY (internal/pty), the VT adapter (internal/term), the PTY I/O
// thread harness (internal/ptyio), and a software Display
// (internal/display) — and runs the MainLoop until every window closes
// or the process receives an interrupt.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/glyphterm/glyph/internal/clipboard"
	"github.com/glyphterm/glyph/internal/config"
	"github.com/glyphterm/glyph/internal/core"
	"github.com/glyphterm/glyph/internal/display"
	"github.com/glyphterm/glyph/internal/logging"
	"github.com/glyphterm/glyph/internal/pty"
	"github.com/glyphterm/glyph/internal/ptyio"
	"github.com/glyphterm/glyph/internal/safego"
	"github.com/glyphterm/glyph/internal/term"
)

// Version info set by GoReleaser via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("glyph %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	home, _ := os.UserHomeDir()
	logDir := filepath.Join(home, ".glyph", "logs")
	if err := logging.Initialize(logDir, logging.LevelInfo); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()

	safego.SetPanicHandler(func(name string, recovered any, stack []byte) {
		logging.Error("unrecovered panic in %s: %v", name, recovered)
	})

	logging.Info("starting glyph")

	cfgPath := filepath.Join(home, ".glyph", "config.json")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logging.Error("failed to load config: %v", err)
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	// loop.Events is created up front so newWindowFactory's TabFactory
	// closures can capture the very channel MainLoop.Run drains — there is
	// no other way to thread it in, since WindowRegistry's factory and
	// MainLoop both need to exist before the other (spec §4.1 "a single
	// channel fans in events from every tab").
	loop := &core.MainLoop{
		Commands:       core.NewCommandQueue(),
		Events:         make(chan core.ForwardedEvent, 256),
		Input:          make(chan core.InputEvent, 64),
		RedrawInterval: core.DefaultRedrawInterval,
	}
	reg := core.NewWindowRegistry(newWindowFactory(cfg, loop.Events))
	loop.Registry = reg

	watcher, err := config.Watch(cfgPath, func(reloaded *config.Config) {
		*cfg = *reloaded
		for _, win := range reg.All() {
			win.MarkDisplayUpdate()
		}
	})
	if err != nil {
		logging.Warn("config watch disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	if _, err := reg.NewWindow(); err != nil {
		logging.Error("failed to create initial window: %v", err)
		fmt.Fprintf(os.Stderr, "error creating window: %v\n", err)
		os.Exit(1)
	}
	reg.Activate(firstWindowID(reg))

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	safego.Go("signal-wait", func() {
		<-sigCh
		logging.Info("received shutdown signal")
		cancel()
	})

	loop.Run(ctx)
	cancel()

	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
	if err := reg.Shutdown(shutdownCtx); err != nil {
		logging.Warn("window registry shutdown reported errors: %v", err)
	}
	shutdownCancel()

	logging.Info("glyph shutdown complete")
}

func firstWindowID(reg *core.WindowRegistry) core.WindowID {
	for _, win := range reg.All() {
		return win.ID
	}
	return 0
}

// newWindowFactory builds a core.WindowFactory backed by a real
// SoftwareDisplay and a TabFactory that spawns a real PTY, matching spec
// §4.6 "NewWindow: create a new WindowContext; spawn an initial tab with
// one PTY". events is the MainLoop's own inbound channel, shared by every
// tab in every window (spec §4.1).
func newWindowFactory(cfg *config.Config, events chan core.ForwardedEvent) core.WindowFactory {
	return func(id core.WindowID) (*core.WindowContext, error) {
		disp := display.NewSoftwareDisplay()
		win, err := core.NewWindowContext(id, newTabFactory(cfg, events), disp)
		if err != nil {
			return nil, err
		}
		win.SetFontSize(cfg.FontSize)
		return win, nil
	}
}

// newTabFactory builds a core.TabFactory that wires a real PTY
// (internal/pty) through the VT adapter (internal/term) and the PTY I/O
// thread harness (internal/ptyio), with every TerminalEvent flowing into
// events tagged by the tab's handle (spec §4.5).
func newTabFactory(cfg *config.Config, events chan core.ForwardedEvent) core.TabFactory {
	return func(collection *core.TabCollection, handle core.TabHandle, size core.SizeInfo) (*core.Tab, error) {
		home, _ := os.UserHomeDir()
		clip := clipboard.System{}
		adapter := term.New(size, clip)

		proc, err := pty.NewWithSize(cfg.Shell, home, nil, size.Lines(), size.Cols())
		if err != nil {
			return nil, fmt.Errorf("spawn pty: %w", err)
		}

		// tab is built before its Writer/IO so the EventForwarder can hold
		// this exact pointer: TabCollection.AddTab appends it unchanged, so
		// any later renumber (CloseTab/MoveTab on a sibling) mutates the
		// same Handle field the forwarder reads on every Send.
		tab := &core.Tab{Handle: handle, Terminal: adapter}
		forwarder := core.NewEventForwarder(collection, tab, events)
		writer, thread := ptyio.Spawn(proc, adapter, forwarder)

		tab.Writer = writer
		tab.Resize = proc.ResizeHandle()
		tab.IO = thread
		return tab, nil
	}
}

