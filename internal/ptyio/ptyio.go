// Package ptyio is the PTY I/O thread harness described in spec §4.5: a
// goroutine that reads PTY output into the Terminal and forwards
// TerminalEvents, plus a typed writer channel the UI thread uses to send
// bytes, resizes, and shutdown without touching the PTY file descriptor
// directly. It is adapted from the teacher's RunPTYReader/ForwardPTYMsgs
// pair (internal/ui/common/pty_reader.go), collapsed from bubbletea's
// tea.Msg pump into the core package's ForwardedEvent/EventForwarder
// shape.
package ptyio

import (
	"io"
	"time"

	"github.com/glyphterm/glyph/internal/core"
	"github.com/glyphterm/glyph/internal/logging"
	"github.com/glyphterm/glyph/internal/safego"
)

// readBufferSize matches the teacher's pty_reader default chunk size.
const readBufferSize = 4096

// PTY is the subset of internal/pty.Terminal that the I/O thread needs;
// kept as an interface so this package can be unit tested without
// spawning a real process.
type PTY interface {
	io.Reader
	Write(p []byte) (int, error)
	SetSize(rows, cols uint16) error
	Close() error
}

type writerCmdKind int

const (
	cmdWrite writerCmdKind = iota
	cmdResize
	cmdShutdown
)

type writerCmd struct {
	kind writerCmdKind
	data []byte
	size core.SizeInfo
}

// Writer is the typed channel handle a Tab holds (spec §3 pty_writer,
// §6 PTYWriter contract).
type Writer struct {
	ch chan writerCmd
}

func (w *Writer) Write(p []byte) error {
	buf := make([]byte, len(p))
	copy(buf, p)
	w.ch <- writerCmd{kind: cmdWrite, data: buf}
	return nil
}

func (w *Writer) Resize(size core.SizeInfo) error {
	w.ch <- writerCmd{kind: cmdResize, size: size}
	return nil
}

func (w *Writer) Shutdown() {
	w.ch <- writerCmd{kind: cmdShutdown}
}

// Thread is the join handle returned to the core (spec §3 io_thread).
type Thread struct {
	done chan struct{}
}

func (t *Thread) Join() { <-t.done }

// Spawn starts the reader and writer goroutines for one tab's PTY, and
// returns the handles a Tab stores (spec §4.5). term receives PTY output
// via term.Write; forwarder tags every event with the tab's handle
// before it reaches the main loop.
func Spawn(pty PTY, term core.Terminal, forwarder *core.EventForwarder) (*Writer, *Thread) {
	writer := &Writer{ch: make(chan writerCmd, 64)}
	thread := &Thread{done: make(chan struct{})}

	readErrCh := make(chan error, 1)

	safego.Go("ptyio-writer", func() {
		runWriter(pty, writer.ch, readErrCh)
	})

	safego.Go("ptyio-reader", func() {
		runReader(pty, term, forwarder, readErrCh)
		close(thread.done)
	})

	return writer, thread
}

// runReader blocks reading PTY output and forwarding it into term until
// Read returns an error (EOF once the PTY is closed), hands that error to
// the writer through readErrCh without blocking, then emits exactly one
// EventExit (spec §8 property 6: Exit observed only once).
func runReader(pty PTY, term core.Terminal, forwarder *core.EventForwarder, readErrCh chan error) {
	forwarder.Send(core.TerminalEvent{Kind: core.EventWakeup})

	buf := make([]byte, readBufferSize)
	for {
		n, err := pty.Read(buf)
		if n > 0 {
			term.Write(buf[:n])
			forwarder.Send(core.TerminalEvent{Kind: core.EventWakeup})
			if title, changed := term.ConsumeTitle(); changed {
				forwarder.Send(core.TerminalEvent{Kind: core.EventTitle, Title: title})
			}
		}
		if err != nil {
			select {
			case readErrCh <- err:
			default:
			}
			break
		}
	}
	forwarder.Send(core.TerminalEvent{Kind: core.EventExit})
}

// runWriter drains writer commands until Shutdown, closing pty either on
// explicit Shutdown or once the reader observes the PTY has already
// closed on its own (spec §4.5 "Shutdown: stop accepting writes, close
// the PTY, let the reader's next Read return and exit").
func runWriter(pty PTY, ch <-chan writerCmd, readErrCh <-chan error) {
	for {
		select {
		case cmd := <-ch:
			switch cmd.kind {
			case cmdWrite:
				if _, err := pty.Write(cmd.data); err != nil {
					logging.Debug("ptyio: write failed: %v", err)
				}
			case cmdResize:
				if err := pty.SetSize(cmd.size.Lines(), cmd.size.Cols()); err != nil {
					logging.Debug("ptyio: resize failed: %v", err)
				}
			case cmdShutdown:
				_ = pty.Close()
				return
			}
		case <-readErrCh:
			_ = pty.Close()
			return
		case <-time.After(idleCheckInterval):
			// Periodic wakeup so a writer goroutine blocked only on ch
			// still notices an already-closed PTY promptly; matches the
			// teacher's ticker-driven drain in RunPTYReader.
		}
	}
}

const idleCheckInterval = 250 * time.Millisecond
