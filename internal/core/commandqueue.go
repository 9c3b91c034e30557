package core

import "sync"

// CommandQueue collects Commands raised while handling input or PTY
// events and defers their application to the barrier points in the main
// loop (spec §4.6, §4.8: "mutations to WindowRegistry happen only at
// well-defined barriers, never interleaved with event dispatch").
type CommandQueue struct {
	mu     sync.Mutex
	items  []Command
	closed bool
}

func NewCommandQueue() *CommandQueue {
	return &CommandQueue{}
}

// Push appends cmd to the queue. Safe to call from any goroutine; in this
// tree the main loop pushes from the UI thread, both for input Commands
// and for the CloseTab raised by a forwarded Exit event.
func (q *CommandQueue) Push(cmd Command) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.items = append(q.items, cmd)
	return nil
}

// Drain atomically removes and returns every queued Command, in FIFO
// order, leaving the queue empty (spec §4.6 "drain: FIFO, all-or-nothing").
func (q *CommandQueue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of queued, undrained Commands.
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close marks the queue closed; subsequent Push calls return
// ErrQueueClosed. Already-queued commands remain available via Drain.
func (q *CommandQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}

// Apply executes cmd against reg, the one place WindowRegistry mutation
// happens outside construction (spec §4.6 apply table).
func Apply(reg *WindowRegistry, cmd Command) error {
	switch cmd.Kind {
	case CmdNewWindow:
		_, err := reg.NewWindow()
		return err

	case CmdActivateWindow:
		reg.Activate(cmd.Window)
		return nil

	case CmdDeactivateWindow:
		reg.Deactivate(cmd.Window)
		return nil

	case CmdCloseWindow:
		reg.CloseWindow(cmd.Window)
		return nil

	case CmdCreateTab:
		win := reg.Get(cmd.Window)
		if win == nil {
			return ErrUnknownWindow
		}
		id, err := win.Tabs.AddTab(win.lastSize())
		if err != nil {
			return err
		}
		win.Tabs.ActivateTab(id)
		return nil

	case CmdMoveTab:
		win := reg.Get(cmd.Window)
		if win == nil {
			return ErrUnknownWindow
		}
		win.Tabs.MoveTab(cmd.From, cmd.To)
		return nil

	case CmdSetTabTitle:
		win := reg.Get(cmd.Window)
		if win == nil {
			return ErrUnknownWindow
		}
		win.Tabs.SetTabTitle(cmd.Tab, cmd.Title)
		return nil

	case CmdActivateTab:
		win := reg.Get(cmd.Window)
		if win == nil {
			return ErrUnknownWindow
		}
		win.Tabs.ActivateTab(cmd.Tab)
		return nil

	case CmdCloseTab:
		win := reg.Get(cmd.Window)
		if win == nil {
			return ErrUnknownWindow
		}
		win.Tabs.CloseTab(cmd.Tab)
		closeWindowIfEmpty(reg, win)
		return nil

	case CmdCloseCurrentTab:
		win := reg.Get(cmd.Window)
		if win == nil {
			return ErrUnknownWindow
		}
		win.Tabs.CloseCurrentTab()
		closeWindowIfEmpty(reg, win)
		return nil

	default:
		return nil
	}
}

// closeWindowIfEmpty closes win's window once its last tab is gone,
// mirroring the source's behavior of a window dying with its final tab
// (spec §8 scenario S3: "CloseTab then CloseWindow").
func closeWindowIfEmpty(reg *WindowRegistry, win *WindowContext) {
	if win.Tabs.IsEmpty() {
		reg.CloseWindow(win.ID)
	}
}

// Run drains q and applies every command to reg in order. A failing
// command does not stop the drain: its error is collected and the
// commands after it are still applied, and already-applied commands are
// not rolled back (spec §4.6).
func Run(reg *WindowRegistry, q *CommandQueue) []error {
	var errs []error
	for _, cmd := range q.Drain() {
		if err := Apply(reg, cmd); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
