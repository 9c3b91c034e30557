package core

// TerminalEventKind tags the variant of a TerminalEvent (spec §3
// "TerminalEvent (tagged variant)").
type TerminalEventKind int

const (
	EventWakeup TerminalEventKind = iota
	EventTitle
	EventBell
	EventExit
	EventConfigReload
	EventClipboardStore
)

// TerminalEvent is what a Terminal/PTY collaborator raises and an
// EventForwarder tags with the originating tab before it reaches the
// main loop (spec §4.1, §6).
type TerminalEvent struct {
	Kind  TerminalEventKind
	Title string
	Text  string // clipboard payload for EventClipboardStore
}

// ForwardedEvent pairs a TerminalEvent with the TabHandle that raised
// it, so the main loop can resolve it against the live TabCollection
// without the PTY I/O thread needing to know about windows at all (spec
// §4.1 "EventForwarder: wraps a TabHandle and an inner event proxy;
// tags every event with the handle before forwarding it on").
type ForwardedEvent struct {
	Handle TabHandle
	Event  TerminalEvent
}

// EventForwarder is the per-tab adapter threaded into a Terminal/PTY's
// event sink. It is the direct analogue of alacritty's EventProxy: a
// thin forwarding wrapper around a shared dispatch channel so the
// Terminal never sees a TabHandle, it only ever calls Send. Unlike a
// plain alacritty EventProxy, it never caches the handle by value: a
// CloseTab/MoveTab elsewhere in the same window renumbers every sibling
// tab's TabID, so each Send re-reads tab's current handle from the
// owning collection rather than tagging events with the handle captured
// at construction time (spec §4.1 "the forwarder reads the current
// (window_id, tab_id) from the shared handle").
type EventForwarder struct {
	collection *TabCollection
	tab        *Tab
	sink       chan<- ForwardedEvent
}

// NewEventForwarder binds tab (a member of collection) to sink. sink is
// typically the main loop's single inbound event channel, shared by
// every tab in every window (spec §4.1 "a single channel fans in events
// from every tab").
func NewEventForwarder(collection *TabCollection, tab *Tab, sink chan<- ForwardedEvent) *EventForwarder {
	return &EventForwarder{collection: collection, tab: tab, sink: sink}
}

// Send tags event with tab's current TabHandle and forwards it. It never
// blocks indefinitely on a full channel in a way that can deadlock the
// PTY I/O thread against the handle's own Shutdown: callers run this
// from the I/O thread's own goroutine, and the main loop drains sink
// continuously while any tab is alive.
func (f *EventForwarder) Send(event TerminalEvent) {
	f.sink <- ForwardedEvent{Handle: f.collection.HandleOf(f.tab), Event: event}
}

// Handle returns the tab's current TabHandle.
func (f *EventForwarder) Handle() TabHandle { return f.collection.HandleOf(f.tab) }
