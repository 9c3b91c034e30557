package core

// CommandKind tags a Command's variant (spec §3 "Command (tagged variant)").
type CommandKind int

const (
	CmdNewWindow CommandKind = iota
	CmdActivateWindow
	CmdDeactivateWindow
	CmdCloseWindow
	CmdCreateTab
	CmdMoveTab
	CmdSetTabTitle
	CmdActivateTab
	CmdCloseTab
	CmdCloseCurrentTab
)

// Command is a single deferred mutation collected during event dispatch
// and executed by CommandQueue.Run at the barriers described in spec §4.8.
// Only the fields relevant to Kind are populated; this mirrors the
// teacher's tagged tea.Msg style more than a Rust enum, but carries the
// same information.
type Command struct {
	Kind CommandKind

	Window WindowID
	Tab    TabID
	From   TabID // MoveTab source
	To     TabID // MoveTab destination
	Title  string
}

func NewWindow() Command                 { return Command{Kind: CmdNewWindow} }
func ActivateWindow(w WindowID) Command  { return Command{Kind: CmdActivateWindow, Window: w} }
func DeactivateWindow(w WindowID) Command {
	return Command{Kind: CmdDeactivateWindow, Window: w}
}
func CloseWindow(w WindowID) Command { return Command{Kind: CmdCloseWindow, Window: w} }
func CreateTab(w WindowID) Command   { return Command{Kind: CmdCreateTab, Window: w} }
func MoveTab(w WindowID, from, to TabID) Command {
	return Command{Kind: CmdMoveTab, Window: w, From: from, To: to}
}
func SetTabTitle(w WindowID, t TabID, title string) Command {
	return Command{Kind: CmdSetTabTitle, Window: w, Tab: t, Title: title}
}
func ActivateTab(w WindowID, t TabID) Command {
	return Command{Kind: CmdActivateTab, Window: w, Tab: t}
}
func CloseTab(w WindowID, t TabID) Command {
	return Command{Kind: CmdCloseTab, Window: w, Tab: t}
}
func CloseCurrentTab(w WindowID) Command { return Command{Kind: CmdCloseCurrentTab, Window: w} }
