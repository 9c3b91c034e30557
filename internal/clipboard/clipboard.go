// Package clipboard implements the Clipboard external contract from §6:
// copy-on-selection and paste for the terminal processor.
package clipboard

import "github.com/atotto/clipboard"

// Kind distinguishes the primary selection clipboard (X11 middle-click
// paste) from the regular clipboard. Non-X11 backends treat both the same.
type Kind int

const (
	KindClipboard Kind = iota
	KindSelection
)

// Clipboard stores and retrieves text for copy/paste.
type Clipboard interface {
	Store(kind Kind, text string) error
	Load(kind Kind) (string, error)
}

// System is backed by the OS clipboard via atotto/clipboard. It has no
// notion of a separate primary selection, so Selection writes/reads fall
// back to the same store as Clipboard.
type System struct{}

func (System) Store(_ Kind, text string) error {
	return clipboard.WriteAll(text)
}

func (System) Load(_ Kind) (string, error) {
	return clipboard.ReadAll()
}

// Memory is an in-process clipboard used by tests and by platforms with
// no OS clipboard available.
type Memory struct {
	clip, sel string
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Store(kind Kind, text string) error {
	if kind == KindSelection {
		m.sel = text
	} else {
		m.clip = text
	}
	return nil
}

func (m *Memory) Load(kind Kind) (string, error) {
	if kind == KindSelection {
		return m.sel, nil
	}
	return m.clip, nil
}
