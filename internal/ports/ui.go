// Where: internal/ports/ui.go
// What: User interface abstraction for workflows.
// Why: Provide a single output surface so workflows stay UI-agnostic.
package ports

import (
	"io"

	"github.com/vessel-dev/vessel/internal/ui"
)

// KeyValue is a key/value pair rendered inside a block.
type KeyValue struct {
	Key   string
	Value any
}

// UserInterface exposes high-level output helpers used by workflows.
type UserInterface interface {
	ui.UserInterface
	Block(emoji, title string, rows []KeyValue)
	Table(headers []string, rows [][]string)
}

// NewConsoleUI returns a UserInterface backed by the console helper.
func NewConsoleUI(out io.Writer) UserInterface {
	return consoleUI{Console: ui.New(out)}
}

// NewPlainUI returns a UserInterface without emoji prefixes.
func NewPlainUI(out io.Writer) UserInterface {
	return consoleUI{Console: ui.NewWithEmoji(out, false)}
}

type consoleUI struct {
	*ui.Console
}

func (c consoleUI) Block(emoji, title string, rows []KeyValue) {
	c.Header(emoji, title)
	for _, kv := range rows {
		c.Item(kv.Key, kv.Value)
	}
}
