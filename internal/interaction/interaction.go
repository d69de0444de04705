// Where: internal/interaction/interaction.go
// What: Interactive primitives for CLI prompts and TTY detection.
// Why: Centralize user interaction to keep command handlers focused on orchestration.
package interaction

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/vessel-dev/vessel/internal/ports"
)

// ErrAborted is returned when the user declines to pick an option.
var ErrAborted = errors.New("selection aborted")

// IsTerminal reports whether the file refers to a terminal device.
var IsTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NewPrompter returns a keyboard-driven prompter when in is a terminal and a
// numbered line prompter otherwise.
func NewPrompter(in *os.File, out io.Writer) ports.Prompter {
	if IsTerminal(in) {
		return HuhPrompter{}
	}
	return NumberedPrompter{In: in, Out: out}
}

// NumberedPrompter lists options with 1-based numbers and reads the choice
// from In. Entering "q" aborts.
type NumberedPrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p NumberedPrompter) SelectIndex(title string, labels []string) (int, error) {
	if len(labels) == 0 {
		return -1, ErrAborted
	}
	in := p.In
	if in == nil {
		in = os.Stdin
	}
	out := p.Out
	if out == nil {
		out = os.Stderr
	}

	fmt.Fprintln(out, title)
	for i, label := range labels {
		fmt.Fprintf(out, "  %d. %s\n", i+1, label)
	}

	reader := bufio.NewReader(in)
	for {
		fmt.Fprintf(out, "Enter a number (1-%d) or 'q' to quit: ", len(labels))
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return -1, fmt.Errorf("read selection: %w", err)
		}
		answer := strings.TrimSpace(line)
		if strings.EqualFold(answer, "q") {
			return -1, ErrAborted
		}
		if choice, convErr := strconv.Atoi(answer); convErr == nil && choice >= 1 && choice <= len(labels) {
			return choice - 1, nil
		}
		if errors.Is(err, io.EOF) {
			return -1, ErrAborted
		}
		fmt.Fprintln(out, "Invalid choice.")
	}
}
