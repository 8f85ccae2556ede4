package auth

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

var (
	_ Notifier  = (*ConsoleNotifier)(nil)
	_ Navigator = (*ConsoleNavigator)(nil)
)

// ConsoleNotifier prints notices to a terminal. Writes are serialized so
// concurrent notices do not interleave.
type ConsoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
	c   *color.Color
}

func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out, c: color.New(color.FgRed, color.Bold)}
}

func (n *ConsoleNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.c.Fprintf(n.out, "! %s\n", message)
}

// ConsoleNavigator stands in for page navigation in a terminal: it tells the
// user where to go next and remembers the last destination.
type ConsoleNavigator struct {
	mu      sync.Mutex
	out     io.Writer
	hints   map[string]string
	current string
}

// NewConsoleNavigator creates a navigator; hints maps a path to the command
// that reaches it (e.g. "/" -> "hrms login").
func NewConsoleNavigator(out io.Writer, hints map[string]string) *ConsoleNavigator {
	return &ConsoleNavigator{out: out, hints: hints}
}

func (n *ConsoleNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.current = path
	msg := fmt.Sprintf("-> %s", path)
	if hint, ok := n.hints[path]; ok {
		msg += fmt.Sprintf(" (run `%s`)", hint)
	}
	color.New(color.FgYellow).Fprintln(n.out, msg)
}

// Current returns the last path navigated to.
func (n *ConsoleNavigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
