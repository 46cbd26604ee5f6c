package tui

import (
	"fmt"
	"io"
	"sync"
)

// Toaster prints notifications as single styled lines.
type Toaster struct {
	mu     sync.Mutex
	out    io.Writer
	styles Styles
}

// NewToaster writes notifications to out.
func NewToaster(out io.Writer, styles Styles) *Toaster {
	return &Toaster{out: out, styles: styles}
}

// Success prints a success notification.
func (t *Toaster) Success(msg string) {
	t.print(t.styles.Success.Render("✓") + " " + msg)
}

// Error prints a failure notification.
func (t *Toaster) Error(msg string) {
	t.print(t.styles.Error.Render("✗") + " " + msg)
}

// Warn prints a warning that is not tied to a form.
func (t *Toaster) Warn(msg string) {
	t.print(t.styles.Warning.Render("!") + " " + msg)
}

func (t *Toaster) print(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, line)
}
