// Package progress reports per-file progress of long running merge and unmerge runs.
package progress

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// Reporter is advanced once per completed file.
type Reporter interface {
	// Start begins reporting. A negative total means the total is unknown.
	Start(total int)
	Increment()
	Stop()
}

type nop struct{}

func (nop) Start(int) {
}

func (nop) Increment() {
}

func (nop) Stop() {
}

// Nop returns a Reporter that does nothing.
func Nop() Reporter { return nop{} }

// Counter records calls; it is useful in tests.
type Counter struct {
	Total   int
	Count   int
	Started bool
	Stopped bool
}

func (c *Counter) Start(total int) {
	c.Total = total
	c.Started = true
}

func (c *Counter) Increment() {
	c.Count++
}

func (c *Counter) Stop() {
	c.Stopped = true
}

// Terminal draws a progress bar, or a spinner when the total is unknown.
type Terminal struct {
	out     *os.File
	title   string
	count   int
	bar     *pterm.ProgressbarPrinter
	spinner *pterm.SpinnerPrinter
}

// NewTerminal returns a Reporter drawing on out, or a no-op Reporter when out is not a terminal.
func NewTerminal(out *os.File, title string) Reporter {
	if out == nil || !term.IsTerminal(int(out.Fd())) {
		return Nop()
	}
	return &Terminal{out: out, title: title}
}

func (t *Terminal) Start(total int) {
	t.count = 0
	if total < 0 {
		t.spinner, _ = pterm.DefaultSpinner.
			WithWriter(t.out).
			WithRemoveWhenDone(true).
			Start(t.title)
		return
	}
	t.bar, _ = pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(t.title).
		WithWriter(t.out).
		WithRemoveWhenDone(true).
		Start()
}

func (t *Terminal) Increment() {
	t.count++
	switch {
	case t.bar != nil:
		t.bar.Increment()
	case t.spinner != nil:
		t.spinner.UpdateText(fmt.Sprintf("%s (%d files)", t.title, t.count))
	}
}

func (t *Terminal) Stop() {
	if t.bar != nil {
		_, _ = t.bar.Stop()
		t.bar = nil
	}
	if t.spinner != nil {
		_ = t.spinner.Stop()
		t.spinner = nil
	}
}
