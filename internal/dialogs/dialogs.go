// Package dialogs implements the confirmation and notification
// collaborators of the customizer for terminals, scripts and tests.
package dialogs

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/thatcatcamp/tint/internal/customizer"
)

// Auto answers every dialog immediately.
type Auto struct {
	Answer bool

	mu     sync.Mutex
	opened []customizer.ConfirmOptions
}

// NewAuto returns a dialog that always confirms (or always cancels).
func NewAuto(answer bool) *Auto {
	return &Auto{Answer: answer}
}

func (d *Auto) Open(opts customizer.ConfirmOptions) {
	d.mu.Lock()
	d.opened = append(d.opened, opts)
	d.mu.Unlock()

	if d.Answer {
		if opts.OnConfirm != nil {
			opts.OnConfirm()
		}
		return
	}
	if opts.OnCancel != nil {
		opts.OnCancel()
	}
}

func (d *Auto) Close() {}

// Opened returns the titles of every dialog shown so far.
func (d *Auto) Opened() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	titles := make([]string, len(d.opened))
	for i, o := range d.opened {
		titles[i] = o.Title
	}
	return titles
}

// Terminal asks on out and reads the answer from in. Typing "yes" or "y"
// confirms; anything else, including end of input, cancels.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer

	title lipgloss.Style
}

// NewTerminal returns a prompt over in and out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:    bufio.NewReader(in),
		out:   out,
		title: lipgloss.NewStyle().Bold(true),
	}
}

func (d *Terminal) Open(opts customizer.ConfirmOptions) {
	fmt.Fprintln(d.out, d.title.Render(opts.Title))
	if opts.Description != "" {
		fmt.Fprintln(d.out, opts.Description)
	}

	// acknowledgement-only dialogs have nothing to decide
	if opts.ConfirmText == "OK" {
		if opts.OnConfirm != nil {
			opts.OnConfirm()
		}
		return
	}

	fmt.Fprintf(d.out, "Type \"yes\" to %s, anything else to %s: ",
		strings.ToLower(opts.ConfirmText), strings.ToLower(opts.CancelText))
	line, _ := d.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "yes", "y":
		if opts.OnConfirm != nil {
			opts.OnConfirm()
		}
	default:
		if opts.OnCancel != nil {
			opts.OnCancel()
		}
	}
}

func (d *Terminal) Close() {
	fmt.Fprintln(d.out)
}

// Recorder keeps every notification.
type Recorder struct {
	mu  sync.Mutex
	got []customizer.Notification
}

func (r *Recorder) Notify(n customizer.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

// All returns the notifications received so far.
func (r *Recorder) All() []customizer.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]customizer.Notification(nil), r.got...)
}

// Drain returns and forgets the notifications received so far.
func (r *Recorder) Drain() []customizer.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.got
	r.got = nil
	return out
}

// Printer writes notifications to a terminal, destructive ones in red.
type Printer struct {
	out         io.Writer
	title       lipgloss.Style
	destructive lipgloss.Style
}

// NewPrinter returns a notifier writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:         out,
		title:       lipgloss.NewStyle().Bold(true),
		destructive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444")),
	}
}

func (p *Printer) Notify(n customizer.Notification) {
	style := p.title
	if n.Variant == customizer.VariantDestructive {
		style = p.destructive
	}
	if n.Description == "" {
		fmt.Fprintln(p.out, style.Render(n.Title))
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", style.Render(n.Title), n.Description)
}

// Logger logs notifications.
type Logger struct {
	log zerolog.Logger
}

// NewLogger returns a notifier writing to log.
func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log.With().Str("component", "notifications").Logger()}
}

func (l *Logger) Notify(n customizer.Notification) {
	ev := l.log.Info()
	if n.Variant == customizer.VariantDestructive {
		ev = l.log.Warn()
	}
	ev.Str("title", n.Title).Msg(n.Description)
}

// Multi fans notifications out to several notifiers.
type Multi []customizer.Notifier

func (m Multi) Notify(n customizer.Notification) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}
