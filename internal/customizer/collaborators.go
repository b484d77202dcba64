package customizer

import (
	"context"
	"sync"
)

// Variant selects how a notification is presented.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a short user-facing message.
type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// Notifier shows notifications.
type Notifier interface {
	Notify(Notification)
}

// ConfirmOptions describes a confirm/cancel dialog. Exactly one of the
// callbacks is expected to fire.
type ConfirmOptions struct {
	Title       string
	Description string
	ConfirmText string
	CancelText  string
	OnConfirm   func()
	OnCancel    func()
}

// Dialog presents confirmation dialogs.
type Dialog interface {
	Open(ConfirmOptions)
	Close()
}

type dialogKey struct{}

// WithDialog returns a context whose confirmations are answered by d
// instead of the customizer's own dialog.
func WithDialog(ctx context.Context, d Dialog) context.Context {
	return context.WithValue(ctx, dialogKey{}, d)
}

func (c *Customizer) dialogFor(ctx context.Context) Dialog {
	if d, ok := ctx.Value(dialogKey{}).(Dialog); ok && d != nil {
		return d
	}
	return c.dialog
}

// withDefaults fills the button labels the way the dialog store does.
func (o ConfirmOptions) withDefaults() ConfirmOptions {
	if o.ConfirmText == "" {
		o.ConfirmText = "Confirm"
	}
	if o.CancelText == "" {
		o.CancelText = "Cancel"
	}
	return o
}

// confirm opens a dialog and blocks until the user answers. A cancelled
// context counts as a cancel.
func confirm(ctx context.Context, d Dialog, opts ConfirmOptions) bool {
	answer := make(chan bool, 1)
	var once sync.Once
	reply := func(v bool) {
		once.Do(func() { answer <- v })
	}

	opts = opts.withDefaults()
	opts.OnConfirm = func() { reply(true) }
	opts.OnCancel = func() { reply(false) }
	d.Open(opts)

	select {
	case v := <-answer:
		return v
	case <-ctx.Done():
		d.Close()
		return false
	}
}

// inform opens a dialog that only needs acknowledging and does not wait
// for it.
func inform(d Dialog, title, description string) {
	d.Open(ConfirmOptions{
		Title:       title,
		Description: description,
		ConfirmText: "OK",
		OnConfirm:   func() {},
		OnCancel:    func() {},
	}.withDefaults())
}
