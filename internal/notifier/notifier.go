// Package notifier posts user-visible notifications through the tray companion
// or, when it is not running, to a terminal writer.
package notifier

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
)

// Notification is a single user-visible message with an optional action button.
type Notification struct {
	ID     int
	Title  string
	Body   string
	Action string
}

// Notifier posts and dismisses notifications.
type Notifier interface {
	Post(ctx context.Context, n Notification) error
	Dismiss(ctx context.Context, id int) error
}

// New returns the notifier for mode: "tray", "console", or "auto" (tray with console fallback).
func New(mode string, w io.Writer) Notifier {
	if w == nil {
		w = os.Stdout
	}
	switch mode {
	case "tray":
		return NewTray()
	case "console":
		return NewConsole(w)
	default:
		return NewFallback(NewTray(), NewConsole(w))
	}
}

// Console writes notifications to a writer.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Post(ctx context.Context, n Notification) error {
	_, err := fmt.Fprintf(c.w, "🔔 %s\n   %s\n", n.Title, n.Body)
	if err == nil && n.Action != "" {
		_, err = fmt.Fprintf(c.w, "   [%s]\n", n.Action)
	}
	return err
}

func (c *Console) Dismiss(ctx context.Context, id int) error {
	return nil
}

// Fallback tries Primary and posts through Secondary when it fails.
type Fallback struct {
	Primary   Notifier
	Secondary Notifier
}

func NewFallback(primary, secondary Notifier) *Fallback {
	return &Fallback{Primary: primary, Secondary: secondary}
}

func (f *Fallback) Post(ctx context.Context, n Notification) error {
	err := f.Primary.Post(ctx, n)
	if err == nil {
		return nil
	}
	logger.Debug("Primary notifier failed, falling back", "error", err)
	return f.Secondary.Post(ctx, n)
}

// Dismiss dismisses through both notifiers and reports the secondary's error
// only when both fail.
func (f *Fallback) Dismiss(ctx context.Context, id int) error {
	perr := f.Primary.Dismiss(ctx, id)
	serr := f.Secondary.Dismiss(ctx, id)
	if perr != nil && serr != nil {
		return serr
	}
	return nil
}
