// Package notify alerts the operator about problems in the current commit.
package notify

import (
	"errors"
	"fmt"
	"io"

	"github.com/ncruces/zenity"

	"bslcheck/internal/port"
)

const (
	ModeDialog  = "dialog"
	ModeConsole = "console"
	ModeNone    = "none"
)

// New returns the notifier for mode.
func New(mode string, out io.Writer) (port.Notifier, error) {
	switch mode {
	case ModeDialog, "":
		return Dialog{}, nil
	case ModeConsole:
		return Console{out: out}, nil
	case ModeNone:
		return None{}, nil
	default:
		return nil, fmt.Errorf("unsupported notify mode: %s", mode)
	}
}

// Dialog shows a modal warning box and waits for the operator to close it.
type Dialog struct{}

func (Dialog) Notify(title, message string) error {
	err := zenity.Warning(message, zenity.Title(title))
	if errors.Is(err, zenity.ErrCanceled) {
		return nil
	}
	return err
}

type Console struct {
	out io.Writer
}

func (c Console) Notify(title, message string) error {
	_, err := fmt.Fprintf(c.out, "%s\n%s\n", title, message)
	return err
}

type None struct{}

func (None) Notify(string, string) error { return nil }
