package output

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title string
	tty   func() bool
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// withTTY overrides terminal detection.
func withTTY(isTTY func() bool) SpinnerOption {
	return func(c *spinnerConfig) {
		c.tty = isTTY
	}
}

// RunWithSpinner executes an action with a spinner on a terminal and
// directly otherwise. Returns the action's error if any.
func RunWithSpinner(ctx context.Context, action func() error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{
		title: "Working...",
		tty:   IsTTY,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if !cfg.tty() {
		return action()
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- action()
	}()

	var actionErr error
	done := false

	spinnerErr := spinner.New().Title(cfg.title).Action(func() {
		select {
		case <-ctx.Done():
		case actionErr = <-errCh:
			done = true
		}
	}).Run()

	if spinnerErr != nil {
		spinnerErr = fmt.Errorf("spinner error: %w", spinnerErr)
		if !done {
			return errors.Join(spinnerErr, awaitAction(ctx, errCh))
		}
		return spinnerErr
	}
	if done {
		return actionErr
	}

	return awaitAction(ctx, errCh)
}

// awaitAction blocks until the action returns, even after ctx is
// cancelled, so files the action holds are flushed and closed before the
// caller can exit.
func awaitAction(ctx context.Context, errCh <-chan error) error {
	err := <-errCh
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
