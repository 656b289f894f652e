// Package main is the entry point for obsi-bundle.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/obsi2/bundler/internal/cmd"
	oerrors "github.com/obsi2/bundler/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var exitErr *oerrors.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Printed {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(oerrors.ExitCodeFromError(err))
	}
}
