// Command matsteps prints the step-by-step multiplication of two 2×2
// matrices, serves it in a local viewer or explores it interactively.
package main

import (
	"context"
	"os"

	"github.com/agbru/matsteps/internal/app"
	apperrors "github.com/agbru/matsteps/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
