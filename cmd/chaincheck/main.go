package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0   // All required checks passed
	ExitCheckFailed = 1   // One or more required checks failed
	ExitError       = 2   // Configuration or runtime error
	ExitInterrupted = 130 // Interrupted by SIGINT
)

// CheckFailureError indicates that the run completed, but one or more
// required checks failed.
type CheckFailureError struct {
	Message string
}

func (e *CheckFailureError) Error() string {
	return e.Message
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := execute(ctx)
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)

	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		os.Exit(ExitInterrupted)
	}

	// Check error type to determine exit code
	var checkErr *CheckFailureError
	if errors.As(err, &checkErr) {
		os.Exit(ExitCheckFailed)
	}

	// All other errors are configuration/runtime errors
	os.Exit(ExitError)
}
