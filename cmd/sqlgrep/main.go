package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/sqlgrep/internal/cli"
	"github.com/vvka-141/sqlgrep/internal/logging"
	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(sqlgrep.ExitPanic)
		}
	}()

	if os.Getenv("SQLGREP_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "sqlgrep: %s\n", logging.SanitizeError(err))
		os.Exit(sqlgrep.ExitCodeForError(err))
	}
}
