package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequirePattern validates the `<pattern> [database-uri]` positional arguments.
// Returns a helpful error message with usage and examples if the pattern is
// missing or there are too many arguments.
func RequirePattern(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <pattern>

Usage: %s

Example:
  %s 'alice@example\.com' ./app.db -t users`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 2 {
		return fmt.Errorf("accepts at most 2 arg(s), received %d", len(args))
	}
	return nil
}
