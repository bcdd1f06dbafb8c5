package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/sqlgrep/internal/db"
	"github.com/vvka-141/sqlgrep/internal/files/filesystem"
	"github.com/vvka-141/sqlgrep/internal/logging"
	"github.com/vvka-141/sqlgrep/internal/scan"
	"github.com/vvka-141/sqlgrep/internal/services"
	"github.com/vvka-141/sqlgrep/internal/tui"
)

func runGrep(cmd *cobra.Command, args []string, flags *grepFlagValues) error {
	cfg, colorMode, err := buildScanConfig(cmd, args, flags)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(logging.Verbosity(flags.verbose, flags.quiet))
	defer func() { _ = logger.Sync() }()
	logger.Verbose("Database: %s", logging.SanitizeURI(cfg.DatabaseURI))

	out := cmd.OutOrStdout()
	outFile, _ := out.(*os.File)
	highlighter := tui.NewHighlighter(out, tui.ColorEnabled(colorMode, outFile))

	grepper := services.NewGrepService(
		db.NewConnector,
		scan.NewMatchWriter(out, highlighter),
		logger,
		cmd.InOrStdin(),
		filesystem.NewOSFileSystem(),
	)

	// Ctrl+C and SIGTERM cancel the scan between rows
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := grepper.Grep(ctx, cfg)
	logger.Verbose("Scanned %d queries, %d rows, %d cells: %d matches, %d warnings",
		stats.Queries, stats.Rows, stats.Cells, stats.Matches, stats.Warnings)
	return err
}
