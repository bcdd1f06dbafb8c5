package planner

import (
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/sqlgrep/internal/files/filesystem"
	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// LoadQuerySources resolves raw query source entries into SQL text.
//
//   - "-" reads all of stdin (only the first occurrence sees any data)
//   - "@path" reads the named file through fsys
//   - anything else is literal SQL
//
// Empty entries, and sources that resolve to blank text, are skipped.
// Unreadable sources return an error wrapping sqlgrep.ErrInvalidConfig.
func LoadQuerySources(entries []string, stdin io.Reader, fsys filesystem.FileSystemProvider) ([]string, error) {
	sources := make([]string, 0, len(entries))
	for _, entry := range entries {
		var text string
		switch {
		case entry == "":
			continue

		case entry == sqlgrep.StdinSource:
			if stdin == nil {
				return nil, fmt.Errorf("query source %q: no standard input: %w", entry, sqlgrep.ErrInvalidConfig)
			}
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("query source %q: %v: %w", entry, err, sqlgrep.ErrInvalidConfig)
			}
			text = string(data)

		case strings.HasPrefix(entry, sqlgrep.FileSourcePrefix):
			path := strings.TrimPrefix(entry, sqlgrep.FileSourcePrefix)
			if path == "" {
				return nil, fmt.Errorf("query source %q: missing file path: %w", entry, sqlgrep.ErrInvalidConfig)
			}
			data, err := fsys.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("query source %q: %v: %w", entry, err, sqlgrep.ErrInvalidConfig)
			}
			text = string(data)

		default:
			text = entry
		}

		if strings.TrimSpace(text) == "" {
			continue
		}
		sources = append(sources, text)
	}
	return sources, nil
}
