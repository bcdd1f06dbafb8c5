package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

// Kind selects how the pattern text is interpreted.
type Kind int

const (
	// KindAlways matches every candidate.
	KindAlways Kind = iota
	// KindFixed treats the text as a literal string.
	KindFixed
	// KindRegex treats the text as a regular expression.
	KindRegex
)

// String returns a human-readable string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindAlways:
		return "always"
	case KindFixed:
		return "fixed"
	case KindRegex:
		return "regex"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Options tune a Fixed or Regex pattern.
type Options struct {
	CaseInsensitive bool
	WholeString     bool
}

// Pattern is a compiled, immutable matcher.
type Pattern interface {
	// Match reports whether candidate is accepted.
	Match(candidate string) bool

	// Kind returns the variant the pattern collapsed to at construction time.
	Kind() Kind
}

// New builds a Pattern from text.
// Empty text, or ".*" in regex mode, yields the Always variant.
// A regex that fails to compile returns an error wrapping sqlgrep.ErrPatternCompile.
func New(text string, kind Kind, opts Options) (Pattern, error) {
	switch kind {
	case KindAlways:
		return always{}, nil

	case KindFixed:
		if text == "" {
			return always{}, nil
		}
		if opts.CaseInsensitive {
			text = strings.ToLower(text)
		}
		return &fixed{text: text, opts: opts}, nil

	case KindRegex:
		if text == "" || text == sqlgrep.UniversalRegex {
			return always{}, nil
		}
		expr := text
		if opts.CaseInsensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", sqlgrep.ErrPatternCompile, text, err)
		}
		return &regex{re: re, opts: opts}, nil

	default:
		return nil, fmt.Errorf("%w: unknown pattern kind %v", sqlgrep.ErrPatternCompile, kind)
	}
}

type always struct{}

func (always) Match(string) bool { return true }
func (always) Kind() Kind        { return KindAlways }

type fixed struct {
	// text is already lowercased when opts.CaseInsensitive is set.
	text string
	opts Options
}

func (f *fixed) Match(candidate string) bool {
	if f.opts.CaseInsensitive {
		candidate = strings.ToLower(candidate)
	}
	if f.opts.WholeString {
		return candidate == f.text
	}
	return strings.Contains(candidate, f.text)
}

func (f *fixed) Kind() Kind { return KindFixed }

type regex struct {
	re   *regexp.Regexp
	opts Options
}

// Match looks at the first match only. In whole-string mode that match must
// start at offset 0 and cover the entire candidate.
func (r *regex) Match(candidate string) bool {
	loc := r.re.FindStringIndex(candidate)
	if loc == nil {
		return false
	}
	if r.opts.WholeString {
		return loc[0] == 0 && loc[1] == len(candidate)
	}
	return true
}

func (r *regex) Kind() Kind { return KindRegex }
