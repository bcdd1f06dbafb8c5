package pattern

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/sqlgrep/pkg/sqlgrep"
)

func TestNew_CollapsesToAlways(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind Kind
		opts Options
	}{
		{"empty regex", "", KindRegex, Options{}},
		{"universal regex", ".*", KindRegex, Options{}},
		{"universal regex whole string", ".*", KindRegex, Options{WholeString: true}},
		{"empty fixed", "", KindFixed, Options{CaseInsensitive: true}},
		{"explicit always", "ignored", KindAlways, Options{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.text, tt.kind, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, KindAlways, p.Kind())

			for _, candidate := range []string{"", "x", "Alice", "line\nbreak"} {
				assert.True(t, p.Match(candidate), "candidate %q", candidate)
			}
		})
	}
}

func TestNew_FixedDotStarIsLiteral(t *testing.T) {
	p, err := New(".*", KindFixed, Options{})
	require.NoError(t, err)
	assert.Equal(t, KindFixed, p.Kind())
	assert.False(t, p.Match("abc"))
	assert.True(t, p.Match("a.*b"))
}

func TestFixed_Match(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		opts      Options
		candidate string
		want      bool
	}{
		{"substring hit", "lic", Options{}, "Alice", true},
		{"substring case miss", "ALI", Options{}, "Alice", false},
		{"substring case-insensitive", "ALI", Options{CaseInsensitive: true}, "Alice", true},
		{"whole exact", "Alice", Options{WholeString: true}, "Alice", true},
		{"whole rejects longer", "Alice", Options{WholeString: true}, "Alice B", false},
		{"whole case-insensitive", "ABC", Options{CaseInsensitive: true, WholeString: true}, "abc", true},
		{"whole case-insensitive rejects surrounding", "ABC", Options{CaseInsensitive: true, WholeString: true}, "xabcx", false},
		{"whole case-insensitive rejects suffix", "ABC", Options{CaseInsensitive: true, WholeString: true}, "abcd", false},
		{"no regex meaning", "a+", Options{}, "aaa", false},
		{"unicode case fold", "ÉCOLE", Options{CaseInsensitive: true}, "une école", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.text, KindFixed, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Match(tt.candidate))
		})
	}
}

func TestRegex_Match(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		opts      Options
		candidate string
		want      bool
	}{
		{"anchored prefix", "^Ali", Options{}, "Alice", true},
		{"anchored prefix miss", "^Ali", Options{}, "Bob Alice", false},
		{"case sensitive by default", "alice", Options{}, "Alice", false},
		{"case-insensitive flag", "alice", Options{CaseInsensitive: true}, "ALICE", true},
		{"substring anywhere", `\d+`, Options{}, "id 42 here", true},
		{"whole string full span", `\d+`, Options{WholeString: true}, "42", true},
		{"whole string partial span", `\d+`, Options{WholeString: true}, "42a", false},
		{"whole string not at start", `\d+`, Options{WholeString: true}, "a42", false},
		{"whole string first match only", "a|ab", Options{WholeString: true}, "ab", false},
		{"whole string empty candidate", "x*", Options{WholeString: true}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.text, KindRegex, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, KindRegex, p.Kind())
			assert.Equal(t, tt.want, p.Match(tt.candidate))
		})
	}
}

func TestNew_InvalidRegex(t *testing.T) {
	for _, text := range []string{"(", "[a-", `\p{Nope}`, "a{2,1}"} {
		t.Run(text, func(t *testing.T) {
			p, err := New(text, KindRegex, Options{})
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, sqlgrep.ErrPatternCompile))
			assert.Equal(t, sqlgrep.ExitPatternError, sqlgrep.ExitCodeForError(err))
		})
	}
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New("x", Kind(99), Options{})
	assert.ErrorIs(t, err, sqlgrep.ErrPatternCompile)
}
