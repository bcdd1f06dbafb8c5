// Package pattern decides whether a normalized cell matches the search pattern.
//
// A Pattern is built once per run and is immutable afterwards, so it can be
// shared freely between goroutines. Three variants exist:
//
//   - Always: the empty pattern (or the universal regex ".*") matches every cell
//     without compiling anything.
//   - Fixed: literal text, compared by equality or containment.
//   - Regex: an RE2 expression; case-insensitivity is a compile-time flag.
//
// # Example Usage
//
//	p, err := pattern.New("^Ali", pattern.KindRegex, pattern.Options{})
//	if err != nil {
//	    return err // wraps sqlgrep.ErrPatternCompile
//	}
//	p.Match("Alice") // true
package pattern
