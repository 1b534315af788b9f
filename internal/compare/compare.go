// Package compare decides whether a program's output matches the expected
// sample output.
//
// The policy is strict: trailing whitespace on each line and trailing blank
// lines are ignored, everything else must match byte for byte. There is no
// numeric tolerance and no support for several accepted answers.
package compare

import "strings"

// Normalize rewrites s into the canonical form used for comparison.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r\f\v")
	}
	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}
	return strings.Join(lines[:end], "\n")
}

// Equal reports whether actual matches expected after normalization.
func Equal(expected, actual string) bool {
	return Normalize(expected) == Normalize(actual)
}

// Diff returns the first 1-based line at which the normalized texts differ.
// ok is true when they are equal.
func Diff(expected, actual string) (line int, ok bool) {
	exp := strings.Split(Normalize(expected), "\n")
	act := strings.Split(Normalize(actual), "\n")
	n := min(len(exp), len(act))
	for i := 0; i < n; i++ {
		if exp[i] != act[i] {
			return i + 1, false
		}
	}
	if len(exp) != len(act) {
		return n + 1, false
	}
	return 0, true
}
