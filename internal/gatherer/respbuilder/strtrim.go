package respbuilder

import "strings"

// TrimToRect keeps at most maxHeight lines of at most maxWidth bytes each,
// marking every cut with "[...]".
func TrimToRect(s string, maxHeight int, maxWidth int) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	cutLines := len(lines) > maxHeight
	if cutLines {
		lines = lines[:maxHeight]
	}
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if len(line) > maxWidth {
			sb.WriteString(line[:maxWidth])
			sb.WriteString("[...]")
		} else {
			sb.WriteString(line)
		}
	}
	if cutLines {
		sb.WriteString("\n[...]")
	}
	return sb.String()
}
