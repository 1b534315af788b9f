package api

import (
	"fmt"
	"strings"
)

// MaxChatExcerpt caps expected/got excerpts in a chat report.
const MaxChatExcerpt = 300

// ChatReport renders a response as the plain-text reply sent to a chat user.
func ChatReport(resp EvalResponse) string {
	var sb strings.Builder
	if !resp.Ok {
		msg := "evaluation failed"
		if resp.Error != nil {
			msg = *resp.Error
		}
		fmt.Fprintf(&sb, "⚠️ Could not evaluate your submission: %s", msg)
		return sb.String()
	}

	sb.WriteString(resp.Summary)
	if resp.CompileError != nil {
		sb.WriteString("\n\n🛠 Compilation failed:\n")
		sb.WriteString(Excerpt(*resp.CompileError, MaxChatExcerpt*2))
		return sb.String()
	}
	sb.WriteString("\n")
	for _, r := range resp.Results {
		sb.WriteString("\n")
		switch {
		case r.Ok:
			fmt.Fprintf(&sb, "✅ Case %d", r.Case)
		case r.TimedOut:
			fmt.Fprintf(&sb, "⏳ Case %d: Timed out", r.Case)
		default:
			fmt.Fprintf(&sb, "❌ Case %d", r.Case)
			if r.Reason != "" {
				fmt.Fprintf(&sb, ": %s", r.Reason)
			}
			fmt.Fprintf(&sb, "\nExpected:\n%s\nGot:\n%s",
				Excerpt(r.Expected, MaxChatExcerpt), Excerpt(r.Got, MaxChatExcerpt))
		}
	}
	return sb.String()
}

// Excerpt trims surrounding whitespace and cuts s to n bytes on a rune
// boundary, marking the cut with an ellipsis.
func Excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut] + "…"
}
