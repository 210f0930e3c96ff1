package telegram

import (
	"fmt"
	"strings"
	"time"
)

// Telegram rejects messages longer than 4096 characters.
const maxMessageLength = 4096

// FormatWeeklyDigest renders a weekly digest as a Markdown message.
func FormatWeeklyDigest(ticker string, weekEnding time.Time, summary string, sources []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Weekly Digest: %s*\n", ticker)
	fmt.Fprintf(&b, "_Week ending %s_\n\n", weekEnding.Format("2 Jan 2006"))
	b.WriteString(summary)

	if len(sources) > 0 {
		fmt.Fprintf(&b, "\n\nSources: %s", strings.Join(sources, ", "))
	}

	msg := b.String()
	if len(msg) > maxMessageLength {
		msg = msg[:maxMessageLength-3] + "..."
	}
	return msg
}
