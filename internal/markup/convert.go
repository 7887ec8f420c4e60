package markup

import (
	"regexp"
	"strings"
)

var (
	htmlToDiscord = strings.NewReplacer(
		"<b>", "**", "</b>", "**",
		"<i>", "*", "</i>", "*",
		"<u>", "__", "</u>", "__",
		"<code>", "`", "</code>", "`",
		"<pre>", "```\n", "</pre>", "\n```",
	)
	anchorPattern = regexp.MustCompile(`<a href='([^']+)'>([^<]+)</a>`)
)

// convertHTML rewrites already-rendered Telegram HTML into Discord Markdown
// by direct delimiter substitution. Anchors are only recognised in the
// single-quoted form with plain text inside. Any other tag passes through.
func convertHTML(s string) string {
	s = htmlToDiscord.Replace(s)
	return anchorPattern.ReplaceAllString(s, "[$2]($1)")
}
