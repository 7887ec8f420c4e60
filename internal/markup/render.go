package markup

import (
	"strings"
)

const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatSlack    = "slack"
)

// Renderer turns a Doc into one platform's text dialect.
type Renderer interface {
	Format() string
	Render(d Doc) string
}

// RendererFor resolves a format name or platform alias, defaulting to HTML.
func RendererFor(format string) Renderer {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatMarkdown, "md", "discord":
		return Markdown{}
	case FormatSlack, "mrkdwn":
		return Slack{}
	default:
		return HTML{}
	}
}

type dialect interface {
	text(s string) string
	wrap(n Node, inner string) string
	code(s string) string
	block(lines []string) string
}

func render(d dialect, doc Doc) string {
	var sb strings.Builder
	for i, line := range doc.Lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, n := range line {
			sb.WriteString(renderNode(d, n))
		}
	}
	return sb.String()
}

func renderNode(d dialect, n Node) string {
	switch v := n.(type) {
	case Text:
		return d.text(string(v))
	case Code:
		return d.code(string(v))
	case CodeBlock:
		return d.block(v.Lines)
	case Bold:
		return d.wrap(v, renderChildren(d, v.Children))
	case Italic:
		return d.wrap(v, renderChildren(d, v.Children))
	case Underline:
		return d.wrap(v, renderChildren(d, v.Children))
	case Link:
		return d.wrap(v, renderChildren(d, v.Children))
	default:
		return ""
	}
}

func renderChildren(d dialect, children []Node) string {
	var sb strings.Builder
	for _, c := range children {
		sb.WriteString(renderNode(d, c))
	}
	return sb.String()
}

// HTML renders Telegram's HTML subset.
type HTML struct{}

var (
	htmlText = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	htmlAttr = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "'", "&#39;", `"`, "&quot;")
)

func (HTML) Format() string        { return FormatHTML }
func (h HTML) Render(d Doc) string { return render(h, d) }

func (HTML) text(s string) string { return htmlText.Replace(s) }
func (HTML) code(s string) string { return "<code>" + htmlText.Replace(s) + "</code>" }

func (HTML) block(lines []string) string {
	return "<pre>" + htmlText.Replace(strings.Join(lines, "\n")) + "</pre>"
}

func (HTML) wrap(n Node, inner string) string {
	switch v := n.(type) {
	case Bold:
		return "<b>" + inner + "</b>"
	case Italic:
		return "<i>" + inner + "</i>"
	case Underline:
		return "<u>" + inner + "</u>"
	case Link:
		return "<a href='" + htmlAttr.Replace(v.URL) + "'>" + inner + "</a>"
	}
	return inner
}

// Markdown renders Discord-flavoured Markdown.
type Markdown struct{}

var (
	mdText = strings.NewReplacer(
		`\`, `\\`, "*", `\*`, "_", `\_`, "~", `\~`, "`", "\\`", "|", `\|`,
		"[", `\[`, "]", `\]`,
	)
	mdURL = strings.NewReplacer("(", "%28", ")", "%29", " ", "%20")
)

func (Markdown) Format() string        { return FormatMarkdown }
func (m Markdown) Render(d Doc) string { return render(m, d) }

func (Markdown) text(s string) string { return mdText.Replace(s) }

// Backticks cannot be escaped inside code spans.
func (Markdown) code(s string) string { return "`" + strings.ReplaceAll(s, "`", "'") + "`" }

func (Markdown) block(lines []string) string {
	body := strings.ReplaceAll(strings.Join(lines, "\n"), "```", "'''")
	return "```\n" + body + "\n```"
}

func (Markdown) wrap(n Node, inner string) string {
	switch v := n.(type) {
	case Bold:
		return "**" + inner + "**"
	case Italic:
		return "*" + inner + "*"
	case Underline:
		return "__" + inner + "__"
	case Link:
		return "[" + inner + "](" + mdURL.Replace(v.URL) + ")"
	}
	return inner
}

// Slack renders Slack mrkdwn. Underline has no mrkdwn form and is dropped.
type Slack struct{}

var slackText = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func (Slack) Format() string        { return FormatSlack }
func (s Slack) Render(d Doc) string { return render(s, d) }

func (Slack) text(s string) string { return slackText.Replace(s) }
func (Slack) code(s string) string { return "`" + slackText.Replace(strings.ReplaceAll(s, "`", "'")) + "`" }

func (Slack) block(lines []string) string {
	return "```" + slackText.Replace(strings.Join(lines, "\n")) + "```"
}

func (Slack) wrap(n Node, inner string) string {
	switch v := n.(type) {
	case Bold:
		return "*" + inner + "*"
	case Italic:
		return "_" + inner + "_"
	case Link:
		url := strings.NewReplacer("|", "%7C", ">", "%3E", "<", "%3C").Replace(v.URL)
		return "<" + url + "|" + inner + ">"
	}
	return inner
}
