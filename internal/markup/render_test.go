package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleDoc() Doc {
	var d Doc
	d.Add(B(Text("[VCT Americas]")))
	d.Add(A("https://www.youtube.com/results?search_query=vct+americas+a+b", Text("A vs B")), Text(" "), B(Text("(Live)")))
	d.Add(U(Text("T1 vs GEN "), I(Text("(04.01 17:00)"))))
	d.Blank()
	d.Add(CodeBlock{Lines: []string{"WIN  [20/10/5]", "LOSS  [9/15/2]"}})
	d.Add(Code("#updated 26.04.01 12:00:00"))
	return d
}

func TestHTML_Render(t *testing.T) {
	want := "<b>[VCT Americas]</b>\n" +
		"<a href='https://www.youtube.com/results?search_query=vct+americas+a+b'>A vs B</a> <b>(Live)</b>\n" +
		"<u>T1 vs GEN <i>(04.01 17:00)</i></u>\n" +
		"\n" +
		"<pre>WIN  [20/10/5]\nLOSS  [9/15/2]</pre>\n" +
		"<code>#updated 26.04.01 12:00:00</code>"

	assert.Equal(t, want, HTML{}.Render(sampleDoc()))
}

func TestMarkdown_Render(t *testing.T) {
	want := "**\\[VCT Americas\\]**\n" +
		"[A vs B](https://www.youtube.com/results?search_query=vct+americas+a+b) **(Live)**\n" +
		"__T1 vs GEN *(04.01 17:00)*__\n" +
		"\n" +
		"```\nWIN  [20/10/5]\nLOSS  [9/15/2]\n```\n" +
		"`#updated 26.04.01 12:00:00`"

	assert.Equal(t, want, Markdown{}.Render(sampleDoc()))
}

func TestSlack_Render(t *testing.T) {
	want := "*[VCT Americas]*\n" +
		"<https://www.youtube.com/results?search_query=vct+americas+a+b|A vs B> *(Live)*\n" +
		"T1 vs GEN _(04.01 17:00)_\n" +
		"\n" +
		"```WIN  [20/10/5]\nLOSS  [9/15/2]```\n" +
		"`#updated 26.04.01 12:00:00`"

	assert.Equal(t, want, Slack{}.Render(sampleDoc()))
}

func TestRenderers_EscapeUpstreamText(t *testing.T) {
	d := Single(B(Text("<script>&")), Text(" "), A("https://x.test/?a='1'", Text("a_b*c")))

	assert.Equal(t,
		"<b>&lt;script&gt;&amp;</b> <a href='https://x.test/?a=&#39;1&#39;'>a_b*c</a>",
		HTML{}.Render(d))
	assert.Equal(t,
		"**<script>&** [a\\_b\\*c](https://x.test/?a='1')",
		Markdown{}.Render(d))
	assert.Equal(t,
		"*&lt;script&gt;&amp;* <https://x.test/?a='1'|a_b*c>",
		Slack{}.Render(d))
}

func TestMarkdown_MatchesLegacyConversion(t *testing.T) {
	var d Doc
	d.Add(B(Text("[First Stand 2026]")))
	d.Add(Text("T1 vs HLE "), B(Text("(Bo5)")), Text(" "), I(Text("(03.15 17:00)")))
	d.Add(A("https://tracker.gg/valorant/profile/riot/lissa%23vlr/overview", Text("lissa#vlr")))

	html := HTML{}.Render(d)
	converted := convertHTML(html)

	// Brackets are escaped by the renderer but not by the legacy path.
	assert.Equal(t, "**[First Stand 2026]**\nT1 vs HLE **(Bo5)** *(03.15 17:00)*\n[lissa#vlr](https://tracker.gg/valorant/profile/riot/lissa%23vlr/overview)", converted)
	assert.Contains(t, Markdown{}.Render(d), "T1 vs HLE **(Bo5)** *(03.15 17:00)*")
}

func TestRendererFor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", FormatHTML},
		{"html", FormatHTML},
		{"telegram", FormatHTML},
		{"Markdown", FormatMarkdown},
		{"discord", FormatMarkdown},
		{"slack", FormatSlack},
		{"mrkdwn", FormatSlack},
		{"carrier-pigeon", FormatHTML},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RendererFor(tt.in).Format())
		})
	}
}

func TestDoc_Builders(t *testing.T) {
	var d Doc
	d.Add(Text("a")).Blank().Append(Single(Text("b")))

	assert.Len(t, d.Lines, 3)
	assert.Equal(t, "a\n\nb", HTML{}.Render(d))
}
