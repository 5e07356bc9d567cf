package htmlutil

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockElements start a new line in the plain-text output.
var blockElements = map[atom.Atom]bool{
	atom.P:          true,
	atom.Div:        true,
	atom.Br:         true,
	atom.Li:         true,
	atom.Ul:         true,
	atom.Ol:         true,
	atom.Blockquote: true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
}

// PlainText converts an HTML fragment, such as a catalog book description,
// into readable text. Block elements become line breaks, entities are
// decoded, runs of whitespace collapse to one space, and blank lines are
// dropped. Script and style contents are discarded.
func PlainText(fragment string) string {
	if fragment == "" {
		return ""
	}

	var sb strings.Builder
	skipDepth := 0
	z := html.NewTokenizer(strings.NewReader(fragment))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// Either io.EOF or malformed input; keep what was read so far.
			break
		}

		switch tt {
		case html.TextToken:
			if skipDepth == 0 {
				sb.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if (a == atom.Script || a == atom.Style) && tt == html.StartTagToken {
				skipDepth++
				continue
			}
			if blockElements[a] {
				sb.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if (a == atom.Script || a == atom.Style) && skipDepth > 0 {
				skipDepth--
				continue
			}
			if blockElements[a] {
				sb.WriteByte('\n')
			}
		case html.ErrorToken, html.CommentToken, html.DoctypeToken:
		}
	}

	lines := strings.Split(sb.String(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		// Fields also splits on non-breaking spaces.
		if collapsed := strings.Join(strings.Fields(line), " "); collapsed != "" {
			out = append(out, collapsed)
		}
	}

	return strings.Join(out, "\n")
}
