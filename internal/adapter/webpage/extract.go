package webpage

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// extractText walks the HTML token stream and collects readable text,
// skipping script/style/noscript subtrees. Whitespace is collapsed per text
// node and nodes are joined with single spaces.
func extractText(r io.Reader) (title, text string) {
	var (
		b       strings.Builder
		inTitle bool
		skip    int
	)

	tok := html.NewTokenizer(r)
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return title, strings.TrimSpace(b.String())

		case html.StartTagToken:
			name, _ := tok.TagName()
			switch string(name) {
			case "script", "style", "noscript":
				skip++
			case "title":
				inTitle = true
			}

		case html.EndTagToken:
			name, _ := tok.TagName()
			switch string(name) {
			case "script", "style", "noscript":
				if skip > 0 {
					skip--
				}
			case "title":
				inTitle = false
			}

		case html.TextToken:
			if skip > 0 {
				continue
			}
			fields := strings.Fields(string(tok.Text()))
			if len(fields) == 0 {
				continue
			}
			chunk := strings.Join(fields, " ")
			if inTitle {
				if title == "" {
					title = chunk
				}
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(chunk)
		}
	}
}
