package tools

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/khanglvm/dev-tools-hub/internal/history"
)

// HTMLViewer renders and beautifies HTML markup.
type HTMLViewer struct{}

func (HTMLViewer) Actions() []string { return []string{"preview", "beautify"} }

func (HTMLViewer) Apply(action, input string) (string, error) {
	switch action {
	case "preview":
		return previewDocument(input), nil
	case "beautify":
		return beautifyHTML(input)
	}
	return "", ErrUnknownAction
}

func (HTMLViewer) historyRecord(action, input, output string) (history.Record, bool) {
	if strings.TrimSpace(input) == "" {
		return history.Record{}, false
	}
	if action == "preview" {
		return history.Record{Input: input, Output: "HTML rendered", Action: "preview"}, true
	}
	return history.Record{Input: input, Output: output, Action: "beautify"}, true
}

// previewDocument wraps fragments in a minimal document so they can be
// opened directly in a browser.
func previewDocument(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	lower := strings.ToLower(input)
	if strings.Contains(lower, "<html") {
		return input
	}
	return "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"></head>\n<body>\n" + input + "\n</body>\n</html>\n"
}

// voidElements never have an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// beautifyHTML places every tag on its own line with two-space nesting.
func beautifyHTML(input string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(input))

	var sb strings.Builder
	depth := 0
	line := func(s string) {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(s)
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", invalid("html", err)
			}
			return sb.String(), nil
		case html.StartTagToken:
			name, _ := z.TagName()
			line(string(z.Raw()))
			if !voidElements[string(name)] {
				depth++
			}
		case html.EndTagToken:
			if depth > 0 {
				depth--
			}
			line(string(z.Raw()))
		case html.TextToken:
			if text := strings.TrimSpace(string(z.Raw())); text != "" {
				line(text)
			}
		default:
			line(strings.TrimSpace(string(z.Raw())))
		}
	}
}
