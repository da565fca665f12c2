package tools

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/khanglvm/dev-tools-hub/internal/history"
)

// Base64 encodes and decodes standard padded Base64.
type Base64 struct{}

func (Base64) Actions() []string { return []string{"encode", "decode"} }

func (Base64) Apply(action, input string) (string, error) {
	switch action {
	case "encode":
		return base64.StdEncoding.EncodeToString([]byte(input)), nil
	case "decode":
		cleaned := strings.Join(strings.Fields(input), "")
		data, err := base64.StdEncoding.DecodeString(cleaned)
		if err != nil {
			// Accept unpadded input as well.
			var rawErr error
			data, rawErr = base64.RawStdEncoding.DecodeString(strings.TrimRight(cleaned, "="))
			if rawErr != nil {
				return "", invalid("base64", err)
			}
		}
		return string(data), nil
	}
	return "", ErrUnknownAction
}

func (Base64) historyRecord(action, input, output string) (history.Record, bool) {
	return history.Record{Input: input, Output: output, Action: titleAction(action)}, true
}

// URLEncoder percent-encodes URL components. Encoding leaves the same
// characters unescaped as JavaScript's encodeURIComponent: letters, digits
// and - _ . ! ~ * ' ( ).
type URLEncoder struct{}

func (URLEncoder) Actions() []string { return []string{"encode", "decode"} }

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func (URLEncoder) Apply(action, input string) (string, error) {
	switch action {
	case "encode":
		return componentUnescaper.Replace(url.QueryEscape(input)), nil
	case "decode":
		out, err := url.PathUnescape(input)
		if err != nil {
			return "", invalid("url", err)
		}
		return out, nil
	}
	return "", ErrUnknownAction
}

func (URLEncoder) historyRecord(action, input, output string) (history.Record, bool) {
	return history.Record{Input: input, Output: output, Action: "URL " + titleAction(action)}, true
}

func titleAction(action string) string {
	if action == "" {
		return ""
	}
	return strings.ToUpper(action[:1]) + action[1:]
}
