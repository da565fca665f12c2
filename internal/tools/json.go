package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/khanglvm/dev-tools-hub/internal/history"
)

// JSONFormatter validates, indents and minifies JSON. Comments and
// trailing commas (JSONC) are accepted and stripped.
type JSONFormatter struct{}

func (JSONFormatter) Actions() []string { return []string{"format", "minify"} }

func (JSONFormatter) Apply(action, input string) (string, error) {
	data := jsonc.ToJSON([]byte(input))
	if !json.Valid(data) {
		return "", invalid("json", syntaxError(data))
	}

	var buf bytes.Buffer
	switch action {
	case "format":
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return "", invalid("json", err)
		}
	case "minify":
		if err := json.Compact(&buf, data); err != nil {
			return "", invalid("json", err)
		}
	default:
		return "", ErrUnknownAction
	}
	return buf.String(), nil
}

func (JSONFormatter) historyRecord(action, input, output string) (history.Record, bool) {
	label := "Format JSON"
	if action == "minify" {
		label = "Minify JSON"
	}
	return history.Record{Input: input, Output: output, Action: label}, true
}

// TextToJSON turns text into JSON. Valid JSON input is re-serialized;
// anything else is wrapped as {"text": input}.
type TextToJSON struct{}

func (TextToJSON) Actions() []string { return []string{"prettify", "minify"} }

func (TextToJSON) Apply(action, input string) (string, error) {
	if action != "prettify" && action != "minify" {
		return "", ErrUnknownAction
	}
	if strings.TrimSpace(input) == "" {
		return "", nil
	}

	data := []byte(input)
	if !json.Valid(data) {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(map[string]string{"text": input}); err != nil {
			return "", invalid("text", err)
		}
		data = bytes.TrimRight(buf.Bytes(), "\n")
	}

	var out bytes.Buffer
	var err error
	if action == "prettify" {
		err = json.Indent(&out, data, "", "  ")
	} else {
		err = json.Compact(&out, data)
	}
	if err != nil {
		return "", invalid("json", err)
	}
	return out.String(), nil
}

func (TextToJSON) historyRecord(action, input, output string) (history.Record, bool) {
	if strings.TrimSpace(input) == "" {
		return history.Record{}, false
	}
	return history.Record{Input: input, Output: output, Action: "convert-" + action}, true
}

// syntaxError extracts the decoder's error for invalid JSON.
func syntaxError(data []byte) error {
	var v any
	err := json.Unmarshal(data, &v)
	if err == nil {
		err = errors.New("malformed JSON")
	}
	return err
}
