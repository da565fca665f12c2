package tools

import "github.com/khanglvm/dev-tools-hub/internal/registry"

// Tool ids of the default catalog.
const (
	DecimalBinaryID = "decimal-binary"
	Base64ID        = "base64"
	URLEncoderID    = "url-encoder"
	JSONFormatterID = "json-formatter"
	TextToJSONID    = "text-to-json"
	HTMLViewerID    = "html-viewer"
)

// Descriptors returns the default tool descriptors in catalog order.
func Descriptors() []registry.Descriptor {
	return []registry.Descriptor{
		registry.NewDescriptor(
			DecimalBinaryID,
			"Decimal ↔ Binary Converter",
			"Convert decimal numbers to binary with interactive bit manipulation",
			registry.CategoryConversion,
			registry.IconBinary,
			[]string{"decimal", "binary", "convert", "bits", "toggle", "number", "base"},
			func() (registry.Component, error) { return DecimalBinary{}, nil },
		),
		registry.NewDescriptor(
			Base64ID,
			"Base64 Encoder/Decoder",
			"Encode and decode Base64 strings",
			registry.CategoryEncoding,
			registry.IconCode,
			[]string{"base64", "encode", "decode", "encoding", "string"},
			func() (registry.Component, error) { return Base64{}, nil },
		),
		registry.NewDescriptor(
			URLEncoderID,
			"URL Encoder/Decoder",
			"Encode and decode URL strings and parameters",
			registry.CategoryEncoding,
			registry.IconLink,
			[]string{"url", "encode", "decode", "uri", "percent", "encoding"},
			func() (registry.Component, error) { return URLEncoder{}, nil },
		),
		registry.NewDescriptor(
			JSONFormatterID,
			"JSON Formatter",
			"Format, validate and beautify JSON data",
			registry.CategoryFormatting,
			registry.IconBraces,
			[]string{"json", "format", "beautify", "validate", "minify", "pretty"},
			func() (registry.Component, error) { return JSONFormatter{}, nil },
		),
		registry.NewDescriptor(
			TextToJSONID,
			"Text to JSON Converter",
			"Convert plain text to JSON format or prettify existing JSON",
			registry.CategoryConversion,
			registry.IconFileJSON,
			[]string{"text", "json", "convert", "wrap", "prettify"},
			func() (registry.Component, error) { return TextToJSON{}, nil },
		),
		registry.NewDescriptor(
			HTMLViewerID,
			"HTML Viewer",
			"Preview and beautify HTML markup",
			registry.CategoryUtility,
			registry.IconCode2,
			[]string{"html", "preview", "viewer", "render", "beautify", "markup"},
			func() (registry.Component, error) { return HTMLViewer{}, nil },
		),
	}
}

// Catalog builds the default registry.
func Catalog() *registry.Registry {
	return registry.MustNew(Descriptors()...)
}
