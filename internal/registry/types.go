/*
Package registry holds the static catalog of tools.

A Registry is built once from a list of descriptors, validated, and never
mutated afterwards. Categories and icons are closed enumerations: a
descriptor naming an unknown one is rejected at construction time instead
of rendering nothing later.
*/
package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by lookups for unknown ids.
	ErrNotFound = errors.New("tool not found")

	// ErrInvalidDescriptor is returned when a descriptor fails validation.
	ErrInvalidDescriptor = errors.New("invalid tool descriptor")
)

// Category groups tools for navigation.
type Category string

const (
	CategoryEncoding   Category = "encoding"
	CategoryFormatting Category = "formatting"
	CategoryConversion Category = "conversion"
	CategoryString     Category = "string"
	CategoryCrypto     Category = "crypto"
	CategoryUtility    Category = "utility"
)

// Categories lists every valid category in canonical order.
var Categories = []Category{
	CategoryEncoding,
	CategoryFormatting,
	CategoryConversion,
	CategoryString,
	CategoryCrypto,
	CategoryUtility,
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns the display name.
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// ParseCategory converts text to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Icon identifies the glyph a shell renders for a tool.
type Icon string

const (
	IconBinary   Icon = "Binary"
	IconCode     Icon = "Code"
	IconCode2    Icon = "Code2"
	IconLink     Icon = "Link"
	IconBraces   Icon = "Braces"
	IconFileJSON Icon = "FileJson"
	IconHash     Icon = "Hash"
	IconWrench   Icon = "Wrench"
)

// glyphs maps each icon to a terminal-friendly glyph.
var glyphs = map[Icon]string{
	IconBinary:   "01",
	IconCode:     "</>",
	IconCode2:    "<#>",
	IconLink:     "%",
	IconBraces:   "{}",
	IconFileJSON: "{T}",
	IconHash:     "#",
	IconWrench:   "*",
}

// Valid reports whether i is a known icon.
func (i Icon) Valid() bool {
	_, ok := glyphs[i]
	return ok
}

// Glyph returns the terminal rendering of the icon.
func (i Icon) Glyph() string {
	return glyphs[i]
}
