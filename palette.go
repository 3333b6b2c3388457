package jsonxf

import (
	"fmt"
	"sort"
	"strings"

	"pkt.systems/jsonxf/internal/ansi"
)

const (
	paletteDefaultName = "default"
	paletteNoneName    = "none"
)

var paletteRegistry = map[string]ansi.Palette{
	paletteDefaultName: ansi.PaletteJQ,
	"jq":               ansi.PaletteJQ,
	"classic":          ansi.PaletteClassic,
	"doom-dracula":     ansi.PaletteDoomDracula,
	"doom-nord":        ansi.PaletteDoomNord,
	"tokyo-night":      ansi.PaletteTokyoNight,
	"gruvbox-light":    ansi.PaletteGruvboxLight,
	"synthwave84":      ansi.PaletteSynthwave84,
}

// PaletteNames returns the sorted list of palette names, including "none".
func PaletteNames() []string {
	names := make([]string, 0, len(paletteRegistry)+1)
	for name := range paletteRegistry {
		names = append(names, name)
	}
	names = append(names, paletteNoneName)
	sort.Strings(names)
	return names
}

// styles is the resolved form of a palette. The zero value writes no escape
// sequences at all.
type styles struct {
	key      string
	str      string
	num      string
	boolean  string
	null     string
	brackets string
	punct    string
}

// resolvePalette looks up a palette by name. Empty and "none" disable
// colouring; matching is case-insensitive.
func resolvePalette(name string) (styles, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == paletteNoneName {
		return styles{}, nil
	}
	ap, ok := paletteRegistry[name]
	if !ok {
		return styles{}, fmt.Errorf("jsonxf: unknown palette %q (use one of: %s)", name, strings.Join(PaletteNames(), ", "))
	}
	return stylesFromAnsi(ap), nil
}

func stylesFromAnsi(ap ansi.Palette) styles {
	brackets := ap.Brackets
	if brackets == "" {
		brackets = ap.Nil
	}
	punct := ap.Punctuation
	if punct == "" {
		punct = brackets
	}
	return styles{
		key:      ap.Key,
		str:      ap.String,
		num:      ap.Num,
		boolean:  ap.Bool,
		null:     ap.Nil,
		brackets: brackets,
		punct:    punct,
	}
}

// scalarStyle picks the style for a bare token by its first byte.
func (s *styles) scalarStyle(first byte) string {
	switch first {
	case 't', 'f':
		return s.boolean
	case 'n':
		return s.null
	default:
		return s.num
	}
}
