// Package ansi holds the SGR sequences and palette presets used to colour
// JSON tokens. Values come from pkt.systems/pslog/ansi (MIT License), reduced
// to the token classes a whitespace transcoder can tell apart.
package ansi

// Reset ends any active style.
const Reset = "\x1b[0m"

// Base foreground codes.
const (
	Faint         = "\x1b[90m"
	Yellow        = "\x1b[33m"
	Magenta       = "\x1b[35m"
	Cyan          = "\x1b[36m"
	BrightBlue    = "\x1b[1;34m"
	BrightMagenta = "\x1b[1;35m"
)

// Palette assigns a style to each token class. An empty string leaves that
// class unstyled.
type Palette struct {
	Key         string
	String      string
	Num         string
	Bool        string
	Nil         string
	Brackets    string
	Punctuation string
}

// PaletteJQ mirrors jq's default JQ_COLORS:
// 0;90:null, 0;39:false, 0;39:true, 0;39:numbers, 0;32:strings,
// 1;39:arrays, 1;39:objects, 1;34:keys.
var PaletteJQ = Palette{
	Key:         "\x1b[1;34m",
	String:      "\x1b[0;32m",
	Num:         "\x1b[0;39m",
	Bool:        "\x1b[0;39m",
	Nil:         "\x1b[0;90m",
	Brackets:    "\x1b[1;39m",
	Punctuation: "\x1b[1;39m",
}

// PaletteClassic sticks to the 16 base colours.
var PaletteClassic = Palette{
	Key:         Cyan,
	String:      BrightBlue,
	Num:         Magenta,
	Bool:        Yellow,
	Nil:         Faint,
	Brackets:    Faint,
	Punctuation: Faint,
}

// PaletteDoomDracula mirrors doom-dracula with pink, purple, and cyan accents.
var PaletteDoomDracula = Palette{
	Key:         "\x1b[38;5;219m",
	String:      "\x1b[38;5;141m",
	Num:         "\x1b[38;5;111m",
	Bool:        "\x1b[38;5;81m",
	Nil:         "\x1b[38;5;240m",
	Brackets:    "\x1b[38;5;147m",
	Punctuation: "\x1b[38;5;95m",
}

// PaletteDoomNord channels doom-nord with cool glacier blues.
var PaletteDoomNord = Palette{
	Key:         "\x1b[38;5;153m",
	String:      "\x1b[38;5;152m",
	Num:         "\x1b[38;5;109m",
	Bool:        "\x1b[38;5;115m",
	Nil:         "\x1b[38;5;245m",
	Brackets:    "\x1b[38;5;110m",
	Punctuation: "\x1b[38;5;245m",
}

// PaletteTokyoNight draws on Tokyo Night's neon blues and violets.
var PaletteTokyoNight = Palette{
	Key:         "\x1b[38;5;69m",
	String:      "\x1b[38;5;110m",
	Num:         "\x1b[38;5;176m",
	Bool:        "\x1b[38;5;117m",
	Nil:         "\x1b[38;5;244m",
	Brackets:    "\x1b[38;5;74m",
	Punctuation: "\x1b[38;5;244m",
}

// PaletteGruvboxLight is a light background variant in warm browns.
var PaletteGruvboxLight = Palette{
	Key:         "\x1b[38;5;24m",
	String:      "\x1b[38;5;100m",
	Num:         "\x1b[38;5;130m",
	Bool:        "\x1b[38;5;66m",
	Nil:         "\x1b[38;5;245m",
	Brackets:    "\x1b[38;5;94m",
	Punctuation: "\x1b[38;5;137m",
}

// PaletteSynthwave84 glows in magenta and cyan.
var PaletteSynthwave84 = Palette{
	Key:         BrightMagenta,
	String:      "\x1b[38;5;51m",
	Num:         "\x1b[38;5;220m",
	Bool:        "\x1b[38;5;213m",
	Nil:         "\x1b[38;5;102m",
	Brackets:    "\x1b[38;5;99m",
	Punctuation: "\x1b[38;5;60m",
}
