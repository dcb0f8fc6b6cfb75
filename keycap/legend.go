package keycap

import (
	"strings"

	"github.com/coredump/keycap-legends/config"
)

// filenameSubstitutions maps legend characters that are unsafe in filenames
// to spelled-out names.
var filenameSubstitutions = map[string]string{
	"<":  "less",
	">":  "greater",
	"/":  "slash",
	":":  "colon",
	"\\": "backslash",
	"|":  "pipe",
	"?":  "question",
	"*":  "asterisk",
	`"`:  "quote",
}

// Description returns the human-readable identity of a legend entry, the
// non-empty texts joined with "+". Empty for entries with nothing to
// engrave (a tertiary legend alone is never engraved).
func Description(l config.Legend) string {
	switch {
	case l.Primary != "" && l.Secondary != "" && l.Tertiary != "":
		return l.Primary + "+" + l.Secondary + "+" + l.Tertiary
	case l.Primary != "" && l.Secondary != "":
		return l.Primary + "+" + l.Secondary
	case l.Primary != "" && l.Tertiary != "":
		return l.Primary + "+" + l.Tertiary
	case l.Primary != "":
		return l.Primary
	case l.Secondary != "":
		return l.Secondary
	}
	return ""
}

// Filename returns the export filename for a legend entry on the given row,
// with filesystem-hostile characters substituted.
func Filename(l config.Legend, row string) string {
	var parts []string
	for _, text := range []string{l.Primary, l.Secondary, l.Tertiary} {
		if text == "" {
			continue
		}
		if safe, ok := filenameSubstitutions[text]; ok {
			text = safe
		}
		parts = append(parts, text)
	}
	return "K_" + strings.Join(parts, "_") + "_" + row + ".3mf"
}

// fonts holds the resolved typeface per legend slot.
type fonts struct {
	primary   string
	secondary string
	tertiary  string
}

// resolveFonts applies the fallback chain: a slot's own font, else the
// settings font. The secondary slot falls back to the primary's resolved
// font first so paired legends match by default.
func resolveFonts(l config.Legend, settings config.Settings) fonts {
	f := fonts{
		primary:   l.PrimaryFont,
		secondary: l.SecondaryFont,
		tertiary:  l.TertiaryFont,
	}
	if f.primary == "" {
		f.primary = settings.Font
	}
	if f.secondary == "" {
		f.secondary = f.primary
	}
	if f.tertiary == "" {
		f.tertiary = settings.Font
	}
	return f
}
