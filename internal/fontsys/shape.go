package fontsys

import (
	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
)

// gotextFace wraps a cached, thread-safe *font.Font in a lightweight
// *font.Face for a single Shape call. font.Face carries shaping caches and
// is not concurrency-safe, so unlike the *Font it wraps, a fresh one is
// created per call, matching the teacher's shaper_gotext.go Shape method.
func gotextFace(f *gotextfont.Font) *gotextfont.Face {
	return gotextfont.NewFace(f)
}

// detectScript returns the Unicode script of the first non-whitespace rune,
// used as a (simplified) single-script assumption for the whole run.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
