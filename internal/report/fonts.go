package report

import (
	_ "embed"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/charmap"
)

// DejaVu Sans Condensed covers Latin, Greek and Cyrillic. It is used when a
// document has text the core fonts (Windows-1252) cannot encode.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	unicodeRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	unicodeBold []byte
)

const (
	unicodeFamily = "DejaVu"
	// replacementRune stands in for characters no available font can draw.
	replacementRune = '?'
)

// glyphSet reports which runes the embedded Unicode font can draw.
type glyphSet struct {
	font *sfnt.Font
}

func newGlyphSet() *glyphSet {
	f, err := sfnt.Parse(unicodeRegular)
	if err != nil {
		return nil
	}
	return &glyphSet{font: f}
}

func (g *glyphSet) has(buf *sfnt.Buffer, r rune) bool {
	if g == nil {
		return false
	}
	idx, err := g.font.GlyphIndex(buf, r)
	return err == nil && idx != 0
}

// coreEncodable reports whether every rune of s exists in Windows-1252, the
// encoding of the standard PDF fonts.
func coreEncodable(s ...string) bool {
	for _, str := range s {
		for _, r := range str {
			if r < utf8.RuneSelf {
				continue
			}
			if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
				return false
			}
		}
	}
	return true
}

// coverage replaces runes the active font cannot draw and remembers them in
// order of first appearance.
type coverage struct {
	unicode bool
	glyphs  *glyphSet
	buf     sfnt.Buffer
	seen    map[rune]bool
	missing []rune
}

func (c *coverage) drawable(r rune) bool {
	if r < utf8.RuneSelf {
		return true
	}
	if c.unicode {
		return c.glyphs.has(&c.buf, r)
	}
	_, ok := charmap.Windows1252.EncodeRune(r)
	return ok
}

func (c *coverage) apply(s string) string {
	return strings.Map(func(r rune) rune {
		if c.drawable(r) {
			return r
		}
		if !c.seen[r] {
			if c.seen == nil {
				c.seen = make(map[rune]bool)
			}
			c.seen[r] = true
			c.missing = append(c.missing, r)
		}
		return replacementRune
	}, s)
}

// warning returns the encoding LayoutError for all replaced runes, or nil.
func (c *coverage) warning() error {
	if len(c.missing) == 0 {
		return nil
	}
	return &LayoutError{Kind: KindEncoding, Action: ActionReplaced, Text: string(c.missing)}
}
