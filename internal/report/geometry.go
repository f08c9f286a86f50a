package report

import (
	"fmt"
	"time"
)

// Geometry holds page dimensions and layout offsets in points. Vertical
// offsets are measured from the top edge of the page; line positions (Line.Y)
// are measured from the bottom edge, so they decrease down the page.
type Geometry struct {
	PageWidth  float64
	PageHeight float64

	Margin      float64 // border inset from the page edge
	BorderWidth float64 // border stroke thickness
	LeftMargin  float64 // x of body text

	WrapWidth    int     // characters per line
	LineHeight   float64 // cursor step between lines
	BottomMargin float64 // lowest y a line may be drawn at

	TitleOffset        float64 // title baseline, every page
	SubtitleOffset     float64 // subtitle baseline, first page only
	BodyOffset         float64 // first line on the first page
	ContinuationOffset float64 // first line on later pages
}

// DefaultGeometry is a US letter page with an 8pt border 20pt from the edge.
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:          612,
		PageHeight:         792,
		Margin:             20,
		BorderWidth:        8,
		LeftMargin:         50,
		WrapWidth:          90,
		LineHeight:         16,
		BottomMargin:       50,
		TitleOffset:        50,
		SubtitleOffset:     80,
		BodyOffset:         100,
		ContinuationOffset: 80,
	}
}

// withDefaults fills zero fields from DefaultGeometry.
func (g Geometry) withDefaults() Geometry {
	d := DefaultGeometry()
	if g.PageWidth <= 0 {
		g.PageWidth = d.PageWidth
	}
	if g.PageHeight <= 0 {
		g.PageHeight = d.PageHeight
	}
	if g.Margin <= 0 {
		g.Margin = d.Margin
	}
	if g.BorderWidth <= 0 {
		g.BorderWidth = d.BorderWidth
	}
	if g.LeftMargin <= 0 {
		g.LeftMargin = d.LeftMargin
	}
	if g.WrapWidth <= 0 {
		g.WrapWidth = d.WrapWidth
	}
	if g.LineHeight <= 0 {
		g.LineHeight = d.LineHeight
	}
	if g.BottomMargin <= 0 {
		g.BottomMargin = d.BottomMargin
	}
	if g.TitleOffset <= 0 {
		g.TitleOffset = d.TitleOffset
	}
	if g.SubtitleOffset <= 0 {
		g.SubtitleOffset = d.SubtitleOffset
	}
	if g.BodyOffset <= 0 {
		g.BodyOffset = d.BodyOffset
	}
	if g.ContinuationOffset <= 0 {
		g.ContinuationOffset = d.ContinuationOffset
	}
	// A page must hold at least one line above the bottom margin.
	if g.Validate() != nil {
		g.BodyOffset = d.BodyOffset
		g.ContinuationOffset = d.ContinuationOffset
		g.BottomMargin = d.BottomMargin
	}
	if g.Validate() != nil {
		return d
	}
	return g
}

// Validate checks that every page start lies on the page and at or above
// the bottom margin.
func (g Geometry) Validate() error {
	if g.BottomMargin < 0 || g.BottomMargin >= g.PageHeight {
		return fmt.Errorf("bottom margin %.0f outside page height %.0f", g.BottomMargin, g.PageHeight)
	}
	if start := g.firstStart(); start < g.BottomMargin || start > g.PageHeight {
		return fmt.Errorf("first page starts at y=%.0f, below bottom margin %.0f", start, g.BottomMargin)
	}
	if start := g.continuationStart(); start < g.BottomMargin || start > g.PageHeight {
		return fmt.Errorf("continuation pages start at y=%.0f, below bottom margin %.0f", start, g.BottomMargin)
	}
	return nil
}

func (g Geometry) firstStart() float64 {
	return g.PageHeight - g.BodyOffset
}

func (g Geometry) continuationStart() float64 {
	return g.PageHeight - g.ContinuationOffset
}

// inner returns the rectangle inside the border stroke, top-left origin.
func (g Geometry) inner() (x, y, w, h float64) {
	inset := g.Margin + g.BorderWidth
	return inset, inset, g.PageWidth - 2*inset, g.PageHeight - 2*inset
}

// Font is a core PDF font face.
type Font struct {
	Family string
	Style  string
	Size   float64
}

// Color is an RGB triple.
type Color struct {
	R, G, B int
}

// Config controls the renderer. Zero fields fall back to DefaultConfig.
type Config struct {
	Geometry Geometry

	TitleFont    Font
	SubtitleFont Font
	BodyFont     Font
	MinTitleSize float64

	BorderColor Color
	TitleColor  Color
	TextColor   Color

	// Compress enables flate compression of page streams.
	Compress bool
	// Timestamp is written as the creation and modification date so
	// identical input yields identical bytes.
	Timestamp time.Time
	Creator   string
}

func DefaultConfig() Config {
	return Config{
		Geometry:     DefaultGeometry(),
		TitleFont:    Font{Family: "Helvetica", Style: "B", Size: 18},
		SubtitleFont: Font{Family: "Helvetica", Style: "B", Size: 13},
		BodyFont:     Font{Family: "Helvetica", Size: 10},
		MinTitleSize: 8,
		BorderColor:  Color{R: 187, G: 134, B: 252},
		TitleColor:   Color{R: 51, G: 51, B: 51},
		TextColor:    Color{R: 51, G: 51, B: 51},
		Compress:     true,
		Timestamp:    time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		Creator:      "meeting-summarizer",
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	c.Geometry = c.Geometry.withDefaults()
	if c.TitleFont.Family == "" {
		c.TitleFont = d.TitleFont
	}
	if c.SubtitleFont.Family == "" {
		c.SubtitleFont = d.SubtitleFont
	}
	if c.BodyFont.Family == "" {
		c.BodyFont = d.BodyFont
	}
	if c.MinTitleSize <= 0 {
		c.MinTitleSize = d.MinTitleSize
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = d.Timestamp
	}
	if c.Creator == "" {
		c.Creator = d.Creator
	}
	return c
}
