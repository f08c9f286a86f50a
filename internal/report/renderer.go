package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Renderer turns plain text into a paginated, bordered PDF. It holds only
// configuration, so one Renderer may be shared by concurrent callers.
type Renderer struct {
	cfg    Config
	glyphs *glyphSet
}

func New(cfg Config) *Renderer {
	return &Renderer{cfg: cfg.withDefaults(), glyphs: newGlyphSet()}
}

// Document is a rendered report.
type Document struct {
	Bytes    []byte
	Pages    int
	Layout   *Layout
	Warnings []error
}

// renderState is the mutable drawing state of one Render call.
type renderState struct {
	pageIndex int
	cursor    *Cursor
	surface   *fpdf.Fpdf
	tr        func(string) string
	// unicode selects the embedded UTF-8 font instead of the core fonts.
	unicode bool

	title, subtitle         string
	titleSize, subtitleSize float64
}

// Render returns the PDF bytes for text. title is drawn on every page and
// subtitle on the first page only.
func (r *Renderer) Render(text, title, subtitle string) ([]byte, error) {
	doc, err := r.RenderDocument(text, title, subtitle)
	if err != nil {
		return nil, err
	}
	return doc.Bytes, nil
}

// RenderDocument is Render with page count and layout warnings.
func (r *Renderer) RenderDocument(text, title, subtitle string) (*Document, error) {
	g := r.cfg.Geometry
	st := &renderState{
		unicode: r.glyphs != nil && !coreEncodable(text, title, subtitle),
		cursor:  NewCursor(g.firstStart(), g.BottomMargin),
	}

	cov := &coverage{unicode: st.unicode, glyphs: r.glyphs}
	title, subtitle, text = cov.apply(title), cov.apply(subtitle), cov.apply(text)

	layout := r.Layout(text)
	warnings := append([]error(nil), layout.Warnings...)
	if warn := cov.warning(); warn != nil {
		warnings = append(warnings, warn)
	}

	st.surface = r.newSurface(title, st.unicode)
	if st.unicode {
		st.tr = func(s string) string { return s }
	} else {
		st.tr = st.surface.UnicodeTranslatorFromDescriptor("")
	}

	_, _, innerW, _ := g.inner()
	var warn error
	st.title, st.titleSize, warn = r.fitHeading(st, title, r.cfg.TitleFont, KindTitle, innerW)
	if warn != nil {
		warnings = append(warnings, warn)
	}
	subtitleW := g.PageWidth - g.Margin - g.BorderWidth - g.LeftMargin
	st.subtitle, st.subtitleSize, warn = r.fitHeading(st, subtitle, r.cfg.SubtitleFont, KindSubtitle, subtitleW)
	if warn != nil {
		warnings = append(warnings, warn)
	}

	for _, page := range layout.Pages {
		st.pageIndex = page.Index
		r.beginPage(st, page.Subtitle)
		if err := r.drawLines(st, page.Lines); err != nil {
			return nil, err
		}
	}

	if err := st.surface.Error(); err != nil {
		return nil, fmt.Errorf("draw pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := st.surface.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	return &Document{
		Bytes:    buf.Bytes(),
		Pages:    len(layout.Pages),
		Layout:   layout,
		Warnings: warnings,
	}, nil
}

func (r *Renderer) newSurface(title string, unicode bool) *fpdf.Fpdf {
	g := r.cfg.Geometry
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(r.cfg.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(r.cfg.Timestamp)
	pdf.SetModificationDate(r.cfg.Timestamp)
	pdf.SetCreator(r.cfg.Creator, true)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	if unicode {
		pdf.AddUTF8FontFromBytes(unicodeFamily, "", unicodeRegular)
		pdf.AddUTF8FontFromBytes(unicodeFamily, "B", unicodeBold)
	}
	return pdf
}

// face maps a configured font onto the face actually registered with the
// surface.
func (st *renderState) face(f Font) (family, style string) {
	if !st.unicode {
		return f.Family, f.Style
	}
	if strings.Contains(strings.ToUpper(f.Style), "B") {
		return unicodeFamily, "B"
	}
	return unicodeFamily, ""
}

// beginPage adds a page with its border, title and, on the first page, the
// subtitle.
func (r *Renderer) beginPage(st *renderState, withSubtitle bool) {
	g := r.cfg.Geometry
	pdf := st.surface

	pdf.AddPage()
	if st.pageIndex == 0 {
		st.cursor.Reset(g.firstStart())
	} else {
		st.cursor.Reset(g.continuationStart())
	}

	bc := r.cfg.BorderColor
	pdf.SetDrawColor(bc.R, bc.G, bc.B)
	pdf.SetLineWidth(g.BorderWidth)
	pdf.Rect(g.Margin, g.Margin, g.PageWidth-2*g.Margin, g.PageHeight-2*g.Margin, "D")

	tc := r.cfg.TitleColor
	pdf.SetTextColor(tc.R, tc.G, tc.B)

	if st.title != "" {
		family, style := st.face(r.cfg.TitleFont)
		pdf.SetFont(family, style, st.titleSize)
		text := st.tr(st.title)
		x := (g.PageWidth - pdf.GetStringWidth(text)) / 2
		pdf.Text(x, g.TitleOffset, text)
	}

	if withSubtitle && st.subtitle != "" {
		family, style := st.face(r.cfg.SubtitleFont)
		pdf.SetFont(family, style, st.subtitleSize)
		pdf.Text(g.LeftMargin, g.SubtitleOffset, st.tr(st.subtitle))
	}
}

// drawLines draws body lines at the cursor, clipped to the border interior.
// Layout placed the lines with the same cursor steps; a mismatch means the
// two disagree about the geometry.
func (r *Renderer) drawLines(st *renderState, lines []Line) error {
	if len(lines) == 0 {
		return nil
	}
	g := r.cfg.Geometry
	pdf := st.surface

	family, style := st.face(r.cfg.BodyFont)
	pdf.SetFont(family, style, r.cfg.BodyFont.Size)
	c := r.cfg.TextColor
	pdf.SetTextColor(c.R, c.G, c.B)

	x, y, w, h := g.inner()
	pdf.ClipRect(x, y, w, h, false)
	defer pdf.ClipEnd()

	for i, line := range lines {
		if i > 0 && st.cursor.Advance(g.LineHeight) == PageBreakNeeded {
			return fmt.Errorf("page %d: line %d falls below the bottom margin", st.pageIndex+1, i+1)
		}
		if st.cursor.Y() != line.Y {
			return fmt.Errorf("page %d: line %d laid out at y=%.2f, cursor at y=%.2f", st.pageIndex+1, i+1, line.Y, st.cursor.Y())
		}
		if line.Text == "" {
			continue
		}
		pdf.Text(g.LeftMargin, g.PageHeight-st.cursor.Y(), st.tr(line.Text))
	}
	return nil
}

// fitHeading shrinks a heading's font until it fits maxWidth, then clips
// it with an ellipsis at the minimum size.
func (r *Renderer) fitHeading(st *renderState, text string, f Font, kind LayoutKind, maxWidth float64) (string, float64, error) {
	if text == "" {
		return "", f.Size, nil
	}
	pdf := st.surface
	family, style := st.face(f)
	width := func(s string, size float64) float64 {
		pdf.SetFont(family, style, size)
		return pdf.GetStringWidth(st.tr(s))
	}

	if width(text, f.Size) <= maxWidth {
		return text, f.Size, nil
	}

	minSize := r.cfg.MinTitleSize
	if minSize > f.Size {
		minSize = f.Size
	}
	for size := f.Size - 1; size >= minSize; size-- {
		if width(text, size) <= maxWidth {
			return text, size, &LayoutError{Kind: kind, Action: ActionShrunk, Text: text, Limit: maxWidth}
		}
	}

	runes := []rune(text)
	for len(runes) > 0 && width(string(runes)+"...", minSize) > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "...", minSize, &LayoutError{Kind: kind, Action: ActionClipped, Text: text, Limit: maxWidth}
}
