package report

// Line is one wrapped line placed at Y points above the bottom edge.
type Line struct {
	Text string
	Y    float64
}

// Page is a laid-out page. Only the first page carries the subtitle.
type Page struct {
	Index    int
	Subtitle bool
	Lines    []Line
}

// Layout is the result of wrapping and paginating a text.
type Layout struct {
	Pages    []Page
	Warnings []error
}

// Layout wraps text and distributes the lines over pages without drawing.
func (r *Renderer) Layout(text string) *Layout {
	g := r.cfg.Geometry

	lines, warnings := Wrap(text, g.WrapWidth)
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	out := &Layout{Warnings: warnings}
	if len(lines) == 0 {
		out.Warnings = append(out.Warnings, ErrEmptyInput)
	}

	page := Page{Index: 0, Subtitle: true}
	cur := NewCursor(g.firstStart(), g.BottomMargin)
	step := Continue

	for _, text := range lines {
		if step == PageBreakNeeded {
			out.Pages = append(out.Pages, page)
			page = Page{Index: len(out.Pages)}
			cur.Reset(g.continuationStart())
		}
		page.Lines = append(page.Lines, Line{Text: text, Y: cur.Y()})
		step = cur.Advance(g.LineHeight)
	}
	out.Pages = append(out.Pages, page)

	return out
}
