package report

// Step is the outcome of moving the cursor.
type Step int

const (
	// Continue means the next line fits on the current page.
	Continue Step = iota
	// PageBreakNeeded means the next line would fall below the bottom margin.
	PageBreakNeeded
)

func (s Step) String() string {
	if s == PageBreakNeeded {
		return "page-break"
	}
	return "continue"
}

// Cursor tracks the vertical write position on the current page.
type Cursor struct {
	y      float64
	bottom float64
}

func NewCursor(start, bottom float64) *Cursor {
	return &Cursor{y: start, bottom: bottom}
}

func (c *Cursor) Y() float64 {
	return c.y
}

// Advance moves the cursor down by lineHeight and reports whether a line can
// still be placed at the new position. Drawing is left to the caller.
func (c *Cursor) Advance(lineHeight float64) Step {
	c.y -= lineHeight
	if c.y < c.bottom {
		return PageBreakNeeded
	}
	return Continue
}

// Reset moves the cursor to the start offset of a fresh page.
func (c *Cursor) Reset(start float64) {
	c.y = start
}
