package arbor

// CursorStyle is the pointer cursor the presentation layer should show.
type CursorStyle uint8

const (
	CursorDefault CursorStyle = iota // arrow
	CursorPointer                    // hand, over something clickable
)

// String returns the CSS-style cursor name.
func (s CursorStyle) String() string {
	if s == CursorPointer {
		return "pointer"
	}
	return "default"
}

// Cursor is the single process-wide cursor signal. Handlers set it; the host
// polls Style once per frame and applies it.
type Cursor struct {
	style CursorStyle
}

// Set requests a cursor style.
func (c *Cursor) Set(style CursorStyle) {
	c.style = style
}

// Style returns the most recently requested style.
func (c *Cursor) Style() CursorStyle {
	return c.style
}
