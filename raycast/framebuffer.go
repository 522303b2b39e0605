package raycast

import "unicode/utf8"

// Framebuffer is a row-major character grid: cells[y*width + x]
type Framebuffer struct {
	cells  []rune
	width  int
	height int
}

// NewFramebuffer creates a buffer with the specified dimensions
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient.
// Contents are left as-is; Render overwrites every cell.
func (fb *Framebuffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(fb.cells) < size {
		fb.cells = make([]rune, size)
	} else {
		fb.cells = fb.cells[:size]
	}
	fb.width = width
	fb.height = height
}

func (fb *Framebuffer) Width() int  { return fb.width }
func (fb *Framebuffer) Height() int { return fb.height }
func (fb *Framebuffer) Len() int    { return len(fb.cells) }

// Cells exposes the backing slice; valid until the next Resize
func (fb *Framebuffer) Cells() []rune { return fb.cells }

// At returns the glyph at (x, y), 0 when out of bounds
func (fb *Framebuffer) At(x, y int) rune {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return 0
	}
	return fb.cells[y*fb.width+x]
}

func (fb *Framebuffer) set(x, y int, r rune) {
	fb.cells[y*fb.width+x] = r
}

// Column returns the glyphs of column x top to bottom
func (fb *Framebuffer) Column(x int) []rune {
	col := make([]rune, fb.height)
	for y := range col {
		col[y] = fb.At(x, y)
	}
	return col
}

// AppendUTF8 appends the whole buffer, row after row with no separators, as UTF-8
func (fb *Framebuffer) AppendUTF8(dst []byte) []byte {
	for _, r := range fb.cells {
		dst = utf8.AppendRune(dst, r)
	}
	return dst
}
