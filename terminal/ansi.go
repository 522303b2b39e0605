package terminal

// Pre-allocated ANSI sequences, emitted verbatim
var (
	csiHome = []byte("\x1b[H")
	csiSGR0 = []byte("\x1b[0m")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")

	// seqEnter switches to the alternate screen and hides the cursor
	seqEnter = concat(csiAltScreenEnter, csiCursorHide)
	// seqLeave is the exact inverse of seqEnter
	seqLeave = concat(csiAltScreenExit, csiCursorShow)
)

func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
