package terminal

// Device abstracts the platform terminal so a Session can run against
// the real tty or a test double.
type Device interface {
	// IsTerminal reports whether the output side is an interactive terminal
	IsTerminal() bool

	// MakeRaw saves the current line discipline, installs the raw non-blocking
	// configuration and returns a func restoring the saved one
	MakeRaw() (restore func() error, err error)

	// Size returns the terminal column and row count
	Size() (width, height int, err error)

	// Read must not block; no pending input is (0, nil)
	Read(p []byte) (int, error)

	// Write writes raw bytes to the terminal output
	Write(p []byte) (int, error)
}
