package terminal

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// readChunk is the fixed read size; a shorter read means the input queue is drained
const readChunk = 8

var (
	ErrAlreadyOpen    = errors.New("terminal session already open")
	ErrNotATerminal   = errors.New("stdout is not a terminal")
	ErrDimensionQuery = errors.New("terminal dimension query failed")
	ErrDeviceConfig   = errors.New("terminal configuration failed")
	ErrClosed         = errors.New("terminal session closed")
)

// owner is the process-wide ownership token; set while a Session is live
var owner atomic.Bool

// Session is the single live raw-mode handle on the controlling terminal.
// It is not safe for concurrent use; the frame loop is its only user.
type Session struct {
	dev     Device
	restore func() error
	entered bool
	closed  bool

	// Width and Height are the dimensions reported at open time
	Width  int
	Height int

	chunk [readChunk]byte
}

// Open claims the process terminal over stdin/stdout
func Open() (*Session, error) {
	return OpenDevice(newStdDevice())
}

// OpenDevice claims the ownership token and puts dev into raw mode.
// On failure everything already applied is undone and the token released.
func OpenDevice(dev Device) (*Session, error) {
	if !owner.CompareAndSwap(false, true) {
		return nil, ErrAlreadyOpen
	}

	s := &Session{dev: dev}
	if err := s.setup(); err != nil {
		s.undo()
		owner.Store(false)
		return nil, err
	}
	return s, nil
}

func (s *Session) setup() error {
	if !s.dev.IsTerminal() {
		return ErrNotATerminal
	}

	if _, err := s.dev.Write(seqEnter); err != nil {
		return fmt.Errorf("%w: enter alternate screen: %w", ErrDeviceConfig, err)
	}
	s.entered = true

	restore, err := s.dev.MakeRaw()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceConfig, err)
	}
	s.restore = restore

	w, h, err := s.dev.Size()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDimensionQuery, err)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrDimensionQuery, w, h)
	}
	s.Width, s.Height = w, h
	return nil
}

// undo reverts a partial setup, best-effort
func (s *Session) undo() {
	if s.entered {
		s.dev.Write(seqLeave)
	}
	if s.restore != nil {
		s.restore()
	}
}

// ReadInput returns every byte queued since the last call, in arrival order.
// An empty result means no input; it never waits.
func (s *Session) ReadInput() ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}

	var out []byte
	for {
		n, err := s.dev.Read(s.chunk[:])
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		out = append(out, s.chunk[:n]...)
		if n < readChunk {
			return out, nil
		}
	}
}

// WriteFull homes the cursor and writes p verbatim
func (s *Session) WriteFull(p []byte) error {
	if s.closed {
		return ErrClosed
	}
	if _, err := s.dev.Write(csiHome); err != nil {
		return fmt.Errorf("cursor reset: %w", err)
	}
	return s.WritePartial(p)
}

// WritePartial writes p at the current cursor position
func (s *Session) WritePartial(p []byte) error {
	if s.closed {
		return ErrClosed
	}
	if _, err := s.dev.Write(p); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Close leaves the alternate screen, restores the saved line discipline and
// releases the ownership token. A second Close on any session is an
// invariant violation and panics.
func (s *Session) Close() error {
	if s.closed {
		panic("terminal: session closed twice")
	}
	s.closed = true

	var errs []error
	if _, err := s.dev.Write(seqLeave); err != nil {
		errs = append(errs, fmt.Errorf("leave alternate screen: %w", err))
	}
	if err := s.restore(); err != nil {
		errs = append(errs, fmt.Errorf("%w: restore: %w", ErrDeviceConfig, err))
	}

	if !owner.Swap(false) {
		panic("terminal: ownership token released twice")
	}
	return errors.Join(errs...)
}
