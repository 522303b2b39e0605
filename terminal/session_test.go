package terminal

import (
	"bytes"
	"errors"
	"testing"
)

// fakeDevice is an in-memory tty
type fakeDevice struct {
	notTTY   bool
	rawErr   error
	sizeErr  error
	w, h     int
	writeErr error
	readErr  error

	pending  []byte
	reads    int
	out      bytes.Buffer
	raw      bool
	restored int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{w: 80, h: 24}
}

func (d *fakeDevice) IsTerminal() bool { return !d.notTTY }

func (d *fakeDevice) MakeRaw() (func() error, error) {
	if d.rawErr != nil {
		return nil, d.rawErr
	}
	d.raw = true
	return func() error {
		d.raw = false
		d.restored++
		return nil
	}, nil
}

func (d *fakeDevice) Size() (int, int, error) {
	return d.w, d.h, d.sizeErr
}

func (d *fakeDevice) Read(p []byte) (int, error) {
	d.reads++
	if d.readErr != nil {
		return 0, d.readErr
	}
	n := copy(p, d.pending)
	d.pending = d.pending[n:]
	return n, nil
}

func (d *fakeDevice) Write(p []byte) (int, error) {
	if d.writeErr != nil {
		return 0, d.writeErr
	}
	return d.out.Write(p)
}

func mustOpen(t *testing.T, d *fakeDevice) *Session {
	t.Helper()
	s, err := OpenDevice(d)
	if err != nil {
		t.Fatalf("OpenDevice failed: %v", err)
	}
	return s
}

func TestOpenEntersRawModeAndAlternateScreen(t *testing.T) {
	d := newFakeDevice()
	s := mustOpen(t, d)
	defer s.Close()

	if !d.raw {
		t.Error("Expected raw mode to be installed")
	}
	if got := d.out.String(); got != "\x1b[?1049h\x1b[?25l" {
		t.Errorf("Unexpected open sequence %q", got)
	}
	if s.Width != 80 || s.Height != 24 {
		t.Errorf("Expected 80x24, got %dx%d", s.Width, s.Height)
	}
}

func TestCloseRestoresTerminal(t *testing.T) {
	d := newFakeDevice()
	s := mustOpen(t, d)
	d.out.Reset()

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if d.raw || d.restored != 1 {
		t.Errorf("Expected termios restored once, raw=%v restored=%d", d.raw, d.restored)
	}
	if got := d.out.String(); got != "\x1b[?1049l\x1b[?25h" {
		t.Errorf("Unexpected close sequence %q", got)
	}
}

func TestSessionExclusivity(t *testing.T) {
	first := mustOpen(t, newFakeDevice())

	second, err := OpenDevice(newFakeDevice())
	if !errors.Is(err, ErrAlreadyOpen) {
		t.Fatalf("Expected ErrAlreadyOpen, got %v", err)
	}
	if second != nil {
		t.Error("Expected nil session on failure")
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	third := mustOpen(t, newFakeDevice())
	if err := third.Close(); err != nil {
		t.Fatalf("Close after reopen failed: %v", err)
	}
}

func TestDoubleClosePanics(t *testing.T) {
	s := mustOpen(t, newFakeDevice())
	s.Close()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on second Close")
		}
		// Token must stay free for the other tests
		if owner.Load() {
			t.Error("Ownership token still held")
		}
	}()
	s.Close()
}

func TestOpenFailures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(d *fakeDevice)
		want    error
		entered bool
	}{
		{"not a terminal", func(d *fakeDevice) { d.notTTY = true }, ErrNotATerminal, false},
		{"termios failure", func(d *fakeDevice) { d.rawErr = errors.New("ioctl") }, ErrDeviceConfig, true},
		{"size failure", func(d *fakeDevice) { d.sizeErr = errors.New("ioctl") }, ErrDimensionQuery, true},
		{"zero width", func(d *fakeDevice) { d.w = 0 }, ErrDimensionQuery, true},
		{"zero height", func(d *fakeDevice) { d.h = 0 }, ErrDimensionQuery, true},
		{"write failure", func(d *fakeDevice) { d.writeErr = errors.New("eio") }, ErrDeviceConfig, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDevice()
			tt.setup(d)

			s, err := OpenDevice(d)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, err)
			}
			if s != nil {
				t.Error("Expected nil session")
			}
			if d.raw {
				t.Error("Raw mode left installed after failed open")
			}
			if tt.entered && !bytes.HasSuffix(d.out.Bytes(), seqLeave) {
				t.Errorf("Expected alternate screen to be left, output %q", d.out.String())
			}
			if owner.Load() {
				t.Error("Ownership token leaked after failed open")
			}
		})
	}
}

func TestReadInput(t *testing.T) {
	d := newFakeDevice()
	s := mustOpen(t, d)
	defer s.Close()

	t.Run("empty", func(t *testing.T) {
		in, err := s.ReadInput()
		if err != nil {
			t.Fatalf("ReadInput failed: %v", err)
		}
		if len(in) != 0 {
			t.Errorf("Expected no input, got %v", in)
		}
	})

	t.Run("concatenates chunks until short read", func(t *testing.T) {
		d.pending = []byte("wwwwhhhhjjq")
		d.reads = 0

		in, err := s.ReadInput()
		if err != nil {
			t.Fatalf("ReadInput failed: %v", err)
		}
		if string(in) != "wwwwhhhhjjq" {
			t.Errorf("Expected all bytes in order, got %q", in)
		}
		if d.reads != 2 {
			t.Errorf("Expected 2 reads, got %d", d.reads)
		}
	})

	t.Run("exact chunk needs a trailing empty read", func(t *testing.T) {
		d.pending = []byte("12345678")
		d.reads = 0

		in, _ := s.ReadInput()
		if string(in) != "12345678" || d.reads != 2 {
			t.Errorf("Got %q after %d reads", in, d.reads)
		}
	})

	t.Run("error", func(t *testing.T) {
		d.readErr = errors.New("eio")
		defer func() { d.readErr = nil }()

		if _, err := s.ReadInput(); err == nil {
			t.Error("Expected read error")
		}
	})
}

func TestWriteModes(t *testing.T) {
	d := newFakeDevice()
	s := mustOpen(t, d)
	defer s.Close()
	d.out.Reset()

	if err := s.WriteFull([]byte("frame")); err != nil {
		t.Fatalf("WriteFull failed: %v", err)
	}
	if err := s.WritePartial([]byte("+tail")); err != nil {
		t.Fatalf("WritePartial failed: %v", err)
	}
	if got := d.out.String(); got != "\x1b[Hframe+tail" {
		t.Errorf("Unexpected output %q", got)
	}

	d.writeErr = errors.New("eio")
	if err := s.WriteFull([]byte("x")); err == nil {
		t.Error("Expected WriteFull error")
	}
	if err := s.WritePartial([]byte("x")); err == nil {
		t.Error("Expected WritePartial error")
	}
	d.writeErr = nil
}

func TestUseAfterClose(t *testing.T) {
	s := mustOpen(t, newFakeDevice())
	s.Close()

	if _, err := s.ReadInput(); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from ReadInput, got %v", err)
	}
	if err := s.WriteFull(nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from WriteFull, got %v", err)
	}
}

func TestEmergencyResetSequences(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)

	out := buf.Bytes()
	for _, seq := range [][]byte{csiCursorShow, csiAltScreenExit, csiSGR0} {
		if !bytes.Contains(out, seq) {
			t.Errorf("Expected %q in reset output %q", seq, out)
		}
	}
}
