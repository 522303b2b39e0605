//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixDevice struct {
	inFd  int
	outFd int
}

func newStdDevice() Device {
	return &unixDevice{
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

func (d *unixDevice) IsTerminal() bool {
	return term.IsTerminal(d.outFd)
}

// MakeRaw clears echo, canonical mode, signal keys, extended input and output
// post-processing, and turns read into a zero-wait poll
func (d *unixDevice) MakeRaw() (func() error, error) {
	old, err := unix.IoctlGetTermios(d.outFd, ioctlReadTermios)
	if err != nil {
		return nil, err
	}

	raw := *old
	raw.Iflag &^= unix.IXON | unix.ICRNL | unix.ISTRIP
	raw.Oflag &^= unix.OPOST
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(d.outFd, ioctlWriteTermios, &raw); err != nil {
		return nil, err
	}

	saved := *old
	return func() error {
		return unix.IoctlSetTermios(d.outFd, ioctlWriteTermios, &saved)
	}, nil
}

func (d *unixDevice) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(d.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

func (d *unixDevice) Read(p []byte) (int, error) {
	n, err := unix.Read(d.inFd, p)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}

func (d *unixDevice) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := unix.Write(d.outFd, p[written:])
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return written, err
		}
		written += n
	}
	return written, nil
}
