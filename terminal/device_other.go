//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

import "errors"

var errUnsupported = errors.New("raw terminal not supported on this platform")

// unsupportedDevice reports a non-terminal so Open fails with ErrNotATerminal
type unsupportedDevice struct{}

func newStdDevice() Device { return unsupportedDevice{} }

func (unsupportedDevice) IsTerminal() bool { return false }
func (unsupportedDevice) MakeRaw() (func() error, error) { return nil, errUnsupported }
func (unsupportedDevice) Size() (int, int, error) { return 0, 0, errUnsupported }
func (unsupportedDevice) Read(p []byte) (int, error) { return 0, errUnsupported }
func (unsupportedDevice) Write(p []byte) (int, error) { return 0, errUnsupported }

func resetTerminalMode() {}
