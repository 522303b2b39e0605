// Package terminal provides exclusive raw-mode ownership of the controlling terminal.
//
// Features:
//   - Single live Session per process, enforced by an ownership token
//   - Non-blocking byte input (VMIN=0, VTIME=0), no escape parsing
//   - Full-frame writes (cursor homed first) and partial appends
//   - Alternate screen with hidden cursor, restored on Close
//   - Best-effort EmergencyReset for crash paths
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
