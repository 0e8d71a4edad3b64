//go:build linux

package term

import (
	"golang.org/x/sys/unix"
)

// rawMode keeps the terminal settings to restore.
type rawMode struct {
	fd    int
	saved unix.Termios
}

func enterRawMode(fd int) (*rawMode, error) {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, err
	}

	raw := &rawMode{
		fd:    fd,
		saved: *termios,
	}
	state := *termios

	state.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL | unix.IXON
	state.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	state.Cflag &^= unix.CSIZE | unix.PARENB
	state.Cflag |= unix.CS8

	// reads return immediately, with or without data
	state.Cc[unix.VMIN] = 0
	state.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &state); err != nil {
		return nil, err
	}
	return raw, nil
}

func (r *rawMode) read(buf []byte) (int, error) {
	n, err := unix.Read(r.fd, buf)
	if err == unix.EAGAIN || err == unix.EINTR {
		return 0, nil
	}
	return n, err
}

func (r *rawMode) restore() error {
	return unix.IoctlSetTermios(r.fd, unix.TCSETS, &r.saved)
}
