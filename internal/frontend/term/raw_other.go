//go:build !linux

package term

import "errors"

var errUnsupported = errors.New("raw terminal mode is only supported on linux")

type rawMode struct{}

func enterRawMode(int) (*rawMode, error) {
	return nil, errUnsupported
}

func (r *rawMode) read([]byte) (int, error) {
	return 0, errUnsupported
}

func (r *rawMode) restore() error {
	return nil
}
