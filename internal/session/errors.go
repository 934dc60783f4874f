package session

import "errors"

var (
	// ErrNoSession is returned when a nil session is installed.
	ErrNoSession = errors.New("no session")

	// ErrNoHost is returned when an Editor is created without a host.
	ErrNoHost = errors.New("no host")
)
