package greeter

import "errors"

// Errors returned by greeter.
var (
	ErrInvalidPort   = errors.New("invalid port")
	ErrShortGreeting = errors.New("short greeting")
)
