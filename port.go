package greeter

import (
	"fmt"
	"net"
	"strconv"
)

// ParsePort parses a decimal port number.
// Port 0 is valid and lets the OS pick a free port.
func ParsePort(s string) (uint16, error) {
	p, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w '%s': %v", ErrInvalidPort, s, err)
	}
	return uint16(p), nil
}

// LocalAddr returns the loopback address the server listens on for the given port.
func LocalAddr(port uint16) string {
	return net.JoinHostPort(DefaultHost, strconv.Itoa(int(port)))
}
