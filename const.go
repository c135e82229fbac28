// Package greeter implements a TCP server that writes a fixed greeting to every
// client on the loopback interface and drops the connection.
package greeter

import "time"

// Constants.
const (
	// Greeting is written to every accepted connection.
	Greeting = "Hello!\n"

	// DefaultHost is the interface the listener binds to.
	DefaultHost = "127.0.0.1"

	// DefaultWriteTimeout of zero means a greeting write never times out.
	DefaultWriteTimeout = time.Duration(0)

	// DefaultHeaderTimeout bounds the wait for a PROXY protocol header.
	DefaultHeaderTimeout = 3 * time.Second
)
