package greeter

import (
	"context"
	"fmt"
	"io"
	"net"
)

// Dialer dials connections to a greeter server.
// It is implemented by *net.Dialer and by golang.org/x/net/proxy dialers.
type Dialer interface {
	Dial(network, addr string) (net.Conn, error)
}

type contextDialer interface {
	DialContext(ctx context.Context, network, addr string) (net.Conn, error)
}

// Greet connects to addr, writes payload (if any) and reads the greeting.
// The server ignores the payload.
func Greet(ctx context.Context, d Dialer, addr string, payload []byte) ([]byte, error) {
	if d == nil {
		d = &net.Dialer{}
	}

	conn, err := dial(ctx, d, addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer func() { _ = conn.Close() }() //nolint:errcheck

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, err
		}
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close() //nolint:errcheck
		case <-stop:
		}
	}()

	if len(payload) > 0 {
		if _, err := conn.Write(payload); err != nil {
			return nil, fmt.Errorf("write payload: %w", err)
		}
	}

	b := make([]byte, len(Greeting))
	if n, err := io.ReadFull(conn, b); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return b[:n], fmt.Errorf("%w: got %d of %d bytes", ErrShortGreeting, n, len(Greeting))
		}
		return nil, fmt.Errorf("read greeting: %w", err)
	}
	return b, nil
}

func dial(ctx context.Context, d Dialer, addr string) (net.Conn, error) {
	if cd, ok := d.(contextDialer); ok {
		return cd.DialContext(ctx, "tcp", addr)
	}
	return d.Dial("tcp", addr)
}
