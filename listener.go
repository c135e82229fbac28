package greeter

import (
	"net"
	"sync"
	"time"

	proxyproto "github.com/pires/go-proxyproto"
)

// ListenConfig configures Listen.
type ListenConfig struct {
	Port uint16

	// ProxyProtocol makes accepted connections report the client address sent in a
	// PROXY protocol header. Only the header is read from the connection.
	ProxyProtocol bool

	// HeaderTimeout bounds the wait for the PROXY header. A client that sends no header
	// in time is still greeted and reported with its TCP address.
	// Zero means DefaultHeaderTimeout.
	HeaderTimeout time.Duration
}

// Listen binds a TCP listener on the loopback interface.
func Listen(conf ListenConfig) (net.Listener, error) {
	lis, err := net.Listen("tcp", LocalAddr(conf.Port))
	if err != nil {
		return nil, err
	}
	if !conf.ProxyProtocol {
		return lis, nil
	}

	timeout := conf.HeaderTimeout
	if timeout <= 0 {
		timeout = DefaultHeaderTimeout
	}
	return &proxyListener{
		Listener: &proxyproto.Listener{Listener: lis},
		timeout:  timeout,
	}, nil
}

type proxyListener struct {
	*proxyproto.Listener
	timeout time.Duration
}

func (l *proxyListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return &proxyConn{Conn: conn, timeout: l.timeout}, nil
}

// proxyConn bounds the PROXY header read triggered by RemoteAddr with a read deadline.
// Writes go straight to the underlying connection, so a missing header only delays the
// greeting by the timeout.
type proxyConn struct {
	net.Conn // *proxyproto.Conn
	timeout  time.Duration

	once   sync.Once
	remote net.Addr
}

func (c *proxyConn) RemoteAddr() net.Addr {
	c.once.Do(func() {
		_ = c.Conn.SetReadDeadline(time.Now().Add(c.timeout)) //nolint:errcheck
		// On a timeout or a malformed header the TCP peer address is returned.
		c.remote = c.Conn.RemoteAddr()
		_ = c.Conn.SetReadDeadline(time.Time{}) //nolint:errcheck
	})
	return c.remote
}
