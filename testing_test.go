package greeter

import (
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/nettest"
)

var (
	errListenerClosed = errors.New("listener closed")
	errBrokenPipe     = errors.New("broken pipe")
)

// chanListener hands out connections pushed to conns.
type chanListener struct {
	conns chan net.Conn
	done  chan struct{}
	once  sync.Once
}

func newChanListener() *chanListener {
	return &chanListener{
		conns: make(chan net.Conn),
		done:  make(chan struct{}),
	}
}

func (l *chanListener) Accept() (net.Conn, error) {
	select {
	case conn := <-l.conns:
		return conn, nil
	case <-l.done:
		return nil, errListenerClosed
	}
}

func (l *chanListener) Close() error {
	l.once.Do(func() { close(l.done) })
	return nil
}

func (l *chanListener) Addr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)}
}

// failingConn fails every write.
type failingConn struct {
	net.Conn
}

func (failingConn) Write([]byte) (int, error) {
	return 0, errBrokenPipe
}

func newFailingConn(t *testing.T) net.Conn {
	a, b := net.Pipe()
	t.Cleanup(func() { _ = b.Close() }) //nolint:errcheck
	return failingConn{Conn: a}
}

// startServer serves a Server on a local TCP listener and returns the listening address.
func startServer(t *testing.T, conf *ServerConfig) (*Server, string) {
	lis, err := nettest.NewLocalListener("tcp")
	require.NoError(t, err)

	srv := NewServer(conf, nil)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(lis)
		close(errCh)
	}()

	t.Cleanup(func() {
		require.NoError(t, srv.Close())
		require.NoError(t, <-errCh)
	})

	return srv, lis.Addr().String()
}

func trackedConns(s *Server) []net.Conn {
	s.mx.Lock()
	defer s.mx.Unlock()
	conns := make([]net.Conn, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	return conns
}
