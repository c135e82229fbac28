package greeter

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/nettest"
)

// plainDialer hides DialContext so Greet falls back to Dial.
type plainDialer struct {
	dials int32
}

func (d *plainDialer) Dial(network, addr string) (net.Conn, error) {
	atomic.AddInt32(&d.dials, 1)
	return net.Dial(network, addr)
}

// rawServer accepts a single connection and hands it to fn.
func rawServer(t *testing.T, fn func(conn net.Conn)) string {
	lis, err := nettest.NewLocalListener("tcp")
	require.NoError(t, err)
	t.Cleanup(func() { _ = lis.Close() }) //nolint:errcheck

	go func() {
		conn, err := lis.Accept()
		if err != nil {
			return
		}
		fn(conn)
	}()

	return lis.Addr().String()
}

func TestGreet_Dialer(t *testing.T) {
	_, addr := startServer(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	d := new(plainDialer)
	b, err := Greet(ctx, d, addr, nil)
	require.NoError(t, err)
	assert.Equal(t, Greeting, string(b))
	assert.Equal(t, int32(1), atomic.LoadInt32(&d.dials))
}

func TestGreet_ShortGreeting(t *testing.T) {
	addr := rawServer(t, func(conn net.Conn) {
		_, _ = conn.Write([]byte("Hel")) //nolint:errcheck
		_ = conn.Close()                 //nolint:errcheck
	})

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	b, err := Greet(ctx, nil, addr, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShortGreeting))
	assert.Equal(t, "Hel", string(b))
}

func TestGreet_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	addr := rawServer(t, func(conn net.Conn) {
		<-release
		_ = conn.Close() //nolint:errcheck
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Greet(ctx, nil, addr, nil)
	require.Error(t, err)
	assert.Less(t, int64(time.Since(start)), int64(testTimeout))
}

func TestGreet_DialError(t *testing.T) {
	lis, err := nettest.NewLocalListener("tcp")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	_, err = Greet(ctx, nil, addr, nil)
	assert.Error(t, err)
}
