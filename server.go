package greeter

import (
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skycoin/skycoin/src/util/logging"

	"github.com/skycoin/greeter/servermetrics"
)

// ServerConfig configures the greeter server.
type ServerConfig struct {
	// FailFast stops the server on the first failed greeting and makes Serve return the
	// write error. Otherwise a failed greeting only affects its own connection.
	FailFast bool

	// WriteTimeout bounds the greeting write. Zero means no timeout.
	WriteTimeout time.Duration
}

// DefaultServerConfig returns the default server config.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		FailFast:     false,
		WriteTimeout: DefaultWriteTimeout,
	}
}

// ServerStats is a snapshot of the server counters.
type ServerStats struct {
	LocalAddr       string `json:"local_addr"`
	ActiveConns     int64  `json:"active_conns"`
	AcceptedConns   int64  `json:"accepted_conns"`
	Greetings       int64  `json:"greetings"`
	FailedGreetings int64  `json:"failed_greetings"`
}

// Server greets every accepted connection and drops it.
type Server struct {
	active   int64 // 64-bit aligned for atomic access
	accepted int64
	greeted  int64
	failed   int64

	conf ServerConfig
	m    servermetrics.Metrics
	log  logrus.FieldLogger

	localAddr atomic.Value // string

	conns map[net.Conn]struct{}
	mx    sync.Mutex // guards conns, done and wg.Add

	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup

	fatal    chan struct{}
	fatalErr error
	fatalOne sync.Once
}

// NewServer creates a new greeter server.
func NewServer(conf *ServerConfig, m servermetrics.Metrics) *Server {
	if conf == nil {
		conf = DefaultServerConfig()
	}
	if m == nil {
		m = servermetrics.NewEmpty()
	}
	s := &Server{
		conf:  *conf,
		m:     m,
		log:   logging.MustGetLogger("greeter"),
		conns: make(map[net.Conn]struct{}),
		done:  make(chan struct{}),
		fatal: make(chan struct{}),
	}
	s.localAddr.Store("")
	return s
}

// SetLogger should not be called after the server is serving.
func (s *Server) SetLogger(log logrus.FieldLogger) { s.log = log }

// Stats returns a snapshot of the server counters.
func (s *Server) Stats() ServerStats {
	return ServerStats{
		LocalAddr:       s.localAddr.Load().(string),
		ActiveConns:     atomic.LoadInt64(&s.active),
		AcceptedConns:   atomic.LoadInt64(&s.accepted),
		Greetings:       atomic.LoadInt64(&s.greeted),
		FailedGreetings: atomic.LoadInt64(&s.failed),
	}
}

// Close stops the server from accepting, closes in-flight connections and waits for
// their handlers to return.
func (s *Server) Close() error {
	if s == nil {
		return nil
	}
	s.once.Do(func() {
		s.mx.Lock()
		close(s.done)
		conns := make([]net.Conn, 0, len(s.conns))
		for conn := range s.conns {
			conns = append(conns, conn)
		}
		s.mx.Unlock()

		for _, conn := range conns {
			_ = conn.Close() //nolint:errcheck
		}
		s.wg.Wait()
	})
	return nil
}

// Serve accepts connections from lis until the server is closed, the listener fails, or
// (with FailFast) a greeting fails. A closed server returns nil.
func (s *Server) Serve(lis net.Listener) error {
	addr := lis.Addr().String()
	s.localAddr.Store(addr)

	log := s.log.WithField("local_addr", addr)

	s.mx.Lock()
	if isClosed(s.done) {
		s.mx.Unlock()
		_ = lis.Close() //nolint:errcheck
		return nil
	}
	s.wg.Add(1)
	s.mx.Unlock()
	defer s.wg.Done()

	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-s.done:
			log.Info("Stopping server...")
		case <-s.fatal:
		case <-stopped:
		}
		_ = lis.Close() //nolint:errcheck
	}()

	log.Info("Accepting connections...")
	defer log.Info("Stopped server.")

	for {
		conn, err := lis.Accept()
		if err != nil {
			if isClosed(s.fatal) {
				return s.fatalErr
			}
			// If server is closed, there is no error to report.
			if isClosed(s.done) {
				return nil
			}
			return err
		}

		if !s.trackConn(conn) {
			_ = conn.Close() //nolint:errcheck
			return nil
		}
		go func() {
			s.handleConn(conn)
			s.untrackConn(conn)
			s.wg.Done()
		}()
	}
}

// trackConn registers conn so Close can interrupt its greeting. It returns false once
// the server is closed.
func (s *Server) trackConn(conn net.Conn) bool {
	s.mx.Lock()
	defer s.mx.Unlock()
	if isClosed(s.done) {
		return false
	}
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrackConn(conn net.Conn) {
	s.mx.Lock()
	delete(s.conns, conn)
	s.mx.Unlock()
}

func (s *Server) handleConn(conn net.Conn) {
	log := s.log.WithField("remote_tcp", conn.RemoteAddr())

	atomic.AddInt64(&s.accepted, 1)
	atomic.AddInt64(&s.active, 1)
	s.m.RecordConn(servermetrics.DeltaSuccess)

	defer func() {
		_ = conn.Close() //nolint:errcheck
		atomic.AddInt64(&s.active, -1)
		s.m.RecordConn(servermetrics.DeltaClose)
	}()

	log.Info("Got connection.")

	if err := s.greet(conn); err != nil {
		atomic.AddInt64(&s.failed, 1)
		s.m.RecordGreeting(servermetrics.DeltaFailed)

		if s.conf.FailFast {
			log.WithError(err).Error("Failed to write greeting, stopping server.")
			s.fail(fmt.Errorf("write greeting to %s: %w", conn.RemoteAddr(), err))
			return
		}
		log.WithError(err).Warn("Failed to write greeting.")
		return
	}

	atomic.AddInt64(&s.greeted, 1)
	s.m.RecordGreeting(servermetrics.DeltaSuccess)
	log.Info("Finished writing greeting.")
}

// greet performs the single greeting write on conn.
func (s *Server) greet(conn net.Conn) error {
	if s.conf.WriteTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(s.conf.WriteTimeout)); err != nil {
			return err
		}
	}
	n, err := conn.Write([]byte(Greeting))
	if err == nil && n < len(Greeting) {
		err = io.ErrShortWrite
	}
	return err
}

func (s *Server) fail(err error) {
	s.fatalOne.Do(func() {
		s.fatalErr = err
		close(s.fatal)
	})
}
