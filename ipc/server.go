// Package ipc carries the surface protocol over loopback TCP, one JSON
// envelope per line. The same endpoint doubles as the single-instance
// guard: a second resident fails to bind, and trigger clients find the
// resident with a PING handshake.
package ipc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"pie-menu/messages"
)

const (
	residentHost = "127.0.0.1"
	pingRequest  = "PING"
	pongResponse = "PONG\n"
)

// handshakeWindow bounds the wait for a connection's first line. It only
// distinguishes a PING probe from a surface attach; a surface that stays
// silent past it is kept as a listener, never dropped.
var handshakeWindow = 3 * time.Second

// Server accepts render-surface and trigger connections and fans decoded
// commands into a single inbound channel for the event loop.
type Server interface {
	// Start binds the first port of the configured range and begins
	// accepting. Fails if the port is taken (another resident owns it).
	Start(ctx context.Context) error
	// Port returns the bound TCP port, or 0 if not started.
	Port() int
	// Inbound delivers every decoded command from every connection.
	Inbound() <-chan messages.Message
	// Publish sends an event to all attached connections. Best effort:
	// write failures drop the connection and are logged.
	Publish(m messages.Message)
	// Close stops accepting and closes all connections.
	Close() error
}

func NewServer() Server {
	return &tcpServer{inbound: make(chan messages.Message, 16), conns: make(map[net.Conn]struct{})}
}

type tcpServer struct {
	lis     net.Listener
	port    int
	inbound chan messages.Message

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

func (s *tcpServer) Start(ctx context.Context) error {
	if s.lis != nil {
		return nil
	}
	start, _ := portRange()
	addr := fmt.Sprintf("%s:%d", residentHost, start)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("ipc: failed to bind %s: %v", addr, err)
		return err
	}
	s.lis = lis
	s.port = start
	log.Printf("ipc: listening on %s", addr)
	go s.acceptLoop(ctx)
	return nil
}

func (s *tcpServer) Port() int { return s.port }

func (s *tcpServer) Inbound() <-chan messages.Message { return s.inbound }

func (s *tcpServer) acceptLoop(ctx context.Context) {
	for {
		c, err := s.lis.Accept()
		if err != nil {
			return
		}
		go s.serveConn(ctx, c)
	}
}

func (s *tcpServer) serveConn(ctx context.Context, c net.Conn) {
	remote := c.RemoteAddr().String()
	_ = c.SetReadDeadline(time.Now().Add(handshakeWindow))
	sc := bufio.NewScanner(c)

	var line string
	haveLine := sc.Scan()
	if haveLine {
		line = sc.Text()
		if line == pingRequest {
			log.Printf("ipc: PING from %s -> PONG", remote)
			_, _ = c.Write([]byte(pongResponse))
			_ = c.Close()
			return
		}
	} else {
		var ne net.Error
		if err := sc.Err(); err == nil || !errors.As(err, &ne) || !ne.Timeout() {
			// Closed or broken before saying anything.
			_ = c.Close()
			return
		}
		// Silent within the handshake window: a surface that only listens
		// for events. The timed-out scanner is spent; read on with a
		// fresh one.
		sc = bufio.NewScanner(c)
	}

	// A real client: register for published events and keep reading
	// command lines until it goes away.
	_ = c.SetReadDeadline(time.Time{})
	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()
	log.Printf("ipc: client attached from %s", remote)

	defer func() {
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
		_ = c.Close()
		log.Printf("ipc: client detached from %s", remote)
	}()

	for {
		if haveLine {
			m, err := messages.Unmarshal([]byte(line))
			if err != nil {
				log.Printf("ipc: bad message from %s: %v", remote, err)
			} else {
				select {
				case s.inbound <- m:
				case <-ctx.Done():
					return
				}
			}
		}
		if !sc.Scan() {
			return
		}
		line = sc.Text()
		haveLine = true
	}
}

func (s *tcpServer) Publish(m messages.Message) {
	data, err := messages.Marshal(m)
	if err != nil {
		log.Printf("ipc: cannot marshal %s: %v", m.Type(), err)
		return
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		_ = c.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if _, err := c.Write(data); err != nil {
			log.Printf("ipc: dropping client %s: %v", c.RemoteAddr(), err)
			_ = c.Close()
			delete(s.conns, c)
		}
	}
}

func (s *tcpServer) Close() error {
	if s.lis != nil {
		_ = s.lis.Close()
		s.lis = nil
	}
	s.mu.Lock()
	for c := range s.conns {
		_ = c.Close()
	}
	s.conns = make(map[net.Conn]struct{})
	s.mu.Unlock()
	return nil
}
