package ipc

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"pie-menu/messages"
)

// Client delegates commands to a running resident.
type Client interface {
	// TriggerInvocation scans the port range for a resident and asks it to
	// open the menu. Returns delegated=false with a nil error when no
	// resident was found.
	TriggerInvocation(ctx context.Context) (delegated bool, err error)
}

func NewClient() Client { return &tcpClient{} }

type tcpClient struct{}

func (c *tcpClient) TriggerInvocation(ctx context.Context) (bool, error) {
	deadline := 2 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 {
			deadline = d
		}
	}

	start, end := portRange()
	for port := start; port <= end; port++ {
		addr := net.JoinHostPort(residentHost, strconv.Itoa(port))
		if !ping(addr, deadline) {
			continue
		}
		conn, err := net.DialTimeout("tcp", addr, deadline)
		if err != nil {
			continue
		}
		data, err := messages.Marshal(messages.TriggerInvocation{})
		if err != nil {
			conn.Close()
			return true, err
		}
		_, err = conn.Write(append(data, '\n'))
		conn.Close()
		return true, err
	}
	return false, nil
}

func ping(addr string, deadline time.Duration) bool {
	conn, err := net.DialTimeout("tcp", addr, deadline)
	if err != nil {
		return false
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(deadline))
	if _, err := conn.Write([]byte(pingRequest + "\n")); err != nil {
		return false
	}
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == strings.TrimSpace(pongResponse)
}
