package ipc

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"pie-menu/messages"
)

func startTestServer(t *testing.T, port int) Server {
	t.Helper()
	t.Setenv("IPC_PORT_START", fmt.Sprint(port))
	t.Setenv("IPC_PORT_END", fmt.Sprint(port))

	srv := NewServer()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("server start failed: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

func TestClientTriggerReachesInbound(t *testing.T) {
	srv := startTestServer(t, 49721)

	delegated, err := NewClient().TriggerInvocation(context.Background())
	if err != nil {
		t.Fatalf("TriggerInvocation failed: %v", err)
	}
	if !delegated {
		t.Fatal("client should have found the resident")
	}

	select {
	case m := <-srv.Inbound():
		if _, ok := m.(messages.TriggerInvocation); !ok {
			t.Fatalf("inbound message is %T, expected TriggerInvocation", m)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("trigger never arrived on the inbound channel")
	}
}

func TestClientReturnsNotDelegatedWithoutResident(t *testing.T) {
	t.Setenv("IPC_PORT_START", "49722")
	t.Setenv("IPC_PORT_END", "49722")

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	delegated, err := NewClient().TriggerInvocation(ctx)
	if err != nil {
		t.Fatalf("TriggerInvocation failed: %v", err)
	}
	if delegated {
		t.Fatal("no resident exists, delegation should report false")
	}
}

func TestSurfaceCommandAndPublish(t *testing.T) {
	srv := startTestServer(t, 49723)

	conn, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", srv.Port()))
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Attach as a surface by sending a command line.
	data, _ := messages.Marshal(messages.RequestHide{DelayMs: 300})
	if _, err := conn.Write(append(data, '\n')); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case m := <-srv.Inbound():
		rh, ok := m.(messages.RequestHide)
		if !ok {
			t.Fatalf("inbound message is %T, expected RequestHide", m)
		}
		if rh.DelayMs != 300 {
			t.Errorf("DelayMs = %d, expected 300", rh.DelayMs)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("command never arrived")
	}

	// Events published by the loop reach the attached surface.
	srv.Publish(messages.ShowMenu{
		Pointer:       messages.Pointer{X: 512, Y: 300},
		FocusedWindow: &messages.FocusedWindow{WMClass: "firefox"},
	})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("reading published event failed: %v", err)
	}
	if !strings.Contains(line, `"type":"show-menu"`) || !strings.Contains(line, `"wmClass":"firefox"`) {
		t.Errorf("unexpected published event: %s", line)
	}
}

func TestSilentSurfaceStillReceivesEvents(t *testing.T) {
	prev := handshakeWindow
	handshakeWindow = 100 * time.Millisecond
	t.Cleanup(func() { handshakeWindow = prev })

	srv := startTestServer(t, 49725)

	// Attach as a listen-only surface: connect and say nothing.
	conn, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", srv.Port()))
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	time.Sleep(3 * handshakeWindow)

	srv.Publish(messages.ShowMenu{Pointer: messages.Pointer{X: 512, Y: 300}})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("silent surface never received the event: %v", err)
	}
	if !strings.Contains(line, `"type":"show-menu"`) || !strings.Contains(line, `"x":512`) {
		t.Errorf("unexpected published event: %s", line)
	}
}

func TestSecondResidentFailsToBind(t *testing.T) {
	startTestServer(t, 49724)

	second := NewServer()
	if err := second.Start(context.Background()); err == nil {
		second.Close()
		t.Fatal("second resident should fail to bind the claimed port")
	}
}
