package source

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"
)

// TestNetworkSourceWritesRequestLineByLine verifies the request is built
// from the exact lines write_http_request assembles, and that basic auth
// is included when both user and pass are set.
func TestNetworkSourceWritesRequestLineByLine(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan []string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))

		var lines []string
		r := bufio.NewReader(conn)
		for {
			line, err := r.ReadString('\n')
			if line != "" {
				lines = append(lines, line)
			}
			if err != nil || line == "\r\n" {
				break
			}
		}
		received <- lines
	}()

	host, portStr, _ := net.SplitHostPort(ln.Addr().String())
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parse port: %v", err)
	}

	src := NewNetwork("cam", host, port, "/video.mjpg", "alice", "secret")
	if err := src.Open(context.Background()); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	select {
	case lines := <-received:
		if len(lines) < 4 {
			t.Fatalf("got %d lines, want at least 4: %v", len(lines), lines)
		}
		if lines[0] != "GET /video.mjpg HTTP/1.0\r\n" {
			t.Errorf("request line = %q", lines[0])
		}
		if lines[1] != "Connection: Keep-Alive\r\n" {
			t.Errorf("keep-alive line = %q", lines[1])
		}
		if !strings.HasPrefix(lines[2], "Authorization: Basic ") {
			t.Errorf("auth line = %q", lines[2])
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for request")
	}
}

func TestNetworkSourceRejectsInvalidPort(t *testing.T) {
	src := NewNetwork("cam", "localhost", 70000, "/", "", "")
	if err := src.Open(context.Background()); err == nil {
		t.Fatal("Open() with invalid port succeeded, want error")
	}
}

func TestNetworkSourceRejectsEmptyHost(t *testing.T) {
	src := NewNetwork("cam", "", 80, "/", "", "")
	if err := src.Open(context.Background()); err == nil {
		t.Fatal("Open() with empty host succeeded, want error")
	}
}

// An unresolvable hostname must surface ErrResolve, not the generic
// ErrConnect, so callers can tell DNS failures apart from a reachable
// host that simply refused the connection.
func TestNetworkSourceReportsResolveErrorForUnresolvableHost(t *testing.T) {
	src := NewNetwork("cam", "this-host-does-not-resolve.invalid", 80, "/", "", "")
	err := src.Open(context.Background())
	if err == nil {
		t.Fatal("Open() with unresolvable host succeeded, want error")
	}
	if !strings.Contains(err.Error(), "resolve") {
		t.Errorf("error = %q, want it to mention resolve", err.Error())
	}
}

// A reachable host that refuses the connection must surface ErrConnect,
// not ErrResolve.
func TestNetworkSourceReportsConnectErrorWhenRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	host, portStr, _ := net.SplitHostPort(ln.Addr().String())
	port, _ := strconv.Atoi(portStr)
	ln.Close() // closed immediately: nothing listens on this port now

	src := NewNetwork("cam", host, port, "/", "", "")
	openErr := src.Open(context.Background())
	if openErr == nil {
		t.Fatal("Open() against a closed port succeeded, want error")
	}
	if !strings.Contains(openErr.Error(), "connect") {
		t.Errorf("error = %q, want it to mention connect", openErr.Error())
	}
}
