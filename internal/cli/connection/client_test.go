package connection

import (
	"net"
	"testing"
	"time"

	"github.com/keevadb/keeva-go/internal/resp"
)

// fakeServer answers each incoming frame with canned reply bytes,
// optionally split into multiple writes.
func fakeServer(t *testing.T, replies ...[]byte) *Client {
	t.Helper()

	client, server := net.Pipe()
	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
	})

	go func() {
		buf := make([]byte, 4096)
		for _, reply := range replies {
			if _, err := server.Read(buf); err != nil {
				return
			}
			for _, b := range reply {
				if _, err := server.Write([]byte{b}); err != nil {
					return
				}
			}
		}
	}()

	return NewClient(client)
}

func TestDo_SimpleReply(t *testing.T) {
	c := fakeServer(t, []byte("+PONG\r\n"))

	got, err := c.Do("PING")
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !got.Equal(resp.SimpleString("PONG")) {
		t.Errorf("reply = %+v", got)
	}
}

func TestDo_ReassemblesSplitReply(t *testing.T) {
	// The fake server writes the reply one byte at a time, so the
	// client must keep reading until the frame completes.
	c := fakeServer(t, []byte("$5\r\nhello\r\n"))

	got, err := c.Do("GET", "key")
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !got.Equal(resp.BulkString("hello")) {
		t.Errorf("reply = %+v", got)
	}
}

func TestDo_ErrorReplyIsAValue(t *testing.T) {
	c := fakeServer(t, []byte("-ERR Command (FOO) is not valid\r\n"))

	got, err := c.Do("FOO")
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got.Kind != resp.KindSimpleError {
		t.Errorf("reply kind = %v, want simple error", got.Kind)
	}
}

func TestDo_NoCommand(t *testing.T) {
	c := fakeServer(t)
	if _, err := c.Do(); err == nil {
		t.Error("expected error for empty command")
	}
}

func TestDo_MalformedReply(t *testing.T) {
	c := fakeServer(t, []byte("bogus\r\n"))

	if _, err := c.Do("PING"); err == nil {
		t.Error("expected error for malformed reply")
	}
}

func TestDo_ClosedConnection(t *testing.T) {
	client, server := net.Pipe()
	_ = server.Close()
	_ = client.SetDeadline(time.Now().Add(time.Second))

	c := NewClient(client)
	if _, err := c.Do("PING"); err == nil {
		t.Error("expected error on closed connection")
	}
}
