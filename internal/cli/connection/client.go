// Package connection provides the RESP client used by keeva-cli.
package connection

import (
	"errors"
	"net"
	"time"

	"github.com/keevadb/keeva-go/internal/resp"
)

// DefaultDialTimeout bounds connection establishment.
const DefaultDialTimeout = 5 * time.Second

const readChunkSize = 4096

// Client is a RESP client over a single TCP connection. It is not safe
// for concurrent use.
type Client struct {
	conn net.Conn
	buf  []byte
}

// Dial connects to a server.
func Dial(addr string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, DefaultDialTimeout)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// NewClient wraps an existing connection. Used by tests.
func NewClient(conn net.Conn) *Client {
	return &Client{conn: conn}
}

// Do sends a command and returns the server's reply. Protocol errors,
// including server replies carrying the error wire types, are returned
// as values, not errors; the error return covers transport failures.
func (c *Client) Do(args ...string) (resp.Value, error) {
	if len(args) == 0 {
		return resp.Value{}, errors.New("no command given")
	}

	if _, err := c.conn.Write(resp.Command(args...)); err != nil {
		return resp.Value{}, err
	}
	return c.readReply()
}

// readReply reads from the socket until one complete frame is buffered.
// Unlike the server, the client tolerates frames split across reads.
func (c *Client) readReply() (resp.Value, error) {
	for {
		if len(c.buf) > 0 {
			v, rest, err := resp.Parse(c.buf)
			if err == nil {
				c.buf = rest
				return v, nil
			}
			if !errors.Is(err, resp.ErrIncomplete) {
				return resp.Value{}, err
			}
		}

		chunk := make([]byte, readChunkSize)
		n, err := c.conn.Read(chunk)
		if n > 0 {
			c.buf = append(c.buf, chunk[:n]...)
			continue
		}
		if err != nil {
			return resp.Value{}, err
		}
	}
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
