package respserver

import (
	"errors"
	"log/slog"
	"net"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/keevadb/keeva-go/internal/command"
	"github.com/keevadb/keeva-go/internal/resp"
	"github.com/keevadb/keeva-go/internal/store"
	"github.com/keevadb/keeva-go/internal/telemetry/metric"
)

const readChunkSize = 4096

// ConnHandler drives the request/reply loop for a single client
// connection. It is not safe for concurrent use.
type ConnHandler struct {
	conn    net.Conn
	buf     []byte
	logger  *slog.Logger
	limiter *rate.Limiter
	metrics *metric.Registry
}

// NewConnHandler creates a handler for the given connection.
func NewConnHandler(conn net.Conn) *ConnHandler {
	return &ConnHandler{
		conn:   conn,
		logger: slog.Default(),
	}
}

// Run serves the connection until the client disconnects or violates the
// protocol. It does not close the connection; that is the caller's job.
func (h *ConnHandler) Run(st *store.Store, reg *command.Registry) {
	for {
		frame, err := h.next()
		if err != nil {
			h.logger.Debug("closing connection", "reason", err)
			return
		}

		name, args, err := splitCommand(frame)
		if err != nil {
			h.logger.Debug("closing connection", "reason", err)
			return
		}

		if h.limiter != nil && !h.limiter.Allow() {
			if err := h.write(resp.SimpleError("ERR rate limit exceeded")); err != nil {
				return
			}
			continue
		}

		start := time.Now()
		reply := reg.Dispatch(name, args, st)
		if h.metrics != nil {
			label := strings.ToUpper(name)
			h.metrics.CommandsTotal.WithLabelValues(label).Inc()
			h.metrics.CommandDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
		}

		if err := h.write(reply); err != nil {
			h.logger.Debug("write failed", "error", err)
			return
		}
	}
}

// next returns the next complete frame. Pipelined frames left over from
// an earlier read are consumed before the socket is touched again. A
// read that delivers a truncated or malformed frame is a protocol
// violation and terminates the connection.
func (h *ConnHandler) next() (resp.Value, error) {
	if len(h.buf) == 0 {
		if err := h.fill(); err != nil {
			return resp.Value{}, err
		}
	}

	frame, rest, err := resp.Parse(h.buf)
	if err != nil {
		return resp.Value{}, err
	}
	h.buf = rest
	return frame, nil
}

// fill performs one socket read and appends the result to the buffer.
func (h *ConnHandler) fill() error {
	chunk := make([]byte, readChunkSize)
	n, err := h.conn.Read(chunk)
	if n > 0 {
		h.buf = append(h.buf, chunk[:n]...)
		return nil
	}
	return err
}

var errNotCommand = errors.New("frame is not a command array")

// splitCommand extracts the command name and arguments from a client
// frame. Commands arrive as a non-empty array whose first element is a
// textual command name.
func splitCommand(frame resp.Value) (string, []resp.Value, error) {
	if frame.Kind != resp.KindArray || frame.Null || len(frame.Elems) == 0 {
		return "", nil, errNotCommand
	}
	name, ok := frame.Elems[0].AsText()
	if !ok {
		return "", nil, errNotCommand
	}
	return name, frame.Elems[1:], nil
}

func (h *ConnHandler) write(v resp.Value) error {
	_, err := h.conn.Write(v.Encode())
	return err
}
