package command

import (
	"github.com/keevadb/keeva-go/internal/resp"
	"github.com/keevadb/keeva-go/internal/store"
)

// Echo implements ECHO: the first argument's text comes back as a bulk
// string; no argument, or one with no extractable text, yields the
// null bulk string.
type Echo struct{}

func (Echo) Name() string { return "ECHO" }

func (Echo) Handle(args []resp.Value, _ *store.Store) resp.Value {
	if len(args) == 0 {
		return resp.NullBulkString()
	}
	text, ok := args[0].AsText()
	if !ok {
		return resp.NullBulkString()
	}
	return resp.BulkString(text)
}
