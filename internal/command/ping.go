package command

import (
	"github.com/keevadb/keeva-go/internal/resp"
	"github.com/keevadb/keeva-go/internal/store"
)

// Ping implements PING. Arguments are ignored.
type Ping struct{}

func (Ping) Name() string { return "PING" }

func (Ping) Handle(_ []resp.Value, _ *store.Store) resp.Value {
	return resp.SimpleString("PONG")
}
