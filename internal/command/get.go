package command

import (
	"github.com/keevadb/keeva-go/internal/resp"
	"github.com/keevadb/keeva-go/internal/store"
)

// Get implements GET. An absent or expired key is Null; a key holding
// a list is a WRONGTYPE error.
type Get struct{}

func (Get) Name() string { return "GET" }

func (Get) Handle(args []resp.Value, st *store.Store) resp.Value {
	if len(args) == 0 {
		return argError("GET", "Missing key")
	}
	key, ok := args[0].AsText()
	if !ok {
		return argError("GET", "Failed to extract key")
	}

	entry, found := st.Lookup(key)
	if !found {
		return resp.Null()
	}

	s, isString := entry.Value.(store.String)
	if !isString {
		return resp.BulkError("WRONGTYPE stored type is not a string")
	}
	return resp.BulkString(string(s))
}
