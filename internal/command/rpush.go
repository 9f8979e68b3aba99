package command

import (
	"github.com/keevadb/keeva-go/internal/resp"
	"github.com/keevadb/keeva-go/internal/store"
)

// Rpush implements RPUSH <key> <value> [value ...]. A vacant key gets a
// fresh list; pushing onto a string entry is a WRONGTYPE error and
// leaves the store untouched.
type Rpush struct{}

func (Rpush) Name() string { return "RPUSH" }

func (Rpush) Handle(args []resp.Value, st *store.Store) resp.Value {
	if len(args) == 0 {
		return argError("RPUSH", "Missing key")
	}
	key, ok := args[0].AsText()
	if !ok {
		return argError("RPUSH", "Failed to extract key")
	}

	values := make([]string, 0, len(args)-1)
	for _, arg := range args[1:] {
		value, ok := arg.AsText()
		if !ok {
			return argError("RPUSH", "Failed to extract value")
		}
		values = append(values, value)
	}
	if len(values) == 0 {
		return argError("RPUSH", "At least one value must be provided")
	}

	var reply resp.Value
	st.Slot(key, func(e *store.Entry) *store.Entry {
		if e == nil {
			list := store.List(values)
			reply = resp.Integer(int64(len(list)))
			return &store.Entry{Value: list}
		}

		list, isList := e.Value.(store.List)
		if !isList {
			reply = resp.BulkError("WRONGTYPE Entry at key " + key + " is not a list")
			return e
		}

		list = append(list, values...)
		e.Value = list
		reply = resp.Integer(int64(len(list)))
		return e
	})
	return reply
}
