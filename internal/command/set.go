package command

import (
	"strconv"
	"strings"
	"time"

	"github.com/keevadb/keeva-go/internal/resp"
	"github.com/keevadb/keeva-go/internal/store"
)

// Set implements SET <key> <value> [PX <milliseconds>]. The entry at
// key is replaced wholesale regardless of its previous type or TTL.
type Set struct{}

func (Set) Name() string { return "SET" }

func (Set) Handle(args []resp.Value, st *store.Store) resp.Value {
	if len(args) == 0 {
		return argError("SET", "Missing key")
	}
	key, ok := args[0].AsText()
	if !ok {
		return argError("SET", "Failed to extract key")
	}

	if len(args) < 2 {
		return argError("SET", "Missing value")
	}
	value, ok := args[1].AsText()
	if !ok {
		return argError("SET", "Failed to extract value")
	}

	entry := store.Entry{Value: store.String(value)}
	for i := 2; i < len(args); i++ {
		option, ok := args[i].AsText()
		if !ok {
			return argError("SET", "Failed to extract option")
		}

		switch strings.ToLower(option) {
		case "px":
			i++
			if i >= len(args) {
				return argError("SET", "Missing milliseconds for PX option")
			}
			raw, ok := args[i].AsText()
			if !ok {
				return argError("SET", "Failed to extract duration string")
			}
			ms, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return argError("SET", "Failed to convert PX duration string to a number")
			}
			entry.ExpiresAt = st.Now().Add(time.Duration(ms) * time.Millisecond)
		default:
			return argError("SET", option+" is not a valid option")
		}
	}

	st.Upsert(key, entry)
	return resp.SimpleString("OK")
}
