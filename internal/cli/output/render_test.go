package output

import (
	"testing"

	"github.com/keevadb/keeva-go/internal/resp"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		value resp.Value
		want  string
	}{
		{"simple string", resp.SimpleString("OK"), "OK"},
		{"simple error", resp.SimpleError("ERR boom"), "(error) ERR boom"},
		{"bulk error", resp.BulkError("WRONGTYPE stored type is not a string"), "(error) WRONGTYPE stored type is not a string"},
		{"bulk string", resp.BulkString("hello"), `"hello"`},
		{"bulk string with quotes", resp.BulkString(`say "hi"`), `"say \"hi\""`},
		{"null bulk string", resp.NullBulkString(), "(nil)"},
		{"null", resp.Null(), "(nil)"},
		{"integer", resp.Integer(42), "(integer) 42"},
		{"negative integer", resp.Integer(-1), "(integer) -1"},
		{"empty array", resp.Array(), "(empty array)"},
		{
			"flat array",
			resp.Array(resp.BulkString("a"), resp.Integer(2)),
			"1) \"a\"\n2) (integer) 2",
		},
		{
			"nested array",
			resp.Array(
				resp.BulkString("top"),
				resp.Array(resp.BulkString("x"), resp.BulkString("y")),
			),
			"1) \"top\"\n2) 1) \"x\"\n   2) \"y\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.value); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}
