// Package output renders RESP replies for terminal display.
//
// The rendering follows the conventions redis-cli users expect:
// quoted bulk strings, "(integer) n" for numbers, "(nil)" for absent
// values and numbered, indented lines for arrays.
package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/keevadb/keeva-go/internal/resp"
)

// Render formats a reply for display. The result has no trailing
// newline.
func Render(v resp.Value) string {
	switch v.Kind {
	case resp.KindSimpleString:
		return v.Text
	case resp.KindSimpleError, resp.KindBulkError:
		return "(error) " + v.Text
	case resp.KindBulkString:
		if v.Null {
			return "(nil)"
		}
		return strconv.Quote(v.Text)
	case resp.KindInteger:
		return "(integer) " + strconv.FormatInt(v.Int, 10)
	case resp.KindNull:
		return "(nil)"
	case resp.KindArray:
		if len(v.Elems) == 0 {
			return "(empty array)"
		}
		return renderArray(v.Elems, "")
	default:
		return fmt.Sprintf("(unknown reply type %v)", v.Kind)
	}
}

// renderArray renders numbered elements, indenting nested arrays under
// their label.
func renderArray(elems []resp.Value, indent string) string {
	var b strings.Builder
	for i, e := range elems {
		if i > 0 {
			b.WriteByte('\n')
			b.WriteString(indent)
		}

		label := strconv.Itoa(i+1) + ") "
		b.WriteString(label)

		if e.Kind == resp.KindArray && len(e.Elems) > 0 {
			b.WriteString(renderArray(e.Elems, indent+strings.Repeat(" ", len(label))))
			continue
		}
		b.WriteString(Render(e))
	}
	return b.String()
}
