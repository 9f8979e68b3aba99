package resp

import (
	"fmt"
	"strconv"
)

// Encode produces the exact wire bytes for the value. Encoding a value
// whose Kind is not one of the defined wire types is a programming
// error and panics.
func (v Value) Encode() []byte {
	return v.appendWire(nil)
}

func (v Value) appendWire(b []byte) []byte {
	switch v.Kind {
	case KindSimpleString:
		return appendLine(b, '+', v.Text)
	case KindSimpleError:
		return appendLine(b, '-', v.Text)
	case KindBulkString:
		if v.Null {
			return append(b, "$-1\r\n"...)
		}
		return appendBulk(b, '$', v.Text)
	case KindBulkError:
		return appendBulk(b, '!', v.Text)
	case KindInteger:
		b = append(b, ':')
		b = strconv.AppendInt(b, v.Int, 10)
		return append(b, crlf...)
	case KindArray:
		b = append(b, '*')
		b = strconv.AppendInt(b, int64(len(v.Elems)), 10)
		b = append(b, crlf...)
		for _, elem := range v.Elems {
			b = elem.appendWire(b)
		}
		return b
	case KindNull:
		return append(b, "_\r\n"...)
	default:
		panic(fmt.Sprintf("resp: no wire encoding for kind %d", v.Kind))
	}
}

func appendLine(b []byte, tag byte, s string) []byte {
	b = append(b, tag)
	b = append(b, s...)
	return append(b, crlf...)
}

// appendBulk length-prefixes with the byte length of the payload, never
// the rune count.
func appendBulk(b []byte, tag byte, s string) []byte {
	b = append(b, tag)
	b = strconv.AppendInt(b, int64(len(s)), 10)
	b = append(b, crlf...)
	b = append(b, s...)
	return append(b, crlf...)
}

// Command encodes argv as the canonical request form: an Array of
// BulkStrings whose first element is the command name.
func Command(args ...string) []byte {
	elems := make([]Value, 0, len(args))
	for _, arg := range args {
		elems = append(elems, BulkString(arg))
	}
	return Array(elems...).Encode()
}
