package resp

// Kind identifies the wire type of a Value.
type Kind byte

const (
	KindSimpleString Kind = iota
	KindSimpleError
	KindBulkString
	KindBulkError
	KindInteger
	KindArray
	KindNull
)

// String returns the wire-type name, for logs and panic messages.
func (k Kind) String() string {
	switch k {
	case KindSimpleString:
		return "simple-string"
	case KindSimpleError:
		return "simple-error"
	case KindBulkString:
		return "bulk-string"
	case KindBulkError:
		return "bulk-error"
	case KindInteger:
		return "integer"
	case KindArray:
		return "array"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is one RESP protocol value. Exactly one of the payload fields is
// meaningful, selected by Kind. Null reports a null bulk string ($-1) and
// is only set when Kind is KindBulkString.
type Value struct {
	Kind  Kind
	Text  string
	Null  bool
	Int   int64
	Elems []Value
}

// SimpleString returns a +<s> status value.
func SimpleString(s string) Value { return Value{Kind: KindSimpleString, Text: s} }

// SimpleError returns a -<s> one-line error value.
func SimpleError(s string) Value { return Value{Kind: KindSimpleError, Text: s} }

// BulkString returns a length-prefixed string value.
func BulkString(s string) Value { return Value{Kind: KindBulkString, Text: s} }

// NullBulkString returns the absent bulk string ($-1).
func NullBulkString() Value { return Value{Kind: KindBulkString, Null: true} }

// BulkError returns a length-prefixed error value.
func BulkError(s string) Value { return Value{Kind: KindBulkError, Text: s} }

// Integer returns a signed 64-bit numeric value.
func Integer(n int64) Value { return Value{Kind: KindInteger, Int: n} }

// Array returns an ordered composite value.
func Array(elems ...Value) Value { return Value{Kind: KindArray, Elems: elems} }

// Null returns the explicit no-value marker (_).
func Null() Value { return Value{Kind: KindNull} }

// AsText extracts the textual payload of a SimpleString or a non-null
// BulkString. Every other kind reports false; command handlers use this
// to pull keys and values out of request arguments.
func (v Value) AsText() (string, bool) {
	switch v.Kind {
	case KindSimpleString:
		return v.Text, true
	case KindBulkString:
		if v.Null {
			return "", false
		}
		return v.Text, true
	default:
		return "", false
	}
}

// Equal reports whether two values are identical, including the
// null-bulk distinction and array ordering.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindSimpleString, KindSimpleError, KindBulkError:
		return v.Text == o.Text
	case KindBulkString:
		return v.Null == o.Null && v.Text == o.Text
	case KindInteger:
		return v.Int == o.Int
	case KindArray:
		if len(v.Elems) != len(o.Elems) {
			return false
		}
		for i := range v.Elems {
			if !v.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	case KindNull:
		return true
	default:
		return false
	}
}
