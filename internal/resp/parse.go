package resp

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrProtocol marks a malformed frame: bad type tag, bad length
	// header, mismatched lengths.
	ErrProtocol = errors.New("resp: protocol error")

	// ErrIncomplete marks a frame that cannot be decoded from the bytes
	// available. The server treats it like any other parse failure; a
	// client may keep the buffer and read more.
	ErrIncomplete = errors.New("resp: incomplete frame")
)

var crlf = []byte("\r\n")

// Parse decodes exactly one value from the front of buf and returns the
// unconsumed remainder. On failure the input buffer is returned
// unchanged.
func Parse(buf []byte) (Value, []byte, error) {
	if len(buf) == 0 {
		return Value{}, buf, fmt.Errorf("%w: empty buffer", ErrIncomplete)
	}

	tag, body := buf[0], buf[1:]
	var (
		v    Value
		rest []byte
		err  error
	)
	switch tag {
	case '+':
		v, rest, err = parseLineValue(body, KindSimpleString)
	case '-':
		v, rest, err = parseLineValue(body, KindSimpleError)
	case '$':
		v, rest, err = parseBulk(body, KindBulkString)
	case '!':
		v, rest, err = parseBulk(body, KindBulkError)
	case ':':
		v, rest, err = parseInteger(body)
	case '*':
		v, rest, err = parseArray(body)
	case '_':
		v, rest, err = parseNull(body)
	default:
		return Value{}, buf, fmt.Errorf("%w: unknown type tag %q", ErrProtocol, tag)
	}
	if err != nil {
		return Value{}, buf, err
	}
	return v, rest, nil
}

// cutLine splits buf at the first CRLF pair.
func cutLine(buf []byte) (line, rest []byte, err error) {
	i := bytes.Index(buf, crlf)
	if i < 0 {
		return nil, buf, fmt.Errorf("%w: missing CRLF terminator", ErrIncomplete)
	}
	return buf[:i], buf[i+2:], nil
}

func parseLineValue(buf []byte, kind Kind) (Value, []byte, error) {
	line, rest, err := cutLine(buf)
	if err != nil {
		return Value{}, buf, err
	}
	return Value{Kind: kind, Text: string(line)}, rest, nil
}

func parseBulk(buf []byte, kind Kind) (Value, []byte, error) {
	header, rest, err := cutLine(buf)
	if err != nil {
		return Value{}, buf, err
	}

	n, err := strconv.Atoi(string(header))
	if err != nil {
		return Value{}, buf, fmt.Errorf("%w: invalid bulk length %q", ErrProtocol, header)
	}
	if n == -1 && kind == KindBulkString {
		return NullBulkString(), rest, nil
	}
	if n < 0 {
		return Value{}, buf, fmt.Errorf("%w: negative bulk length %d", ErrProtocol, n)
	}

	if len(rest) < n+2 {
		return Value{}, buf, fmt.Errorf("%w: bulk declares %d bytes, %d available", ErrIncomplete, n, len(rest))
	}
	if !bytes.Equal(rest[n:n+2], crlf) {
		return Value{}, buf, fmt.Errorf("%w: bulk body does not match declared length %d", ErrProtocol, n)
	}
	return Value{Kind: kind, Text: string(rest[:n])}, rest[n+2:], nil
}

func parseInteger(buf []byte) (Value, []byte, error) {
	line, rest, err := cutLine(buf)
	if err != nil {
		return Value{}, buf, err
	}

	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Value{}, buf, fmt.Errorf("%w: integer %q overflows int64", ErrProtocol, line)
		}
		return Value{}, buf, fmt.Errorf("%w: invalid integer %q", ErrProtocol, line)
	}
	return Integer(n), rest, nil
}

func parseArray(buf []byte) (Value, []byte, error) {
	header, rest, err := cutLine(buf)
	if err != nil {
		return Value{}, buf, err
	}

	n, err := strconv.Atoi(string(header))
	if err != nil || n < 0 {
		return Value{}, buf, fmt.Errorf("%w: invalid array length %q", ErrProtocol, header)
	}

	elems := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		var elem Value
		elem, rest, err = Parse(rest)
		if err != nil {
			// A failed sub-element aborts the whole array parse.
			return Value{}, buf, err
		}
		elems = append(elems, elem)
	}
	return Value{Kind: KindArray, Elems: elems}, rest, nil
}

func parseNull(buf []byte) (Value, []byte, error) {
	line, rest, err := cutLine(buf)
	if err != nil {
		return Value{}, buf, err
	}
	if len(line) != 0 {
		return Value{}, buf, fmt.Errorf("%w: null carries payload %q", ErrProtocol, line)
	}
	return Null(), rest, nil
}
