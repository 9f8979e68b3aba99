// Package resp implements the RESP wire format used by keeva: typed
// protocol values, a parser that consumes one value from the front of a
// byte buffer, and the inverse encoder.
//
// Requests are always an Array of BulkStrings; replies may be any Value.
// A parsed null bulk string ($-1) and a constructed Null (_) both stand
// for absence but are distinct on the wire, and the codec keeps them
// distinct.
package resp
