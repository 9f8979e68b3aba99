// Package respserver provides the TCP server speaking the RESP wire
// protocol.
//
// Each accepted connection is served by its own goroutine. The handler
// reads frames, dispatches them through the command registry against the
// shared store, and writes the encoded reply back. Any malformed or
// truncated frame is treated as a protocol violation and the connection
// is dropped.
package respserver
