// Package remote runs Life engines behind a websocket so a controller can drive
// an engine that lives in another process.
//
// The client sends one JSON Command per text message. The server answers each
// command with a binary message holding the snappy-compressed cell buffer as
// it stands after the command, or with a text message holding an ErrorReply.
package remote

import "errors"

// Command operations.
const (
	OpInit   = "init"
	OpClear  = "clear"
	OpTick   = "tick"
	OpToggle = "toggle"
	OpView   = "view"
)

// ErrClosed is returned by calls on a closed client.
var ErrClosed = errors.New("remote: engine closed")

// Command is one request from client to server.
type Command struct {
	Op    string `json:"op"`
	Index int    `json:"index,omitempty"`
}

// ErrorReply reports a command the server could not apply.
type ErrorReply struct {
	Error string `json:"error"`
}
