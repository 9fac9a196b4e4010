package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"life-canvas/internal/core"

	"github.com/golang/snappy"
	"github.com/gorilla/websocket"
)

// DialTimeout bounds the handshake performed by the registered factory.
const DialTimeout = 10 * time.Second

// Engine is a core.Engine whose state lives on a Server. Every mutating call
// is a synchronous round trip that replaces the local buffer, so views from
// before the call are never updated in place. It is not safe for concurrent
// use.
type Engine struct {
	conn          *websocket.Conn
	width, height int
	buf           []byte
	closed        bool
}

// Dial connects to the engine endpoint at rawURL and fetches the initial
// (empty) board.
func Dial(ctx context.Context, rawURL string, width, height int, opts map[string]string) (*Engine, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("remote: engine url: %w", err)
	}
	q := u.Query()
	q.Set("width", strconv.Itoa(width))
	q.Set("height", strconv.Itoa(height))
	for _, key := range []string{"seed", "density"} {
		if v, ok := opts[key]; ok {
			q.Set(key, v)
		}
	}
	u.RawQuery = q.Encode()

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("remote: dial %s: %w (status %s)", rawURL, err, resp.Status)
		}
		return nil, fmt.Errorf("remote: dial %s: %w", rawURL, err)
	}
	e := &Engine{conn: conn, width: width, height: height}
	if err := e.call(Command{Op: OpView}); err != nil {
		conn.Close()
		return nil, err
	}
	return e, nil
}

// InitializeCells asks the server to reseed the board.
func (e *Engine) InitializeCells() error { return e.call(Command{Op: OpInit}) }

// ClearCells asks the server to kill every cell.
func (e *Engine) ClearCells() error { return e.call(Command{Op: OpClear}) }

// Tick asks the server to advance one generation.
func (e *Engine) Tick() error { return e.call(Command{Op: OpTick}) }

// ToggleCell asks the server to flip one cell.
func (e *Engine) ToggleCell(index int) error {
	return e.call(Command{Op: OpToggle, Index: index})
}

// CellBufferView returns the buffer received with the last reply.
func (e *Engine) CellBufferView() []byte { return e.buf }

// Close ends the session. Further calls return ErrClosed.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = e.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return e.conn.Close()
}

func (e *Engine) call(cmd Command) error {
	if e.closed {
		return ErrClosed
	}
	if err := e.conn.WriteJSON(cmd); err != nil {
		return fmt.Errorf("remote: send %s: %w", cmd.Op, err)
	}
	mt, data, err := e.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("remote: %s reply: %w", cmd.Op, err)
	}
	if mt == websocket.TextMessage {
		var reply ErrorReply
		if err := json.Unmarshal(data, &reply); err != nil {
			return fmt.Errorf("remote: %s: undecodable reply: %w", cmd.Op, err)
		}
		return fmt.Errorf("remote: %s: %s", cmd.Op, reply.Error)
	}
	buf, err := snappy.Decode(nil, data)
	if err != nil {
		return fmt.Errorf("remote: %s: decompress: %w", cmd.Op, err)
	}
	if want := (e.width*e.height + 7) / 8; len(buf) != want {
		return fmt.Errorf("remote: %s: got %d byte buffer, want %d", cmd.Op, len(buf), want)
	}
	e.buf = buf
	return nil
}

func init() {
	core.RegisterEngine("remote", func(width, height int, opts map[string]string) (core.Engine, error) {
		rawURL := opts["url"]
		if rawURL == "" {
			return nil, errors.New("remote: url option is required")
		}
		ctx, cancel := context.WithTimeout(context.Background(), DialTimeout)
		defer cancel()
		e, err := Dial(ctx, rawURL, width, height, opts)
		if err != nil {
			return nil, err
		}
		return e, nil
	})
}
