package remote

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"life-canvas/internal/core"

	"github.com/golang/snappy"
	"github.com/gorilla/websocket"
)

// DefaultMaxCells bounds the board size a client may ask for.
const DefaultMaxCells = 4096 * 4096

// Server hosts one engine per websocket connection.
type Server struct {
	engine   string
	maxCells int
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer returns a handler that builds engines with the named registered
// factory.
func NewServer(engine string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine:   engine,
		maxCells: DefaultMaxCells,
		log:      logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and serves commands until the client goes
// away. The board size comes from the width and height query parameters;
// seed and density are passed through to the engine factory.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width, errW := strconv.Atoi(q.Get("width"))
	height, errH := strconv.Atoi(q.Get("height"))
	if errW != nil || errH != nil || !boardFits(width, height, s.maxCells) {
		http.Error(w, "width and height must be positive integers within limits", http.StatusBadRequest)
		return
	}
	opts := map[string]string{}
	for _, key := range []string{"seed", "density"} {
		if v := q.Get(key); v != "" {
			opts[key] = v
		}
	}
	engine, err := core.NewEngine(s.engine, width, height, opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer ws.Close()

	log := s.log.With("remote", r.RemoteAddr, "width", width, "height", height)
	log.Info("engine client connected")
	for {
		_, p, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("engine client read failed", "err", err)
			} else {
				log.Info("engine client disconnected")
			}
			return
		}
		if err := s.handle(ws, engine, p); err != nil {
			log.Warn("engine client write failed", "err", err)
			return
		}
	}
}

// boardFits reports whether a width x height board is non-empty and holds at
// most maxCells cells. Each side is checked before multiplying so the product
// cannot overflow.
func boardFits(width, height, maxCells int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	return width <= maxCells/height
}

func (s *Server) handle(ws *websocket.Conn, engine core.Engine, p []byte) error {
	var cmd Command
	if err := json.Unmarshal(p, &cmd); err != nil {
		return ws.WriteJSON(ErrorReply{Error: fmt.Sprintf("bad command: %v", err)})
	}
	if err := apply(engine, cmd); err != nil {
		return ws.WriteJSON(ErrorReply{Error: err.Error()})
	}
	return ws.WriteMessage(websocket.BinaryMessage, snappy.Encode(nil, engine.CellBufferView()))
}

func apply(engine core.Engine, cmd Command) error {
	switch cmd.Op {
	case OpInit:
		return engine.InitializeCells()
	case OpClear:
		return engine.ClearCells()
	case OpTick:
		return engine.Tick()
	case OpToggle:
		return engine.ToggleCell(cmd.Index)
	case OpView:
		return nil
	default:
		return fmt.Errorf("unknown op %q", cmd.Op)
	}
}
