package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/identity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/room"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
)

type gameService interface {
	StartMatch(ctx context.Context, playerID, mode string) (*usecase.RoomState, error)
	JoinRoom(ctx context.Context, playerID, roomID string) (*usecase.RoomState, error)
	MakeMove(ctx context.Context, playerID string, cell int) (*usecase.RoomState, error)
	NextRound(ctx context.Context, playerID string) (*usecase.RoomState, error)
	RestartRound(ctx context.Context, playerID string) (*usecase.RoomState, error)
	ResetMatch(ctx context.Context, playerID string) (*usecase.RoomState, error)
	LeaveRoom(ctx context.Context, playerID string) error
	GetPlayerRoom(ctx context.Context, playerID string) (*usecase.RoomState, error)
	Watch(ctx context.Context, roomID string, onMatch room.OnMatch) (func(), error)
}

type authService interface {
	ParseToken(token string) (string, error)
}

type handlerFunc func(ctx context.Context, conn *connection, msg *Message) error

type Server struct {
	logger *slog.Logger
	game   gameService
	auth   authService

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc

	connectionsMutex sync.RWMutex
	connections      map[string]*connection

	httpServer *http.Server
}

func New(logger *slog.Logger, game gameService, auth authService) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		game:   game,
		auth:   auth,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		connections: make(map[string]*connection),
	}

	server.handlers = map[string]handlerFunc{
		actionConnect:      server.handleConnect,
		actionMatchNew:     server.handleNewMatch,
		actionRoomJoin:     server.handleJoinRoom,
		actionMatchMove:    server.handleMove,
		actionRoundNext:    server.handleNextRound,
		actionRoundRestart: server.handleRestartRound,
		actionMatchReset:   server.handleResetMatch,
		actionRoomLeave:    server.handleLeaveRoom,
	}

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

// Start - starts WebSocket server and stops it once ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	that.httpServer = &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()

		if err := that.httpServer.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown websocket server", "error", err)
		}
	}()

	if err := that.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS authenticates the request, upgrades it and runs the read loop
// until the client goes away.
func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	token := requestToken(req)
	if token == "" {
		http.Error(writer, apperror.ErrUnauthorized.Error(), http.StatusUnauthorized)
		return
	}

	playerID, err := that.auth.ParseToken(token)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusUnauthorized)
		return
	}

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(pkg.GenerateNewSessionID(), playerID, ws)
	log = log.With("connection_id", conn.id, "player_id", playerID)

	that.register(conn)
	defer that.handleDisconnect(conn)

	log.Info("WebSocket connection established")

	ctx := identity.WithIdentity(req.Context(), playerID)

	done := make(chan struct{})
	defer close(done)

	go that.keepAlive(conn, done)

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Debug("connection closed", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages", "connection_id", conn.id)

	conn.ws.SetReadLimit(maxMessageSize)
	_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.sendError(conn, "", fmt.Errorf("%w: malformed message", apperror.ErrBadRequest))
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendError(conn, message.Action, fmt.Errorf("%w: unknown action %q", apperror.ErrBadRequest, message.Action))
			continue
		}

		if err = handler(ctx, conn, &message); err != nil {
			log.Debug("action rejected", "action", message.Action, "error", err)
			that.sendError(conn, message.Action, err)
		}
	}
}

func (that *Server) keepAlive(conn *connection, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		}
	}
}

func (that *Server) register(conn *connection) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	that.connections[conn.playerID] = conn
}

func (that *Server) connectionOf(playerID string) (*connection, bool) {
	that.connectionsMutex.RLock()
	defer that.connectionsMutex.RUnlock()

	conn, ok := that.connections[playerID]
	return conn, ok
}

// handleDisconnect drops the connection and its room subscription. The seat
// is kept so the player can reconnect; idle rooms are swept later.
func (that *Server) handleDisconnect(conn *connection) {
	that.connectionsMutex.Lock()
	if current, ok := that.connections[conn.playerID]; ok && current == conn {
		delete(that.connections, conn.playerID)
	}
	that.connectionsMutex.Unlock()

	conn.unwatch()
	_ = conn.ws.Close()

	that.logger.Info("player disconnected", "connection_id", conn.id, "player_id", conn.playerID)
}

func requestToken(req *http.Request) string {
	if token := req.URL.Query().Get("token"); token != "" {
		return token
	}

	token, ok := strings.CutPrefix(req.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}

	return strings.TrimSpace(token)
}

// connection is one websocket client. Writes are serialized because store
// pushes arrive from the subscription goroutine.
type connection struct {
	id       string
	playerID string
	ws       *websocket.Conn

	writeMutex sync.Mutex

	watchMutex sync.Mutex
	roomID     string
	detach     func()
}

func newConnection(id, playerID string, ws *websocket.Conn) *connection {
	return &connection{
		id:       id,
		playerID: playerID,
		ws:       ws,
	}
}

func (that *connection) send(action string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))

	if err = that.ws.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *connection) ping() error {
	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	return that.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// watching reports whether the connection is subscribed to the room.
func (that *connection) watching(roomID string) bool {
	that.watchMutex.Lock()
	defer that.watchMutex.Unlock()

	return that.detach != nil && that.roomID == roomID
}

// watch replaces the current subscription.
func (that *connection) watch(roomID string, detach func()) {
	that.watchMutex.Lock()
	previous := that.detach
	that.roomID = roomID
	that.detach = detach
	that.watchMutex.Unlock()

	if previous != nil {
		previous()
	}
}

func (that *connection) unwatch() {
	that.watch("", nil)
}
