package realtime

import (
	"chat-relay/domain/event"
	"chat-relay/runtime"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

const tokenQueryParam = "token"

type Options struct {
	ConnectionBufferSize int
	DeliveryTimeout      time.Duration
	PongWait             time.Duration
	ReadLimit            int64
	// CORSWhitelist lists the accepted origins. Empty or "*" accepts any origin.
	CORSWhitelist []string
}

// ChatServer upgrades HTTP requests to websocket sessions and pumps their
// frames into the gateway.
type ChatServer struct {
	log      *slog.Logger
	gateway  *runtime.Gateway
	options  Options
	upgrader websocket.Upgrader

	mu     sync.Mutex
	active map[*Connection]struct{}
	wg     sync.WaitGroup
}

func NewChatServer(log *slog.Logger, gateway *runtime.Gateway, options Options) *ChatServer {
	s := &ChatServer{
		log:     log,
		gateway: gateway,
		options: options,
		active:  make(map[*Connection]struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// ServeHTTP blocks until the client disconnects or the server shuts down.
// No frame is read before the handshake credential is verified.
func (s *ChatServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	credential := Credential(r)

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the response; just log and return.
		s.log.Debug("Upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	conn := NewConnection(s.log, ws, s.options.ConnectionBufferSize, s.options.DeliveryTimeout, s.options.PongWait)
	if !s.track(conn) {
		_ = ws.Close()
		return
	}
	defer s.untrack(conn)
	conn.Start()

	ctx := r.Context()
	session := s.gateway.Open(conn)
	if _, err := session.Authenticate(ctx, credential); err != nil {
		conn.Close(websocket.ClosePolicyViolation, "unauthorized")
		<-conn.Done()
		return
	}
	defer func() {
		session.Disconnect()
		conn.Close(websocket.CloseNormalClosure, "session closed")
		<-conn.Done()
	}()

	ws.SetReadLimit(s.options.ReadLimit)
	_ = ws.SetReadDeadline(time.Now().Add(s.options.PongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(s.options.PongWait))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				s.log.Debug("Read failed", "session", session.ID, "error", err)
			}
			return
		}

		var in event.Inbound
		if err := json.Unmarshal(data, &in); err != nil {
			s.log.Debug("Frame ignored", "session", session.ID, "error", err)
			continue
		}
		if err := session.Handle(ctx, in); err != nil {
			s.log.Error("Frame handling aborted", "session", session.ID, "error", err)
			return
		}
	}
}

// Shutdown closes every open connection and waits for their sessions to end.
func (s *ChatServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	connections := lo.Keys(s.active)
	s.active = nil
	s.mu.Unlock()

	for _, conn := range connections {
		conn.Close(websocket.CloseGoingAway, "server shutting down")
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Credential reads the Authorization header, falling back to the token query
// parameter for browser clients that cannot set headers on a websocket.
func Credential(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		return header
	}
	return r.URL.Query().Get(tokenQueryParam)
}

func (s *ChatServer) checkOrigin(r *http.Request) bool {
	whitelist := s.options.CORSWhitelist
	if len(whitelist) == 0 || lo.Contains(whitelist, "*") {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return lo.ContainsBy(whitelist, func(allowed string) bool {
		return strings.EqualFold(strings.TrimSuffix(allowed, "/"), u.Scheme+"://"+u.Host)
	})
}

// track refuses new connections once Shutdown started.
func (s *ChatServer) track(conn *Connection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return false
	}
	s.active[conn] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *ChatServer) untrack(conn *Connection) {
	s.mu.Lock()
	if s.active != nil {
		delete(s.active, conn)
	}
	s.mu.Unlock()
	s.wg.Done()
}
