package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/rooms"
	socketio "github.com/googollee/go-socket.io"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// TODO add chat

const requestTimeout = 10 * time.Second

// Server is the realtime front door: socket.io under /socket.io/ and a
// plain websocket under /ws. Both feed the same room manager.
type Server struct {
	rooms   *rooms.Manager
	auth    Authenticator
	lobby   Lobby
	origins []string

	io       *socketio.Server
	upgrader websocket.Upgrader

	mu         sync.Mutex
	forwarding map[string]bool
}

func NewServer(manager *rooms.Manager, auth Authenticator, lobby Lobby, origins []string) (*Server, error) {
	io, err := socketio.NewServer(nil)
	if err != nil {
		return nil, err
	}
	if lobby == nil {
		lobby = noLobby{}
	}
	s := &Server{
		rooms:      manager,
		auth:       auth,
		lobby:      lobby,
		origins:    origins,
		io:         io,
		forwarding: make(map[string]bool),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.allowOrigin,
	}
	s.register()
	return s, nil
}

func (s *Server) register() {
	s.io.OnConnect("/", func(c socketio.Conn) error {
		c.SetContext(&session{})
		return nil
	})

	s.io.OnEvent("/", "join-game", func(c socketio.Conn, msg string) string {
		var req joinRequest
		if err := json.Unmarshal([]byte(msg), &req); err != nil {
			return reply(failure(ErrNoGame))
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		r, sess, err := s.join(ctx, req)
		if err != nil {
			c.Emit("error-message", err.Error())
			return reply(failure(err))
		}
		c.SetContext(sess)
		c.Join(r.Id)
		s.forward(r)
		members := jsonString(r.Members())
		s.io.BroadcastToRoom("/", r.Id, "player-join", members)
		c.Emit("joined-game", members)
		log.WithFields(log.Fields{"room": r.Id, "user": sess.UserId, "conn": c.ID()}).Info("joined room")
		return reply(failure(nil))
	})

	s.io.OnEvent("/", "leave-game", func(c socketio.Conn) string {
		sess := sessionOf(c)
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := s.leave(ctx, sess); err != nil {
			return reply(failure(err))
		}
		c.Leave(sess.GameId)
		s.io.BroadcastToRoom("/", sess.GameId, "player-left", sess.UserId)
		c.SetContext(&session{})
		return reply(failure(nil))
	})

	s.io.OnEvent("/", "start-game", func(c socketio.Conn) string {
		sess := sessionOf(c)
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, err := s.start(ctx, sess)
		if err != nil {
			c.Emit("error-message", err.Error())
			return reply(failure(err))
		}
		s.io.BroadcastToRoom("/", sess.GameId, "game-start", jsonString(res.State.Public()))
		return reply(failure(nil))
	})

	s.io.OnEvent("/", "action", func(c socketio.Conn, msg string) string {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return reply(s.act(ctx, sessionOf(c), []byte(msg)))
	})

	s.io.OnEvent("/", "resync", func(c socketio.Conn, msg string) string {
		var req resyncRequest
		json.Unmarshal([]byte(msg), &req)
		out, err := s.resync(sessionOf(c), req.Since)
		if err != nil {
			return reply(failure(err))
		}
		return jsonString(out)
	})

	s.io.OnError("/", func(c socketio.Conn, err error) {
		log.WithError(err).Warn("socket.io error")
	})

	s.io.OnDisconnect("/", func(c socketio.Conn, reason string) {
		sess := sessionOf(c)
		if s.drop(sess) {
			s.io.BroadcastToRoom("/", sess.GameId, "player-left", sess.UserId)
		}
		c.LeaveAll()
	})
}

// forward relays a room's updates to its socket.io room, once per room.
// It stops when the room closes.
func (s *Server) forward(r *rooms.Room) {
	s.mu.Lock()
	if s.forwarding[r.Id] {
		s.mu.Unlock()
		return
	}
	s.forwarding[r.Id] = true
	s.mu.Unlock()

	updates, _ := r.Subscribe()
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.forwarding, r.Id)
			s.mu.Unlock()
		}()
		for u := range updates {
			s.io.BroadcastToRoom("/", r.Id, "state-update", jsonString(newStateUpdate(u)))
			for _, ev := range u.Events {
				s.io.BroadcastToRoom("/", r.Id, "game-event", jsonString(ev))
			}
		}
	}()
}

func (s *Server) allowOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range s.origins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// Handler serves both transports behind CORS.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.origins,
		AllowCredentials: true,
	})
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", s.io)
	mux.HandleFunc("/ws", s.HandleWS)
	return c.Handler(mux)
}

// ListenAndServe runs the socket.io engine and serves addr until it fails.
func (s *Server) ListenAndServe(addr string) error {
	go func() {
		if err := s.io.Serve(); err != nil {
			log.WithError(err).Error("socket.io server stopped")
		}
	}()
	defer s.io.Close()
	log.WithField("addr", addr).Info("realtime server listening")
	return http.ListenAndServe(addr, s.Handler())
}

func sessionOf(c socketio.Conn) *session {
	sess, ok := c.Context().(*session)
	if !ok {
		return &session{}
	}
	return sess
}

func reply(res models.ActionResult) string {
	return jsonString(res)
}

func jsonString(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("encoding message failed")
		return "{}"
	}
	return string(b)
}
