package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const writeWait = 10 * time.Second

// envelope is one message on the plain websocket, in either direction.
// Types mirror the socket.io event names; replies to client requests come
// back as "ack".
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outgoing struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan outgoing
	done chan struct{}
	once sync.Once
	log  *log.Entry
}

func (c *wsClient) push(typ string, payload interface{}) {
	select {
	case c.send <- outgoing{Type: typ, Payload: payload}:
	case <-c.done:
	default:
		c.log.WithField("type", typ).Warn("client is behind, dropping message")
	}
}

func (c *wsClient) writeLoop() {
	for {
		select {
		case m := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if m.Type == "" {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				c.close()
				return
			}
			if err := c.conn.WriteJSON(m); err != nil {
				c.log.WithError(err).Debug("write failed")
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// shutdown closes the connection once everything queued before it has
// been written.
func (c *wsClient) shutdown() {
	timeout := time.NewTimer(writeWait)
	defer timeout.Stop()
	select {
	case c.send <- outgoing{}:
	case <-c.done:
	case <-timeout.C:
		c.close()
		return
	}
	select {
	case <-c.done:
	case <-timeout.C:
	}
	c.close()
}

func (c *wsClient) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// HandleWS serves GET /ws?game_id=&token=[&piece=]. The connection joins
// the game on upgrade and then exchanges envelopes until it closes.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	room, sess, err := s.join(ctx, joinRequest{GameId: q.Get("game_id"), AccessToken: q.Get("token"), Piece: q.Get("piece")})
	cancel()
	if err != nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		conn.WriteJSON(outgoing{Type: "error-message", Payload: failure(err)})
		conn.Close()
		return
	}

	c := &wsClient{
		conn: conn,
		send: make(chan outgoing, 256),
		done: make(chan struct{}),
		log:  log.WithFields(log.Fields{"room": sess.GameId, "user": sess.UserId}),
	}
	go c.writeLoop()

	updates, unsubscribe := room.Subscribe()
	go func() {
		for u := range updates {
			c.push("state-update", newStateUpdate(u))
			for _, ev := range u.Events {
				c.push("game-event", ev)
			}
		}
	}()
	c.push("joined-game", room.Members())
	c.log.Info("websocket joined room")

	left := s.readLoop(c, sess)
	unsubscribe()
	if !left {
		s.drop(sess)
	}
	c.shutdown()
}

// readLoop answers client requests until the connection fails or the
// client leaves the game. It reports whether the client left.
func (s *Server) readLoop(c *wsClient, sess *session) bool {
	for {
		var msg envelope
		if err := c.conn.ReadJSON(&msg); err != nil {
			c.log.WithError(err).Debug("read failed")
			return false
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		switch msg.Type {
		case "action":
			c.push("ack", s.act(ctx, sess, msg.Payload))
		case "start-game":
			_, err := s.start(ctx, sess)
			c.push("ack", failure(err))
		case "leave-game":
			err := s.leave(ctx, sess)
			c.push("ack", failure(err))
			if err == nil {
				cancel()
				return true
			}
		case "resync":
			var req resyncRequest
			json.Unmarshal(msg.Payload, &req)
			if out, err := s.resync(sess, req.Since); err != nil {
				c.push("ack", failure(err))
			} else {
				c.push("resync", out)
			}
		default:
			c.push("error-message", "unknown message type "+msg.Type)
		}
		cancel()
	}
}
