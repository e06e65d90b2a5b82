package socket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/engine"
	"github.com/DedS3t/monopoly-server/platform/rooms"
	log "github.com/sirupsen/logrus"
)

var (
	ErrUnauthorized = errors.New("user not authenticated")
	ErrNoGame       = errors.New("invalid game")
	ErrNotJoined    = errors.New("join a game first")
)

// Authenticator turns an access token into a user id.
type Authenticator func(token string) (string, error)

// Lobby records seats and game status outside the room. Every method is
// best effort: a failure is logged and the room carries on.
type Lobby interface {
	Username(userId string) (string, error)
	SeatJoined(seat models.Seat) error
	SeatLeft(gameId, userId string) error
	GameStarted(gameId string) error
}

type noLobby struct{}

func (noLobby) Username(userId string) (string, error) { return userId, nil }
func (noLobby) SeatJoined(models.Seat) error           { return nil }
func (noLobby) SeatLeft(string, string) error          { return nil }
func (noLobby) GameStarted(string) error               { return nil }

// session is what a connection knows about itself once it has joined.
type session struct {
	UserId string
	GameId string
}

func (s *session) joined() bool {
	return s != nil && s.GameId != ""
}

type joinRequest struct {
	GameId      string `json:"game_id"`
	AccessToken string `json:"access_token"`
	Piece       string `json:"piece"`
}

type resyncRequest struct {
	Since int64 `json:"since"`
}

// resyncReply carries either the events a client missed or, when it has
// nothing to resume from, the whole state.
type resyncReply struct {
	Events []models.GameEvent `json:"events,omitempty"`
	State  *models.GameState  `json:"state,omitempty"`
}

// stateUpdate is broadcast after every applied action.
type stateUpdate struct {
	State  *models.GameState  `json:"state"`
	Events []models.GameEvent `json:"events"`
}

func newStateUpdate(u rooms.Update) stateUpdate {
	return stateUpdate{State: u.State.Public(), Events: u.Events}
}

func (s *Server) join(ctx context.Context, req joinRequest) (*rooms.Room, *session, error) {
	userId, err := s.auth(req.AccessToken)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if _, ok := s.rooms.Get(req.GameId); !ok {
		return nil, nil, ErrNoGame
	}
	name, err := s.lobby.Username(userId)
	if err != nil {
		log.WithField("user", userId).WithError(err).Warn("username lookup failed")
		name = userId
	}
	r, err := s.rooms.Join(ctx, req.GameId, models.Player{Id: userId, Name: name, Token: req.Piece})
	if err != nil {
		return nil, nil, err
	}
	seat := models.Seat{User_id: userId, Game_id: r.Id, Username: name, Token: req.Piece, Active: true}
	if err := s.lobby.SeatJoined(seat); err != nil {
		log.WithFields(log.Fields{"room": r.Id, "user": userId}).WithError(err).Warn("recording seat failed")
	}
	return r, &session{UserId: userId, GameId: r.Id}, nil
}

func (s *Server) leave(ctx context.Context, sess *session) error {
	if !sess.joined() {
		return ErrNotJoined
	}
	if err := s.rooms.Leave(ctx, sess.GameId, sess.UserId); err != nil {
		return err
	}
	if err := s.lobby.SeatLeft(sess.GameId, sess.UserId); err != nil {
		log.WithFields(log.Fields{"room": sess.GameId, "user": sess.UserId}).WithError(err).Warn("removing seat failed")
	}
	return nil
}

// drop handles a connection that went away without leaving. A lobby seat
// is given up; a seat in a running game is kept so the player can come
// back, and the turn timer covers the absence.
func (s *Server) drop(sess *session) bool {
	if !sess.joined() {
		return false
	}
	r, ok := s.rooms.Get(sess.GameId)
	if !ok || r.Snapshot() != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	return s.leave(ctx, sess) == nil
}

func (s *Server) start(ctx context.Context, sess *session) (engine.Result, error) {
	if !sess.joined() {
		return engine.Result{}, ErrNotJoined
	}
	r, ok := s.rooms.Get(sess.GameId)
	if !ok {
		return engine.Result{}, ErrNoGame
	}
	if !isMember(r, sess.UserId) {
		return engine.Result{}, rooms.ErrNotMember
	}
	res, err := r.Start(ctx)
	if err != nil {
		return res, err
	}
	if err := s.lobby.GameStarted(r.Id); err != nil {
		log.WithField("room", r.Id).WithError(err).Warn("marking game started failed")
	}
	return res, nil
}

// act decodes a GameAction and dispatches it as the session's player. The
// player id in the payload is ignored.
func (s *Server) act(ctx context.Context, sess *session, data []byte) models.ActionResult {
	if !sess.joined() {
		return failure(ErrNotJoined)
	}
	var a models.GameAction
	if err := json.Unmarshal(data, &a); err != nil {
		return failure(fmt.Errorf("%w: bad action: %v", engine.ErrRuleViolation, err))
	}
	a.PlayerId = sess.UserId
	r, ok := s.rooms.Get(sess.GameId)
	if !ok {
		return failure(ErrNoGame)
	}
	_, err := r.Dispatch(ctx, a)
	return failure(err)
}

func (s *Server) resync(sess *session, since int64) (resyncReply, error) {
	if !sess.joined() {
		return resyncReply{}, ErrNotJoined
	}
	r, ok := s.rooms.Get(sess.GameId)
	if !ok {
		return resyncReply{}, ErrNoGame
	}
	g := r.Snapshot()
	if g == nil {
		return resyncReply{}, rooms.ErrNotStarted
	}
	if since <= 0 {
		return resyncReply{State: g.Public()}, nil
	}
	return resyncReply{Events: r.EventsSince(since)}, nil
}

func isMember(r *rooms.Room, userId string) bool {
	for _, m := range r.Members() {
		if m.Id == userId {
			return true
		}
	}
	return false
}

// failure builds the reply for err; a nil err is success.
func failure(err error) models.ActionResult {
	if err == nil {
		return models.ActionResult{Ok: true}
	}
	return models.ActionResult{Error: err.Error(), Kind: string(kindOf(err))}
}

// kindOf extends engine.KindOf to the lobby errors so clients get one
// vocabulary.
func kindOf(err error) engine.ErrorKind {
	switch {
	case errors.Is(err, rooms.ErrNotStarted), errors.Is(err, rooms.ErrStarted):
		return engine.KindIllegalState
	case errors.Is(err, rooms.ErrFull), errors.Is(err, rooms.ErrNotMember),
		errors.Is(err, ErrNotJoined), errors.Is(err, ErrUnauthorized):
		return engine.KindNotEligible
	case errors.Is(err, rooms.ErrClosed), errors.Is(err, ErrNoGame):
		return engine.KindInvalidTarget
	}
	return engine.KindOf(err)
}
