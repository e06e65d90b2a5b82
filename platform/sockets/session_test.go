package socket

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/engine"
	"github.com/DedS3t/monopoly-server/platform/rooms"
)

type fakeLobby struct {
	mu      sync.Mutex
	seats   map[string]models.Seat
	started []string
}

func newFakeLobby() *fakeLobby {
	return &fakeLobby{seats: make(map[string]models.Seat)}
}

func (l *fakeLobby) Username(userId string) (string, error) {
	if userId == "ghost" {
		return "", errors.New("no such user")
	}
	return userId + "@example.com", nil
}

func (l *fakeLobby) SeatJoined(seat models.Seat) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seats[seat.User_id] = seat
	return nil
}

func (l *fakeLobby) SeatLeft(gameId, userId string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.seats, userId)
	return nil
}

func (l *fakeLobby) GameStarted(gameId string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.started = append(l.started, gameId)
	return nil
}

// tokenIsUser accepts any non-empty token as the id of its user.
func tokenIsUser(token string) (string, error) {
	if token == "" {
		return "", errors.New("missing token")
	}
	return token, nil
}

func ids() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("game-%d", n)
	}
}

func newTestServer(t *testing.T, lobby Lobby) (*Server, *rooms.Manager) {
	t.Helper()
	m := rooms.NewManager(rooms.WithIds(ids()))
	t.Cleanup(m.Close)
	s, err := NewServer(m, tokenIsUser, lobby, []string{"http://localhost:3000"})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s, m
}

func seededSettings() models.Settings {
	s := models.DefaultSettings()
	s.Seed = 11
	return s
}

func TestJoinRecordsSeat(t *testing.T) {
	lobby := newFakeLobby()
	s, m := newTestServer(t, lobby)
	r := m.Create(seededSettings())
	ctx := context.Background()

	if _, _, err := s.join(ctx, joinRequest{GameId: r.Id}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if _, _, err := s.join(ctx, joinRequest{GameId: "nope", AccessToken: "alice"}); !errors.Is(err, ErrNoGame) {
		t.Fatalf("err = %v, want ErrNoGame", err)
	}

	_, sess, err := s.join(ctx, joinRequest{GameId: r.Id, AccessToken: "alice", Piece: "boot"})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if sess.UserId != "alice" || sess.GameId != r.Id {
		t.Fatalf("session = %+v", sess)
	}
	seat := lobby.seats["alice"]
	if seat.Game_id != r.Id || seat.Username != "alice@example.com" || seat.Token != "boot" {
		t.Fatalf("seat = %+v", seat)
	}
	members := r.Members()
	if len(members) != 1 || members[0].Name != "alice@example.com" || members[0].Token != "boot" {
		t.Fatalf("members = %+v", members)
	}

	// A failed username lookup falls back to the id.
	if _, _, err := s.join(ctx, joinRequest{GameId: r.Id, AccessToken: "ghost"}); err != nil {
		t.Fatalf("join ghost: %v", err)
	}
	if got := r.Members()[1].Name; got != "ghost" {
		t.Fatalf("name = %q, want ghost", got)
	}
}

func TestStartNeedsMembership(t *testing.T) {
	lobby := newFakeLobby()
	s, m := newTestServer(t, lobby)
	r := m.Create(seededSettings())
	ctx := context.Background()

	if _, err := s.start(ctx, &session{}); !errors.Is(err, ErrNotJoined) {
		t.Fatalf("err = %v, want ErrNotJoined", err)
	}
	_, alice, err := s.join(ctx, joinRequest{GameId: r.Id, AccessToken: "alice"})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, _, err := s.join(ctx, joinRequest{GameId: r.Id, AccessToken: "bob"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := s.start(ctx, &session{UserId: "mallory", GameId: r.Id}); !errors.Is(err, rooms.ErrNotMember) {
		t.Fatalf("err = %v, want ErrNotMember", err)
	}
	res, err := s.start(ctx, alice)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(res.State.Players) != 2 {
		t.Fatalf("players = %d", len(res.State.Players))
	}
	if len(lobby.started) != 1 || lobby.started[0] != r.Id {
		t.Fatalf("started = %v", lobby.started)
	}
}

func TestActUsesSessionPlayer(t *testing.T) {
	s, m := newTestServer(t, nil)
	r := m.Create(seededSettings())
	ctx := context.Background()
	_, alice, _ := s.join(ctx, joinRequest{GameId: r.Id, AccessToken: "alice"})
	_, bob, _ := s.join(ctx, joinRequest{GameId: r.Id, AccessToken: "bob"})
	if _, err := s.start(ctx, alice); err != nil {
		t.Fatalf("start: %v", err)
	}

	// bob claims to be alice; the room still sees bob.
	res := s.act(ctx, bob, []byte(`{"type":"RollDice","playerId":"alice"}`))
	if res.Ok || res.Kind != string(engine.KindIllegalState) {
		t.Fatalf("bob rolled on alice's turn: %+v", res)
	}
	if res := s.act(ctx, alice, []byte(`{"type":"RollDice"}`)); !res.Ok {
		t.Fatalf("alice roll: %+v", res)
	}
	if res := s.act(ctx, alice, []byte(`{not json`)); res.Ok || res.Kind != string(engine.KindRuleViolation) {
		t.Fatalf("bad json: %+v", res)
	}
	if res := s.act(ctx, &session{}, []byte(`{"type":"RollDice"}`)); res.Kind != string(engine.KindNotEligible) {
		t.Fatalf("no session: %+v", res)
	}
}

func TestResync(t *testing.T) {
	s, m := newTestServer(t, nil)
	r := m.Create(seededSettings())
	ctx := context.Background()
	_, alice, _ := s.join(ctx, joinRequest{GameId: r.Id, AccessToken: "alice"})
	s.join(ctx, joinRequest{GameId: r.Id, AccessToken: "bob"})

	if _, err := s.resync(alice, 0); !errors.Is(err, rooms.ErrNotStarted) {
		t.Fatalf("err = %v, want ErrNotStarted", err)
	}
	if _, err := s.start(ctx, alice); err != nil {
		t.Fatalf("start: %v", err)
	}

	full, err := s.resync(alice, 0)
	if err != nil {
		t.Fatalf("resync: %v", err)
	}
	if full.State == nil || full.Events != nil {
		t.Fatalf("full resync = %+v", full)
	}
	if full.State.RNG != 0 || full.State.Events != nil || len(full.State.Decks.Chance.DrawPile) != 0 {
		t.Fatalf("public state leaks hidden fields")
	}

	all := r.EventsSince(0)
	s.act(ctx, alice, []byte(`{"type":"RollDice"}`))
	part, err := s.resync(alice, all[len(all)-1].Timestamp)
	if err != nil {
		t.Fatalf("resync: %v", err)
	}
	if part.State != nil || len(part.Events) == 0 || part.Events[0].Seq != len(all)+1 {
		t.Fatalf("partial resync = %+v", part)
	}
}

func TestDropKeepsRunningSeat(t *testing.T) {
	lobby := newFakeLobby()
	s, m := newTestServer(t, lobby)
	ctx := context.Background()

	lobbyRoom := m.Create(seededSettings())
	_, carol, _ := s.join(ctx, joinRequest{GameId: lobbyRoom.Id, AccessToken: "carol"})
	_, dave, _ := s.join(ctx, joinRequest{GameId: lobbyRoom.Id, AccessToken: "dave"})
	if !s.drop(carol) {
		t.Fatalf("lobby seat kept after drop")
	}
	if _, ok := lobby.seats["carol"]; ok {
		t.Fatalf("seat row not removed")
	}

	running := m.Create(seededSettings())
	_, alice, _ := s.join(ctx, joinRequest{GameId: running.Id, AccessToken: "alice"})
	s.join(ctx, joinRequest{GameId: running.Id, AccessToken: "bob"})
	s.start(ctx, alice)
	if s.drop(alice) {
		t.Fatalf("running seat given up on drop")
	}
	if len(running.Members()) != 2 {
		t.Fatalf("members = %+v", running.Members())
	}

	if !s.drop(dave) {
		t.Fatalf("last lobby seat kept")
	}
	if _, ok := m.Get(lobbyRoom.Id); ok {
		t.Fatalf("empty lobby not destroyed")
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want engine.ErrorKind
	}{
		{rooms.ErrStarted, engine.KindIllegalState},
		{rooms.ErrNotStarted, engine.KindIllegalState},
		{rooms.ErrFull, engine.KindNotEligible},
		{ErrUnauthorized, engine.KindNotEligible},
		{fmt.Errorf("%w: bad", ErrUnauthorized), engine.KindNotEligible},
		{ErrNoGame, engine.KindInvalidTarget},
		{rooms.ErrClosed, engine.KindInvalidTarget},
		{engine.ErrInsufficientFunds, engine.KindInsufficientFunds},
		{rooms.ErrPanic, engine.KindInternal},
	}
	for _, c := range cases {
		if got := kindOf(c.err); got != c.want {
			t.Fatalf("kindOf(%v) = %s, want %s", c.err, got, c.want)
		}
	}
}
