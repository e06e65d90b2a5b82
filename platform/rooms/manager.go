package rooms

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/engine"
	"github.com/DedS3t/monopoly-server/platform/eventlog"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

// Manager maps room ids to rooms and owns their lifecycle.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	engine   *engine.Engine
	mirror   Mirror
	timeouts *Timeouts
	auction  time.Duration
	newId    func() string
	onClose  func(id string)
}

type Option func(*Manager)

func WithEngine(e *engine.Engine) Option {
	return func(m *Manager) { m.engine = e }
}

func WithMirror(mirror Mirror) Option {
	return func(m *Manager) { m.mirror = mirror }
}

// WithTimeouts fixes the inactivity timeouts for every room instead of
// deriving them from each room's settings.
func WithTimeouts(t Timeouts) Option {
	return func(m *Manager) { m.timeouts = &t }
}

// WithAuctionTimeout sets the auction timeout used alongside the turn time
// limit from room settings.
func WithAuctionTimeout(d time.Duration) Option {
	return func(m *Manager) { m.auction = d }
}

func WithIds(fn func() string) Option {
	return func(m *Manager) { m.newId = fn }
}

// OnDestroy registers fn to run after a room is destroyed.
func OnDestroy(fn func(id string)) Option {
	return func(m *Manager) { m.onClose = fn }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rooms:  make(map[string]*Room),
		engine: engine.New(),
		newId:  func() string { return uuid.NewV4().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create opens an empty room.
func (m *Manager) Create(settings models.Settings) *Room {
	if settings.MaxPlayers <= 0 {
		settings.MaxPlayers = models.DefaultSettings().MaxPlayers
	}
	if settings.StartingCash <= 0 {
		settings.StartingCash = models.DefaultSettings().StartingCash
	}
	t := Timeouts{Turn: time.Duration(settings.TurnTimeLimit) * time.Second, Auction: m.auction}
	if m.timeouts != nil {
		t = *m.timeouts
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.newId()
	for m.rooms[id] != nil {
		id = m.newId()
	}
	r := newRoom(id, m.engine, settings, m.mirror, t)
	m.rooms[id] = r
	log.WithFields(log.Fields{"room": id, "maxPlayers": settings.MaxPlayers}).Info("room created")
	return r
}

// Restore reopens a running game from a saved state, for example after a
// restart. The saved history must replay to the saved state.
func (m *Manager) Restore(ctx context.Context, g *models.GameState) (*Room, error) {
	if g.Status != models.StatusPlaying {
		return nil, ErrNotStarted
	}
	view, err := eventlog.Project(g.Events)
	if err != nil {
		return nil, err
	}
	if !reflect.DeepEqual(view, engine.View(g)) {
		return nil, ErrCorrupt
	}
	t := Timeouts{Turn: time.Duration(g.Settings.TurnTimeLimit) * time.Second, Auction: m.auction}
	if m.timeouts != nil {
		t = *m.timeouts
	}

	m.mu.Lock()
	if m.rooms[g.GameId] != nil {
		m.mu.Unlock()
		return nil, ErrStarted
	}
	r := newRoom(g.GameId, m.engine, g.Settings, m.mirror, t)
	m.rooms[g.GameId] = r
	m.mu.Unlock()

	members := make([]models.Player, len(g.Players))
	for i, p := range g.Players {
		members[i] = models.Player{Id: p.Id, Name: p.Name, Token: p.Token}
	}
	_, err = r.do(ctx, func() (engine.Result, error) {
		r.mu.Lock()
		r.state = g
		r.members = members
		r.mu.Unlock()
		r.arm(g)
		return engine.Result{}, nil
	})
	if err != nil {
		m.mu.Lock()
		delete(m.rooms, g.GameId)
		m.mu.Unlock()
		r.Close()
		return nil, err
	}
	log.WithFields(log.Fields{"room": g.GameId, "events": len(g.Events)}).Info("room restored")
	return r, nil
}

func (m *Manager) Get(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// Destroy closes a room and drops its mirror.
func (m *Manager) Destroy(id string) bool {
	m.mu.Lock()
	r, ok := m.rooms[id]
	delete(m.rooms, id)
	m.mu.Unlock()
	if !ok {
		return false
	}
	r.Close()
	if m.mirror != nil {
		if err := m.mirror.Purge(id); err != nil {
			log.WithField("room", id).WithError(err).Warn("purging mirror failed")
		}
	}
	if m.onClose != nil {
		m.onClose(id)
	}
	log.WithField("room", id).Info("room destroyed")
	return true
}

func (m *Manager) Join(ctx context.Context, id string, player models.Player) (*Room, error) {
	r, ok := m.Get(id)
	if !ok {
		return nil, ErrClosed
	}
	return r, r.Join(ctx, player)
}

// Leave removes playerId from room id and destroys the room once nobody is
// left in it.
func (m *Manager) Leave(ctx context.Context, id, playerId string) error {
	r, ok := m.Get(id)
	if !ok {
		return ErrClosed
	}
	if err := r.Leave(ctx, playerId); err != nil {
		return err
	}
	if len(r.Members()) == 0 {
		m.Destroy(id)
	}
	return nil
}

func (m *Manager) Start(ctx context.Context, id string) (engine.Result, error) {
	r, ok := m.Get(id)
	if !ok {
		return engine.Result{}, ErrClosed
	}
	return r.Start(ctx)
}

// Rooms lists the ids of every open room.
func (m *Manager) Rooms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.rooms))
	for id := range m.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close destroys every room.
func (m *Manager) Close() {
	for _, id := range m.Rooms() {
		m.Destroy(id)
	}
}
