package rooms

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/engine"
	"github.com/DedS3t/monopoly-server/platform/eventlog"
	log "github.com/sirupsen/logrus"
)

var (
	ErrClosed     = errors.New("room closed")
	ErrNotStarted = errors.New("game has not started")
	ErrStarted    = errors.New("game already started")
	ErrFull       = errors.New("room is full")
	ErrNotMember  = errors.New("not a member of this room")
	ErrPanic      = errors.New("action crashed")
	ErrCorrupt    = errors.New("saved history does not match saved state")
)

// Mirror receives every applied change of a room. Failures are logged and
// never undo the change.
type Mirror interface {
	Save(state *models.GameState, events []models.GameEvent) error
	Purge(gameId string) error
}

// Update is what subscribers receive after each applied action.
type Update struct {
	State  *models.GameState
	Events []models.GameEvent
}

type request struct {
	fn    func() (engine.Result, error)
	reply chan reply
}

type reply struct {
	res engine.Result
	err error
}

// Room owns one game. Every change, whether a player action, a lobby change
// or a timer expiry, runs on the room's own goroutine, one at a time, so the
// engine never sees two actions interleave.
type Room struct {
	Id string

	engine   *engine.Engine
	settings models.Settings
	mirror   Mirror
	timeouts Timeouts
	log      *log.Entry

	requests chan request
	expired  chan uint64
	done     chan struct{}
	once     sync.Once

	mu      sync.RWMutex
	state   *models.GameState
	members []models.Player
	subs    map[int]chan Update
	nextSub int

	// loop goroutine only
	timer    *time.Timer
	timerSeq uint64
}

// Timeouts decides how long the room waits on a player before submitting
// engine.DefaultAction. Zero disables the timer.
type Timeouts struct {
	Turn    time.Duration
	Auction time.Duration
}

func (t Timeouts) forPhase(phase models.TurnPhase) time.Duration {
	if phase == models.PhaseAuction && t.Auction > 0 {
		return t.Auction
	}
	return t.Turn
}

func newRoom(id string, e *engine.Engine, settings models.Settings, mirror Mirror, timeouts Timeouts) *Room {
	r := &Room{
		Id:       id,
		engine:   e,
		settings: settings,
		mirror:   mirror,
		timeouts: timeouts,
		log:      log.WithField("room", id),
		requests: make(chan request),
		expired:  make(chan uint64, 1),
		done:     make(chan struct{}),
		subs:     make(map[int]chan Update),
	}
	go r.loop()
	return r
}

func (r *Room) loop() {
	for {
		select {
		case req := <-r.requests:
			res, err := r.safely(req.fn)
			req.reply <- reply{res: res, err: err}
		case seq := <-r.expired:
			r.expire(seq)
		case <-r.done:
			if r.timer != nil {
				r.timer.Stop()
			}
			return
		}
	}
}

// safely runs fn, turning a panic into an error. Whatever fn was doing is
// discarded and the room keeps its previous state.
func (r *Room) safely(fn func() (engine.Result, error)) (res engine.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.log.WithField("panic", p).Error("recovered from panic while applying action")
			res, err = engine.Result{}, fmt.Errorf("%w: %v", ErrPanic, p)
		}
	}()
	return fn()
}

// do queues fn on the room goroutine and waits for its reply. If ctx ends
// after fn was queued, fn still runs; only the wait is abandoned.
func (r *Room) do(ctx context.Context, fn func() (engine.Result, error)) (engine.Result, error) {
	req := request{fn: fn, reply: make(chan reply, 1)}
	select {
	case r.requests <- req:
	case <-r.done:
		return engine.Result{}, ErrClosed
	case <-ctx.Done():
		return engine.Result{}, ctx.Err()
	}
	select {
	case rep := <-req.reply:
		return rep.res, rep.err
	case <-ctx.Done():
		return engine.Result{}, ctx.Err()
	}
}

// Dispatch applies one player action.
func (r *Room) Dispatch(ctx context.Context, a models.GameAction) (engine.Result, error) {
	return r.do(ctx, func() (engine.Result, error) {
		return r.apply(a)
	})
}

func (r *Room) apply(a models.GameAction) (engine.Result, error) {
	cur := r.current()
	if cur == nil {
		return engine.Result{}, ErrNotStarted
	}
	res, err := r.engine.Apply(cur, a)
	fields := log.Fields{"action": a.Type, "player": a.PlayerId}
	if err != nil {
		r.log.WithFields(fields).WithError(err).Debug("action rejected")
		return res, err
	}
	r.log.WithFields(fields).WithField("events", len(res.Events)).Info("action applied")
	r.publish(res)
	return res, nil
}

// publish installs a new state and tells everyone about it.
func (r *Room) publish(res engine.Result) {
	r.mu.Lock()
	r.state = res.State
	for _, ch := range r.subs {
		select {
		case ch <- Update{State: res.State, Events: res.Events}:
		default:
			r.log.Warn("subscriber is behind, dropping update")
		}
	}
	r.mu.Unlock()

	if r.mirror != nil {
		if err := r.mirror.Save(res.State, res.Events); err != nil {
			r.log.WithError(err).Warn("mirroring room failed")
		}
	}
	r.arm(res.State)
}

// arm restarts the inactivity timer for whoever the game now waits on.
func (r *Room) arm(g *models.GameState) {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.timerSeq++
	if g.Status != models.StatusPlaying {
		return
	}
	d := r.timeouts.forPhase(g.TurnState.Phase)
	if d <= 0 {
		return
	}
	seq := r.timerSeq
	r.timer = time.AfterFunc(d, func() {
		select {
		case r.expired <- seq:
		case <-r.done:
		}
	})
}

func (r *Room) expire(seq uint64) {
	if seq != r.timerSeq {
		return
	}
	cur := r.current()
	if cur == nil {
		return
	}
	a, ok := engine.DefaultAction(cur)
	if !ok {
		return
	}
	r.log.WithFields(log.Fields{"action": a.Type, "player": a.PlayerId}).Info("timer expired")
	if _, err := r.safely(func() (engine.Result, error) { return r.apply(a) }); err != nil {
		r.log.WithError(err).Error("default action failed")
		r.arm(cur)
	}
}

func (r *Room) current() *models.GameState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Join adds player to the lobby roster. Rejoining is a no-op.
func (r *Room) Join(ctx context.Context, player models.Player) error {
	_, err := r.do(ctx, func() (engine.Result, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, m := range r.members {
			if m.Id == player.Id {
				return engine.Result{}, nil
			}
		}
		if r.state != nil {
			return engine.Result{}, ErrStarted
		}
		if len(r.members) >= r.settings.MaxPlayers {
			return engine.Result{}, ErrFull
		}
		r.members = append(r.members, player)
		return engine.Result{}, nil
	})
	return err
}

// Leave removes playerId. Once the game is running, leaving forfeits
// everything to the player's first creditor, or to the bank.
func (r *Room) Leave(ctx context.Context, playerId string) error {
	_, err := r.do(ctx, func() (engine.Result, error) {
		idx := -1
		for i, m := range r.Members() {
			if m.Id == playerId {
				idx = i
			}
		}
		if idx < 0 {
			return engine.Result{}, ErrNotMember
		}
		var res engine.Result
		if cur := r.current(); cur != nil && cur.Status == models.StatusPlaying {
			if p := cur.PlayerById(playerId); p != nil && !p.IsBankrupt {
				var err error
				if res, err = r.engine.Forfeit(cur, playerId); err != nil {
					return res, err
				}
				r.publish(res)
			}
		}
		r.mu.Lock()
		r.members = append(r.members[:idx:idx], r.members[idx+1:]...)
		r.mu.Unlock()
		return res, nil
	})
	return err
}

// Start deals the game to the current roster in join order.
func (r *Room) Start(ctx context.Context) (engine.Result, error) {
	return r.do(ctx, func() (engine.Result, error) {
		if r.current() != nil {
			return engine.Result{}, ErrStarted
		}
		r.mu.RLock()
		players := append([]models.Player(nil), r.members...)
		r.mu.RUnlock()
		settings := r.settings
		if settings.Seed == 0 {
			settings.Seed = time.Now().UnixNano()
		}
		res, err := r.engine.NewGame(r.Id, players, settings)
		if err != nil {
			return res, err
		}
		r.log.WithField("players", len(players)).Info("game started")
		r.publish(res)
		return res, nil
	})
}

// Snapshot returns a private copy of the current state, or nil before the
// game starts.
func (r *Room) Snapshot() *models.GameState {
	cur := r.current()
	if cur == nil {
		return nil
	}
	return cur.Clone()
}

// EventsSince returns every event with a timestamp strictly greater than ts.
func (r *Room) EventsSince(ts int64) []models.GameEvent {
	cur := r.current()
	if cur == nil {
		return nil
	}
	events := cur.Events
	return eventlog.Attach(r.Id, &events, nil).GetEventsSince(ts)
}

func (r *Room) Members() []models.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Player(nil), r.members...)
}

func (r *Room) Settings() models.Settings {
	return r.settings
}

// Subscribe registers a listener for updates. The channel is buffered; a
// listener that falls behind misses updates and should resync with
// EventsSince. The returned func unsubscribes and closes the channel.
func (r *Room) Subscribe() (<-chan Update, func()) {
	ch := make(chan Update, 64)
	r.mu.Lock()
	select {
	case <-r.done:
		r.mu.Unlock()
		close(ch)
		return ch, func() {}
	default:
	}
	id := r.nextSub
	r.nextSub++
	r.subs[id] = ch
	r.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			if _, ok := r.subs[id]; ok {
				delete(r.subs, id)
				close(ch)
			}
			r.mu.Unlock()
		})
	}
}

// Close stops the room goroutine and closes every subscription.
func (r *Room) Close() {
	r.once.Do(func() {
		close(r.done)
		r.mu.Lock()
		for id, ch := range r.subs {
			delete(r.subs, id)
			close(ch)
		}
		r.mu.Unlock()
	})
}
