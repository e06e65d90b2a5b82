package eventlog

import (
	"fmt"
	"sort"

	"github.com/DedS3t/monopoly-server/app/models"
)

// Log is an append-only, per-game sequence of events. It either owns its
// storage (New) or writes through to a slice held elsewhere, typically
// GameState.Events (Attach). A Log is not safe for concurrent use; the room
// that owns it serializes access.
type Log struct {
	gameId string
	events *[]models.GameEvent
	clock  Clock
}

func New(gameId string, clock Clock) *Log {
	var events []models.GameEvent
	return Attach(gameId, &events, clock)
}

// Attach returns a Log that appends to *events.
func Attach(gameId string, events *[]models.GameEvent, clock Clock) *Log {
	if clock == nil {
		clock = WallClock{}
	}
	return &Log{gameId: gameId, events: events, clock: clock}
}

// Append stamps payload with the next sequence number and a timestamp
// strictly greater than the previous event's, stores it and returns it.
func (l *Log) Append(payload models.EventPayload) models.GameEvent {
	seq := len(*l.events) + 1
	ts := l.clock.Now()
	if last := l.LastTimestamp(); ts <= last {
		ts = last + 1
	}
	ev := models.GameEvent{
		Id:        fmt.Sprintf("%s-%06d", l.gameId, seq),
		GameId:    l.gameId,
		Seq:       seq,
		Type:      payload.EventType(),
		Payload:   payload,
		Timestamp: ts,
	}
	*l.events = append(*l.events, ev)
	return ev
}

// GetAll returns a copy of the full ordered sequence.
func (l *Log) GetAll() []models.GameEvent {
	return append([]models.GameEvent(nil), (*l.events)...)
}

// GetEventsSince returns, in order, every event whose timestamp is strictly
// greater than ts.
func (l *Log) GetEventsSince(ts int64) []models.GameEvent {
	events := *l.events
	i := sort.Search(len(events), func(i int) bool { return events[i].Timestamp > ts })
	return append([]models.GameEvent(nil), events[i:]...)
}

func (l *Log) Len() int {
	return len(*l.events)
}

func (l *Log) LastTimestamp() int64 {
	events := *l.events
	if len(events) == 0 {
		return 0
	}
	return events[len(events)-1].Timestamp
}
