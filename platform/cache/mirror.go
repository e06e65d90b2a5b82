package cache

import (
	"encoding/json"
	"fmt"

	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/gomodule/redigo/redis"
)

const roomsKey = "rooms"

func stateKey(gameId string) string  { return fmt.Sprintf("%s.state", gameId) }
func eventsKey(gameId string) string { return fmt.Sprintf("%s.events", gameId) }

// Mirror keeps a copy of every active room in redis: the latest snapshot
// without its event history, and the events as a list. A restarted
// server can find what was running, and other processes can read a room
// without going through its dispatcher.
type Mirror struct {
	pool *redis.Pool
}

func NewMirror(pool *redis.Pool) *Mirror {
	return &Mirror{pool: pool}
}

// Save stores state and appends events, which must be the events added
// since the previous Save of the same room.
func (m *Mirror) Save(state *models.GameState, events []models.GameEvent) error {
	conn := m.pool.Get()
	defer conn.Close()

	snapshot := *state
	snapshot.Events = nil
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	if err := Set(stateKey(state.GameId), data, conn); err != nil {
		return err
	}
	if len(events) > 0 {
		values := make([]interface{}, 0, len(events))
		for _, ev := range events {
			b, err := json.Marshal(ev)
			if err != nil {
				return err
			}
			values = append(values, b)
		}
		if _, err := RPUSH(eventsKey(state.GameId), values, conn); err != nil {
			return err
		}
	}
	return SADD(roomsKey, state.GameId, conn)
}

// Load rebuilds a full state, history included.
func (m *Mirror) Load(gameId string) (*models.GameState, error) {
	conn := m.pool.Get()
	defer conn.Close()

	data, err := GetBytes(stateKey(gameId), conn)
	if err != nil {
		return nil, err
	}
	state := new(models.GameState)
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	if state.Events, err = m.events(gameId, conn); err != nil {
		return nil, err
	}
	return state, nil
}

// Events returns the mirrored log of a room.
func (m *Mirror) Events(gameId string) ([]models.GameEvent, error) {
	conn := m.pool.Get()
	defer conn.Close()
	return m.events(gameId, conn)
}

func (m *Mirror) events(gameId string, conn redis.Conn) ([]models.GameEvent, error) {
	raw, err := LRANGE(eventsKey(gameId), 0, -1, conn)
	if err != nil {
		return nil, err
	}
	events := make([]models.GameEvent, 0, len(raw))
	for _, b := range raw {
		var ev models.GameEvent
		if err := json.Unmarshal(b, &ev); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// Rooms lists the ids of every mirrored room.
func (m *Mirror) Rooms() ([]string, error) {
	conn := m.pool.Get()
	defer conn.Close()
	return SMEMBERS(roomsKey, conn)
}

// Purge removes everything stored for a room.
func (m *Mirror) Purge(gameId string) error {
	conn := m.pool.Get()
	defer conn.Close()
	if err := Del(conn, stateKey(gameId), eventsKey(gameId)); err != nil {
		return err
	}
	return SREM(roomsKey, gameId, conn)
}
