package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/eventlog"
)

// scriptedRoller returns the given dice in order.
type scriptedRoller struct {
	rolls [][2]int
	next  int
}

func (r *scriptedRoller) Roll(*models.GameState) (int, int) {
	d := r.rolls[r.next]
	r.next++
	return d[0], d[1]
}

func dice(pairs ...int) *scriptedRoller {
	r := &scriptedRoller{}
	for i := 0; i+1 < len(pairs); i += 2 {
		r.rolls = append(r.rolls, [2]int{pairs[i], pairs[i+1]})
	}
	return r
}

func testSettings() models.Settings {
	s := models.DefaultSettings()
	s.Seed = 7
	return s
}

func newGame(t *testing.T, roller Roller, settings models.Settings, ids ...string) (*Engine, *models.GameState) {
	t.Helper()
	if len(ids) == 0 {
		ids = []string{"alice", "bob"}
	}
	e := New(WithRoller(roller), WithClock(&eventlog.StepClock{}))
	var players []models.Player
	for _, id := range ids {
		players = append(players, models.Player{Id: id, Name: id})
	}
	res, err := e.NewGame("g1", players, settings)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return e, res.State
}

func apply(t *testing.T, e *Engine, g *models.GameState, a models.GameAction) (*models.GameState, []models.GameEvent) {
	t.Helper()
	res, err := e.Apply(g, a)
	if err != nil {
		t.Fatalf("%s by %s: %v", a.Type, a.PlayerId, err)
	}
	checkInvariants(t, res.State)
	return res.State, res.Events
}

func expectErr(t *testing.T, e *Engine, g *models.GameState, a models.GameAction, want error) {
	t.Helper()
	before := g.Clone()
	_, err := e.Apply(g, a)
	if !errors.Is(err, want) {
		t.Fatalf("%s by %s: err = %v, want %v", a.Type, a.PlayerId, err, want)
	}
	if !reflect.DeepEqual(before, g) {
		t.Fatalf("%s by %s: rejected action modified the state", a.Type, a.PlayerId)
	}
}

func act(typ models.ActionType, player string) models.GameAction {
	return models.GameAction{Type: typ, PlayerId: player}
}

func onProperty(typ models.ActionType, player string, spaceId int) models.GameAction {
	return models.GameAction{Type: typ, PlayerId: player, PropertyId: spaceId}
}

// give hands spaceIds to playerId directly, bypassing purchase.
func give(g *models.GameState, playerId string, spaceIds ...int) {
	p := g.PlayerById(playerId)
	for _, id := range spaceIds {
		g.PropertyById(id).OwnerId = playerId
		p.Properties = append(p.Properties, id)
	}
}

func setPhase(g *models.GameState, phase models.TurnPhase) {
	g.TurnState.Phase = phase
	g.TurnState.HasRolled = phase != models.PhaseWaitingForRoll
}

func countEvents(events []models.GameEvent, typ models.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func checkInvariants(t *testing.T, g *models.GameState) {
	t.Helper()
	for _, p := range g.Players {
		if p.Cash < 0 {
			t.Fatalf("%s has negative cash %d", p.Id, p.Cash)
		}
		if p.GetOutOfJailFreeCards != len(p.JailCardDecks) {
			t.Fatalf("%s jail cards %d, decks %v", p.Id, p.GetOutOfJailFreeCards, p.JailCardDecks)
		}
	}
	houses, hotels := 0, 0
	for _, prop := range g.Properties {
		if prop.Houses < 0 || prop.Houses > models.HotelLevel {
			t.Fatalf("space %d has %d houses", prop.SpaceId, prop.Houses)
		}
		if prop.Houses == models.HotelLevel {
			hotels++
		} else {
			houses += prop.Houses
		}
	}
	if g.Supply.Houses < 0 || g.Supply.Hotels < 0 {
		t.Fatalf("negative supply %+v", g.Supply)
	}
	if g.Supply.Houses+houses != models.MaxHouses || g.Supply.Hotels+hotels != models.MaxHotels {
		t.Fatalf("supply %+v does not balance %d houses and %d hotels on the board", g.Supply, houses, hotels)
	}
	for i := 1; i < len(g.Events); i++ {
		if g.Events[i].Timestamp <= g.Events[i-1].Timestamp {
			t.Fatalf("event %d timestamp %d not after %d", i, g.Events[i].Timestamp, g.Events[i-1].Timestamp)
		}
	}
}

func checkReplay(t *testing.T, g *models.GameState) {
	t.Helper()
	got, err := eventlog.Project(g.Events)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if want := View(g); !reflect.DeepEqual(got, want) {
		t.Fatalf("replayed view differs\n got: %+v\nwant: %+v", got, want)
	}
}
