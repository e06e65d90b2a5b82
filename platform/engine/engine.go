package engine

import (
	"fmt"

	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/board"
	"github.com/DedS3t/monopoly-server/platform/eventlog"
)

// Engine applies actions to game states. It holds no game state of its
// own and is safe to share between rooms.
type Engine struct {
	roller Roller
	clock  eventlog.Clock
}

type Option func(*Engine)

func WithRoller(r Roller) Option {
	return func(e *Engine) { e.roller = r }
}

// WithClock sets the clock used to stamp events.
func WithClock(c eventlog.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func New(opts ...Option) *Engine {
	e := &Engine{roller: SeededRoller{}, clock: eventlog.WallClock{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of a successful action: the replacement state and
// the events it appended.
type Result struct {
	State  *models.GameState
	Events []models.GameEvent
}

// tx is one action being applied to a private copy of the state.
type tx struct {
	e   *Engine
	g   *models.GameState
	log *eventlog.Log
}

func (t *tx) emit(p models.EventPayload) {
	t.log.Append(p)
}

// run applies fn to a copy of g. On error the copy is dropped, so nothing
// is ever partially applied.
func (e *Engine) run(g *models.GameState, fn func(t *tx) error) (Result, error) {
	if g == nil {
		return Result{}, illegal("no game")
	}
	next := g.Clone()
	start := len(next.Events)
	t := &tx{e: e, g: next, log: eventlog.Attach(next.GameId, &next.Events, e.clock)}
	if err := fn(t); err != nil {
		return Result{}, err
	}
	t.settleDebts()
	return Result{State: next, Events: append([]models.GameEvent(nil), next.Events[start:]...)}, nil
}

// Apply validates action against the current turn state and, if legal,
// returns the new state and the events produced. g is never modified.
func (e *Engine) Apply(g *models.GameState, a models.GameAction) (Result, error) {
	if g != nil && g.Status != models.StatusPlaying {
		return Result{}, illegal("game is %s", g.Status)
	}
	return e.run(g, func(t *tx) error { return t.dispatch(a) })
}

// NewGame creates the initial state for players, who take turns in the
// order given. Player 0 starts in WaitingForRoll.
func (e *Engine) NewGame(gameId string, players []models.Player, settings models.Settings) (Result, error) {
	if settings.StartingCash <= 0 {
		settings.StartingCash = models.DefaultSettings().StartingCash
	}
	if settings.MaxPlayers <= 0 {
		settings.MaxPlayers = models.DefaultSettings().MaxPlayers
	}
	if len(players) < 2 {
		return Result{}, notEligible("need at least 2 players, have %d", len(players))
	}
	if len(players) > settings.MaxPlayers {
		return Result{}, notEligible("at most %d players, have %d", settings.MaxPlayers, len(players))
	}
	seen := make(map[string]bool)
	g := &models.GameState{
		GameId:   gameId,
		Status:   models.StatusPlaying,
		Settings: settings,
		Supply:   models.BuildingSupply{Houses: models.MaxHouses, Hotels: models.MaxHotels},
		RNG:      uint64(settings.Seed),
	}
	for _, p := range players {
		if p.Id == "" || seen[p.Id] {
			return Result{}, invalidTarget("duplicate or empty player id %q", p.Id)
		}
		seen[p.Id] = true
		g.Players = append(g.Players, models.Player{
			Id:         p.Id,
			Name:       p.Name,
			Token:      p.Token,
			Cash:       settings.StartingCash,
			Properties: []int{},
			IsActive:   true,
		})
	}
	for _, id := range board.OwnableSpaces() {
		s := board.MustGet(id)
		g.Properties = append(g.Properties, models.Property{SpaceId: id, Type: s.Type, ColorGroup: s.ColorGroup})
	}
	g.Decks.Chance.DrawPile = shuffle(g, board.DeckCards(models.DeckChance))
	g.Decks.CommunityChest.DrawPile = shuffle(g, board.DeckCards(models.DeckCommunityChest))

	t := &tx{e: e, g: g, log: eventlog.Attach(gameId, &g.Events, e.clock)}
	started := make([]models.Player, len(g.Players))
	copy(started, g.Players)
	t.emit(models.GameStartedPayload{Players: started, Settings: settings})
	t.startTurn(0)
	return Result{State: g, Events: append([]models.GameEvent(nil), g.Events...)}, nil
}

// View is the public board view of g, comparable with eventlog.Project.
func View(g *models.GameState) models.BoardView {
	c := g.Clone()
	v := models.BoardView{
		GameId:             c.GameId,
		Status:             c.Status,
		Players:            c.Players,
		CurrentPlayerIndex: c.CurrentPlayerIndex,
		Properties:         c.Properties,
		Supply:             c.Supply,
		FreeParkingPot:     c.FreeParkingPot,
		WinnerId:           c.WinnerId,
	}
	v.Normalize()
	return v
}

func (t *tx) dispatch(a models.GameAction) error {
	actor := t.g.PlayerById(a.PlayerId)
	if actor == nil {
		return notEligible("unknown player %q", a.PlayerId)
	}
	if actor.IsBankrupt || !actor.IsActive {
		return notEligible("player %s is out of the game", actor.Id)
	}
	switch a.Type {
	case models.ActionRollDice:
		return t.rollDice(actor)
	case models.ActionPayJailFine:
		return t.payJailFine(actor)
	case models.ActionUseJailCard:
		return t.useJailCard(actor)
	case models.ActionRollForDoubles:
		return t.rollForDoubles(actor)
	case models.ActionBuyProperty:
		return t.buyProperty(actor, a.PropertyId)
	case models.ActionDeclineProperty:
		return t.declineProperty(actor, a.PropertyId)
	case models.ActionEndTurn:
		return t.endTurn(actor)
	case models.ActionBuildHouse:
		if err := t.requireAction(actor); err != nil {
			return err
		}
		if t.owes(actor.Id) > 0 {
			return violation("settle outstanding debts before building")
		}
		return t.buildHouse(actor, a.PropertyId)
	case models.ActionSellBuilding:
		if err := t.requireActionOrDebtor(actor); err != nil {
			return err
		}
		return t.sellBuilding(actor, a.PropertyId, a.Count)
	case models.ActionMortgageProperty:
		if err := t.requireActionOrDebtor(actor); err != nil {
			return err
		}
		return t.mortgage(actor, a.PropertyId)
	case models.ActionUnmortgageProperty:
		if err := t.requireAction(actor); err != nil {
			return err
		}
		if t.owes(actor.Id) > 0 {
			return violation("settle outstanding debts before unmortgaging")
		}
		return t.unmortgage(actor, a.PropertyId)
	case models.ActionProposeTrade:
		return t.proposeTrade(actor, a.RecipientId, a.Offer)
	case models.ActionAcceptTrade:
		return t.acceptTrade(actor, a.TradeId)
	case models.ActionRejectTrade:
		return t.rejectTrade(actor, a.TradeId)
	case models.ActionCounterTrade:
		return t.counterTrade(actor, a.TradeId, a.Offer)
	case models.ActionPlaceBid:
		return t.placeBid(actor, a.Amount)
	case models.ActionPassAuction:
		return t.passAuction(actor)
	case models.ActionDeclareBankruptcy:
		return t.declareBankruptcy(actor, a.CreditorId)
	}
	return illegal("unknown action %q", a.Type)
}

func (t *tx) isCurrent(p *models.Player) bool {
	cur := t.g.CurrentPlayer()
	return cur != nil && cur.Id == p.Id
}

func (t *tx) requireTurn(p *models.Player, phases ...models.TurnPhase) error {
	if !t.isCurrent(p) {
		return illegal("not %s's turn", p.Id)
	}
	for _, ph := range phases {
		if t.g.TurnState.Phase == ph {
			return nil
		}
	}
	return illegal("cannot do that during %s", t.g.TurnState.Phase)
}

func (t *tx) requireAction(p *models.Player) error {
	return t.requireTurn(p, models.PhasePlayerAction)
}

// requireActionOrDebtor also admits a player raising cash for a debt,
// whatever the phase or whose turn it is.
func (t *tx) requireActionOrDebtor(p *models.Player) error {
	if t.owes(p.Id) > 0 {
		return nil
	}
	return t.requireAction(p)
}

func ownedProperty(g *models.GameState, p *models.Player, spaceId int) (*models.Property, error) {
	prop := g.PropertyById(spaceId)
	if prop == nil {
		return nil, invalidTarget("space %d cannot be owned", spaceId)
	}
	if prop.OwnerId != p.Id {
		return nil, invalidTarget("%s does not own %s", p.Id, board.MustGet(spaceId).Name)
	}
	return prop, nil
}

func describe(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
