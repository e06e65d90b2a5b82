package engine

import (
	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/board"
)

func (t *tx) buyProperty(p *models.Player, spaceId int) error {
	if err := t.requireTurn(p, models.PhaseAwaitingBuyDecision); err != nil {
		return err
	}
	pending := t.g.PendingBuyDecision
	if pending == nil || pending.SpaceId != spaceId {
		return invalidTarget("no pending purchase for space %d", spaceId)
	}
	if err := t.purchase(p, spaceId, pending.Cost); err != nil {
		return err
	}
	t.g.PendingBuyDecision = nil
	t.g.TurnState.Phase = models.PhasePlayerAction
	return nil
}

// purchase transfers an unowned property to p for price.
func (t *tx) purchase(p *models.Player, spaceId, price int) error {
	prop := t.g.PropertyById(spaceId)
	if prop == nil {
		return invalidTarget("space %d cannot be owned", spaceId)
	}
	if prop.OwnerId != "" {
		return invalidTarget("%s is already owned", board.MustGet(spaceId).Name)
	}
	if p.Cash < price {
		return insufficient("%s costs $%d, %s has $%d", board.MustGet(spaceId).Name, price, p.Id, p.Cash)
	}
	p.Cash -= price
	prop.OwnerId = p.Id
	p.Properties = append(p.Properties, spaceId)
	t.emit(models.PropertyPurchasedPayload{PlayerId: p.Id, SpaceId: spaceId, Price: price})
	return nil
}

// Purchase buys an unowned property at its printed cost outside the turn
// machine.
func (e *Engine) Purchase(g *models.GameState, playerId string, spaceId int) (Result, error) {
	return e.run(g, func(t *tx) error {
		p := t.g.PlayerById(playerId)
		if p == nil {
			return notEligible("unknown player %q", playerId)
		}
		space, err := board.GetByPos(spaceId)
		if err != nil {
			return invalidTarget("no space %d", spaceId)
		}
		return t.purchase(p, spaceId, space.Cost)
	})
}

func (t *tx) declineProperty(p *models.Player, spaceId int) error {
	if err := t.requireTurn(p, models.PhaseAwaitingBuyDecision); err != nil {
		return err
	}
	pending := t.g.PendingBuyDecision
	if pending == nil || pending.SpaceId != spaceId {
		return invalidTarget("no pending purchase for space %d", spaceId)
	}
	t.g.PendingBuyDecision = nil
	if !t.g.Settings.AuctionsEnabled {
		t.g.TurnState.Phase = models.PhasePlayerAction
		return nil
	}
	t.startAuction(spaceId)
	return nil
}
