package engine

import (
	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/board"
	"github.com/DedS3t/monopoly-server/platform/rules"
)

func (t *tx) mortgage(p *models.Player, spaceId int) error {
	prop, err := ownedProperty(t.g, p, spaceId)
	if err != nil {
		return err
	}
	space := board.MustGet(spaceId)
	if prop.Mortgaged {
		return violation("%s is already mortgaged", space.Name)
	}
	if rules.GroupHasBuildings(t.g, spaceId) {
		return violation("sell the buildings in the %s group first", space.ColorGroup)
	}
	prop.Mortgaged = true
	p.Cash += space.MortgageValue
	t.emit(models.PropertyMortgagedPayload{PlayerId: p.Id, SpaceId: spaceId, Amount: space.MortgageValue})
	return nil
}

func (t *tx) unmortgage(p *models.Player, spaceId int) error {
	prop, err := ownedProperty(t.g, p, spaceId)
	if err != nil {
		return err
	}
	space := board.MustGet(spaceId)
	if !prop.Mortgaged {
		return violation("%s is not mortgaged", space.Name)
	}
	cost := rules.UnmortgageCost(space.MortgageValue)
	if p.Cash < cost {
		return insufficient("lifting the mortgage on %s costs $%d, %s has $%d", space.Name, cost, p.Id, p.Cash)
	}
	prop.Mortgaged = false
	p.Cash -= cost
	t.emit(models.PropertyUnmortgagedPayload{PlayerId: p.Id, SpaceId: spaceId, Amount: cost})
	return nil
}

func (e *Engine) Mortgage(g *models.GameState, playerId string, spaceId int) (Result, error) {
	return e.run(g, func(t *tx) error {
		p := t.g.PlayerById(playerId)
		if p == nil {
			return notEligible("unknown player %q", playerId)
		}
		return t.mortgage(p, spaceId)
	})
}

func (e *Engine) Unmortgage(g *models.GameState, playerId string, spaceId int) (Result, error) {
	return e.run(g, func(t *tx) error {
		p := t.g.PlayerById(playerId)
		if p == nil {
			return notEligible("unknown player %q", playerId)
		}
		return t.unmortgage(p, spaceId)
	})
}
