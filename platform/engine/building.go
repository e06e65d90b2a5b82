package engine

import (
	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/board"
	"github.com/DedS3t/monopoly-server/platform/rules"
)

func (t *tx) streetOf(p *models.Player, spaceId int) (*models.Property, models.Space, error) {
	prop, err := ownedProperty(t.g, p, spaceId)
	if err != nil {
		return nil, models.Space{}, err
	}
	space := board.MustGet(spaceId)
	if space.Type != models.SpaceStreet {
		return nil, space, invalidTarget("%s is not a street", space.Name)
	}
	return prop, space, nil
}

func (t *tx) buildHouse(p *models.Player, spaceId int) error {
	prop, space, err := t.streetOf(p, spaceId)
	if err != nil {
		return err
	}
	if !rules.OwnsFullGroup(t.g, p.Id, space.ColorGroup) {
		return violation("%s does not own the whole %s group", p.Id, space.ColorGroup)
	}
	group := rules.GroupProperties(t.g, space.ColorGroup)
	for _, sib := range group {
		if sib.Mortgaged {
			return violation("%s has a mortgaged property", space.ColorGroup)
		}
	}
	if prop.Houses >= models.HotelLevel {
		return violation("%s already has a hotel", space.Name)
	}
	for _, sib := range group {
		if prop.Houses > sib.Houses {
			return violation("build evenly: %s has %d, %s has %d",
				space.Name, prop.Houses, board.MustGet(sib.SpaceId).Name, sib.Houses)
		}
	}
	level := prop.Houses + 1
	if level == models.HotelLevel {
		if t.g.Supply.Hotels < 1 {
			return violation("no hotels left in the bank")
		}
	} else if t.g.Supply.Houses < 1 {
		return violation("no houses left in the bank")
	}
	cost := rules.BuildingCost(space, level)
	if p.Cash < cost {
		return insufficient("building on %s costs $%d, %s has $%d", space.Name, cost, p.Id, p.Cash)
	}

	p.Cash -= cost
	prop.Houses = level
	if level == models.HotelLevel {
		t.g.Supply.Hotels--
		t.g.Supply.Houses += 4
	} else {
		t.g.Supply.Houses--
	}
	t.emit(models.BuildingPlacedPayload{PlayerId: p.Id, SpaceId: spaceId, Houses: level, Cost: cost})
	return nil
}

// sellBuilding sells count buildings from one street, one level at a time.
// Every step must satisfy the even-selling rule.
func (t *tx) sellBuilding(p *models.Player, spaceId, count int) error {
	if count <= 0 {
		count = 1
	}
	for i := 0; i < count; i++ {
		if err := t.sellOne(p, spaceId); err != nil {
			return err
		}
	}
	return nil
}

func (t *tx) sellOne(p *models.Player, spaceId int) error {
	prop, space, err := t.streetOf(p, spaceId)
	if err != nil {
		return err
	}
	if prop.Houses == 0 {
		return violation("%s has no buildings", space.Name)
	}
	for _, sib := range rules.GroupProperties(t.g, space.ColorGroup) {
		if prop.Houses < sib.Houses {
			return violation("sell evenly: %s has %d, %s has %d",
				space.Name, prop.Houses, board.MustGet(sib.SpaceId).Name, sib.Houses)
		}
	}
	level := prop.Houses
	if level == models.HotelLevel && t.g.Supply.Houses < 4 {
		return violation("selling the hotel on %s needs 4 houses in the bank", space.Name)
	}
	refund := rules.BuildingRefund(space, level)

	if level == models.HotelLevel {
		t.g.Supply.Hotels++
		t.g.Supply.Houses -= 4
	} else {
		t.g.Supply.Houses++
	}
	prop.Houses = level - 1
	p.Cash += refund
	t.emit(models.BuildingSoldPayload{PlayerId: p.Id, SpaceId: spaceId, Houses: prop.Houses, Refund: refund})
	return nil
}

// BuildHouse raises one street by a level outside the turn machine.
func (e *Engine) BuildHouse(g *models.GameState, playerId string, spaceId int) (Result, error) {
	return e.run(g, func(t *tx) error {
		p := t.g.PlayerById(playerId)
		if p == nil {
			return notEligible("unknown player %q", playerId)
		}
		return t.buildHouse(p, spaceId)
	})
}

func (e *Engine) SellBuilding(g *models.GameState, playerId string, spaceId, count int) (Result, error) {
	return e.run(g, func(t *tx) error {
		p := t.g.PlayerById(playerId)
		if p == nil {
			return notEligible("unknown player %q", playerId)
		}
		return t.sellBuilding(p, spaceId, count)
	})
}
