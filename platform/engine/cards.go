package engine

import (
	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/board"
)

func (t *tx) deck(kind models.DeckKind) *models.Deck {
	if kind == models.DeckChance {
		return &t.g.Decks.Chance
	}
	return &t.g.Decks.CommunityChest
}

// drawCard takes the top card of a deck, reshuffling the discard pile into
// a fresh draw pile when it runs out, and applies its effect.
func (t *tx) drawCard(p *models.Player, kind models.DeckKind) {
	d := t.deck(kind)
	if len(d.DrawPile) == 0 {
		d.DrawPile = shuffle(t.g, d.Discard)
		d.Discard = nil
	}
	if len(d.DrawPile) == 0 {
		t.g.TurnState.Phase = models.PhasePlayerAction
		return
	}
	id := d.DrawPile[0]
	d.DrawPile = d.DrawPile[1:]
	card, err := board.GetCard(id)
	if err != nil {
		panic(err)
	}
	kept := card.Effect.Kind == models.EffectGetOutOfJailFree
	if !kept {
		d.Discard = append(d.Discard, id)
	}
	t.g.LastCardDrawn = &card
	t.emit(models.CardDrawnPayload{PlayerId: p.Id, Deck: kind, CardId: card.Id, Text: card.Text, Kept: kept})
	t.applyCard(p, card)
}

func (t *tx) applyCard(p *models.Player, card models.Card) {
	eff := card.Effect
	t.g.TurnState.Phase = models.PhasePlayerAction
	t.g.LastResolution = describe("%s drew %q", p.Name, card.Text)
	switch eff.Kind {
	case models.EffectCash:
		if eff.Amount > 0 {
			p.Cash += eff.Amount
			t.emit(models.CashTransferredPayload{ToId: p.Id, Amount: eff.Amount, Reason: card.Id})
		} else {
			t.charge(models.Debt{DebtorId: p.Id, Amount: -eff.Amount, Reason: models.DebtCard})
		}
	case models.EffectMove:
		t.moveTo(p, eff.Destination)
		t.resolve(p, t.lastTotal(), rentNormal)
	case models.EffectMoveBack:
		t.moveBack(p, eff.Spaces)
		t.resolve(p, t.lastTotal(), rentNormal)
	case models.EffectJail:
		t.sendToJail(p, "card")
	case models.EffectCollectFromAll:
		for i := range t.g.Players {
			other := &t.g.Players[i]
			if other.Id == p.Id || other.IsBankrupt || !other.IsActive {
				continue
			}
			t.charge(models.Debt{DebtorId: other.Id, CreditorId: p.Id, Amount: eff.Amount, Reason: models.DebtCard})
		}
	case models.EffectPayEachPlayer:
		for i := range t.g.Players {
			other := &t.g.Players[i]
			if other.Id == p.Id || other.IsBankrupt || !other.IsActive {
				continue
			}
			t.charge(models.Debt{DebtorId: p.Id, CreditorId: other.Id, Amount: eff.Amount, Reason: models.DebtCard})
		}
	case models.EffectRepairs:
		houses, hotels := 0, 0
		for _, prop := range t.g.Properties {
			if prop.OwnerId != p.Id {
				continue
			}
			if prop.Houses == models.HotelLevel {
				hotels++
			} else {
				houses += prop.Houses
			}
		}
		t.charge(models.Debt{DebtorId: p.Id, Amount: houses*eff.PerHouse + hotels*eff.PerHotel, Reason: models.DebtRepairs})
	case models.EffectAdvanceNearestRailroad:
		t.moveTo(p, board.NearestOfType(p.Position, models.SpaceRailroad))
		t.resolve(p, t.lastTotal(), rentDoubleRailroad)
	case models.EffectAdvanceNearestUtility:
		t.moveTo(p, board.NearestOfType(p.Position, models.SpaceUtility))
		t.resolve(p, t.lastTotal(), rentTenTimesDice)
	case models.EffectGetOutOfJailFree:
		p.GetOutOfJailFreeCards++
		p.JailCardDecks = append(p.JailCardDecks, card.Deck)
	}
}

func (t *tx) lastTotal() int {
	if t.g.LastDiceResult == nil {
		return 0
	}
	return t.g.LastDiceResult.Total
}

// returnJailCard puts a used or surrendered Get Out of Jail Free card on
// the discard pile of the deck it came from.
func (t *tx) returnJailCard(kind models.DeckKind) {
	for _, id := range board.DeckCards(kind) {
		card, _ := board.GetCard(id)
		if card.Effect.Kind != models.EffectGetOutOfJailFree {
			continue
		}
		d := t.deck(kind)
		d.Discard = append(d.Discard, id)
		return
	}
}
