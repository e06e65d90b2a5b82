package engine

import (
	"testing"

	"github.com/DedS3t/monopoly-server/app/models"
)

// drawChance rolls alice from Go onto the first Chance space with pile as
// the chance draw pile.
func drawChance(t *testing.T, roller *scriptedRoller, pile []string, discard []string, setup func(g *models.GameState)) (*models.GameState, []models.GameEvent) {
	t.Helper()
	e, g := newGame(t, roller, testSettings())
	g.Decks.Chance.DrawPile = pile
	g.Decks.Chance.Discard = discard
	if setup != nil {
		setup(g)
	}
	return apply(t, e, g, act(models.ActionRollDice, "alice"))
}

func TestCashCardGoesToDiscard(t *testing.T) {
	g, events := drawChance(t, dice(3, 4), []string{"chance-dividend", "chance-speeding"}, nil, nil)
	if cash := g.PlayerById("alice").Cash; cash != 1550 {
		t.Fatalf("cash = %d", cash)
	}
	if d := g.Decks.Chance; len(d.DrawPile) != 1 || len(d.Discard) != 1 || d.Discard[0] != "chance-dividend" {
		t.Fatalf("deck = %+v", d)
	}
	if g.LastCardDrawn == nil || g.LastCardDrawn.Id != "chance-dividend" || countEvents(events, models.EventCardDrawn) != 1 {
		t.Fatalf("card not recorded")
	}
	if g.TurnState.Phase != models.PhasePlayerAction {
		t.Fatalf("phase = %s", g.TurnState.Phase)
	}
}

func TestEmptyDeckReshufflesDiscard(t *testing.T) {
	g, _ := drawChance(t, dice(3, 4), nil, []string{"chance-speeding"}, nil)
	if cash := g.PlayerById("alice").Cash; cash != 1485 {
		t.Fatalf("cash = %d", cash)
	}
	if d := g.Decks.Chance; len(d.DrawPile) != 0 || len(d.Discard) != 1 {
		t.Fatalf("deck = %+v", d)
	}
}

func TestJailCardIsKept(t *testing.T) {
	g, events := drawChance(t, dice(3, 4), []string{"chance-goojf"}, nil, nil)
	alice := g.PlayerById("alice")
	if alice.GetOutOfJailFreeCards != 1 || len(alice.JailCardDecks) != 1 || alice.JailCardDecks[0] != models.DeckChance {
		t.Fatalf("alice = %+v", alice)
	}
	if len(g.Decks.Chance.Discard) != 0 {
		t.Fatalf("kept card went to discard")
	}
	for _, ev := range events {
		if ev.Type == models.EventCardDrawn && !ev.Payload.(models.CardDrawnPayload).Kept {
			t.Fatalf("draw not marked kept")
		}
	}
	checkReplay(t, g)
}

func TestNearestRailroadPaysDouble(t *testing.T) {
	g, events := drawChance(t, dice(3, 4), []string{"chance-railroad-1"}, nil, func(g *models.GameState) {
		give(g, "bob", 15)
	})
	alice := g.PlayerById("alice")
	if alice.Position != 15 || alice.Cash != 1450 || g.PlayerById("bob").Cash != 1550 {
		t.Fatalf("alice at %d with $%d", alice.Position, alice.Cash)
	}
	if countEvents(events, models.EventRentPaid) != 1 {
		t.Fatalf("no rent paid")
	}
}

func TestNearestUtilityRollsFresh(t *testing.T) {
	g, events := drawChance(t, dice(3, 4, 2, 3), []string{"chance-utility"}, nil, func(g *models.GameState) {
		give(g, "bob", 12)
	})
	alice := g.PlayerById("alice")
	if alice.Position != 12 || alice.Cash != 1450 {
		t.Fatalf("alice at %d with $%d", alice.Position, alice.Cash)
	}
	if n := countEvents(events, models.EventDiceRolled); n != 2 {
		t.Fatalf("got %d rolls, want 2", n)
	}
}

func TestUnownedDestinationOffersPurchase(t *testing.T) {
	g, _ := drawChance(t, dice(3, 4), []string{"chance-illinois"}, nil, nil)
	if g.TurnState.Phase != models.PhaseAwaitingBuyDecision || g.PendingBuyDecision.SpaceId != 24 {
		t.Fatalf("phase %s pending %+v", g.TurnState.Phase, g.PendingBuyDecision)
	}
	if g.PlayerById("alice").Cash != 1500 {
		t.Fatalf("salary paid without passing Go")
	}
}

func TestAdvanceToGoPaysSalary(t *testing.T) {
	g, _ := drawChance(t, dice(3, 4), []string{"chance-go"}, nil, nil)
	alice := g.PlayerById("alice")
	if alice.Position != 0 || alice.Cash != 1700 {
		t.Fatalf("alice at %d with $%d", alice.Position, alice.Cash)
	}
	checkReplay(t, g)
}

func TestBackThreeLandsOnTax(t *testing.T) {
	g, _ := drawChance(t, dice(3, 4), []string{"chance-back3"}, nil, nil)
	alice := g.PlayerById("alice")
	if alice.Position != 4 || alice.Cash != 1300 {
		t.Fatalf("alice at %d with $%d", alice.Position, alice.Cash)
	}
}

func TestJailCard(t *testing.T) {
	g, _ := drawChance(t, dice(3, 4), []string{"chance-jail"}, nil, nil)
	alice := g.PlayerById("alice")
	if !alice.Jail.InJail || alice.Position != 10 || alice.Cash != 1500 {
		t.Fatalf("alice = %+v", alice)
	}
}

func TestRepairsCountBuildings(t *testing.T) {
	g, _ := drawChance(t, dice(3, 4), []string{"chance-repairs"}, nil, func(g *models.GameState) {
		give(g, "alice", 1, 3, 37, 39)
		g.PropertyById(1).Houses = 2
		g.PropertyById(3).Houses = 2
		g.PropertyById(37).Houses = models.HotelLevel
		g.Supply.Houses -= 4
		g.Supply.Hotels--
	})
	if cash := g.PlayerById("alice").Cash; cash != 1500-4*25-100 {
		t.Fatalf("cash = %d", cash)
	}
}

func TestPayEachPlayer(t *testing.T) {
	e, g := newGame(t, dice(3, 4), testSettings(), "alice", "bob", "carol")
	g.Decks.Chance.DrawPile = []string{"chance-chairman"}
	g, _ = apply(t, e, g, act(models.ActionRollDice, "alice"))
	if g.PlayerById("alice").Cash != 1400 || g.PlayerById("bob").Cash != 1550 || g.PlayerById("carol").Cash != 1550 {
		t.Fatalf("cash %d %d %d", g.PlayerById("alice").Cash, g.PlayerById("bob").Cash, g.PlayerById("carol").Cash)
	}
	checkReplay(t, g)
}
