package engine

import (
	"testing"

	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/board"
)

func noAuctions() models.Settings {
	s := testSettings()
	s.AuctionsEnabled = false
	return s
}

func TestThreeDoublesSendsToJail(t *testing.T) {
	e, g := newGame(t, dice(3, 3, 2, 2, 4, 4), noAuctions())

	g, _ = apply(t, e, g, act(models.ActionRollDice, "alice"))
	g, _ = apply(t, e, g, onProperty(models.ActionDeclineProperty, "alice", 6))
	g, _ = apply(t, e, g, act(models.ActionEndTurn, "alice"))
	if g.CurrentPlayer().Id != "alice" || g.TurnState.Phase != models.PhaseWaitingForRoll {
		t.Fatalf("doubles should give alice another roll, got %s in %s", g.CurrentPlayer().Id, g.TurnState.Phase)
	}

	g, _ = apply(t, e, g, act(models.ActionRollDice, "alice"))
	if got := g.PlayerById("alice").Position; got != 10 {
		t.Fatalf("position = %d, want 10", got)
	}
	g, _ = apply(t, e, g, act(models.ActionEndTurn, "alice"))

	g, events := apply(t, e, g, act(models.ActionRollDice, "alice"))
	alice := g.PlayerById("alice")
	if !alice.Jail.InJail || alice.Position != board.JailPos {
		t.Fatalf("alice = %+v, want jailed", alice)
	}
	if n := countEvents(events, models.EventPlayerMoved); n != 0 {
		t.Fatalf("third doubles moved the token %d times", n)
	}
	if n := countEvents(events, models.EventPlayerJailed); n != 1 {
		t.Fatalf("got %d PlayerJailed events", n)
	}
	g, _ = apply(t, e, g, act(models.ActionEndTurn, "alice"))
	if g.CurrentPlayer().Id != "bob" {
		t.Fatalf("turn did not pass to bob")
	}
	checkReplay(t, g)
}

func jailAlice(g *models.GameState) {
	alice := g.PlayerById("alice")
	alice.Position = board.JailPos
	alice.Jail = models.JailStatus{InJail: true}
}

func TestJailThirdFailedRollForcesFine(t *testing.T) {
	e, g := newGame(t, dice(1, 2, 1, 2, 1, 2), noAuctions())
	jailAlice(g)
	expectErr(t, e, g, act(models.ActionRollDice, "alice"), ErrIllegalState)

	for i := 1; i <= 2; i++ {
		g, _ = apply(t, e, g, act(models.ActionRollForDoubles, "alice"))
		alice := g.PlayerById("alice")
		if !alice.Jail.InJail || alice.Jail.TurnsInJail != i || alice.Position != board.JailPos {
			t.Fatalf("attempt %d: alice = %+v", i, alice)
		}
		setPhase(g, models.PhaseWaitingForRoll)
	}

	g, _ = apply(t, e, g, act(models.ActionRollForDoubles, "alice"))
	alice := g.PlayerById("alice")
	if alice.Jail.InJail || alice.Position != 13 || alice.Cash != 1500-board.JailFine {
		t.Fatalf("alice = %+v, want released to 13 after paying", alice)
	}
	if g.TurnState.Phase != models.PhaseAwaitingBuyDecision {
		t.Fatalf("phase = %s", g.TurnState.Phase)
	}
}

func TestJailDoublesReleaseWithoutExtraRoll(t *testing.T) {
	e, g := newGame(t, dice(2, 2), noAuctions())
	jailAlice(g)
	g, _ = apply(t, e, g, act(models.ActionRollForDoubles, "alice"))
	alice := g.PlayerById("alice")
	if alice.Jail.InJail || alice.Position != 14 || alice.Cash != 1500 {
		t.Fatalf("alice = %+v", alice)
	}
	g, _ = apply(t, e, g, onProperty(models.ActionDeclineProperty, "alice", 14))
	g, _ = apply(t, e, g, act(models.ActionEndTurn, "alice"))
	if g.CurrentPlayer().Id != "bob" {
		t.Fatalf("doubles out of jail granted another roll")
	}
}

func TestPayJailFine(t *testing.T) {
	e, g := newGame(t, dice(2, 4), noAuctions())
	jailAlice(g)
	g, _ = apply(t, e, g, act(models.ActionPayJailFine, "alice"))
	alice := g.PlayerById("alice")
	if alice.Jail.InJail || alice.Cash != 1450 || g.TurnState.Phase != models.PhaseWaitingForRoll {
		t.Fatalf("alice = %+v in %s", alice, g.TurnState.Phase)
	}
	g, _ = apply(t, e, g, act(models.ActionRollDice, "alice"))
	if got := g.PlayerById("alice").Position; got != 16 {
		t.Fatalf("position = %d, want 16", got)
	}

	_, g = newGame(t, dice(), noAuctions())
	jailAlice(g)
	g.PlayerById("alice").Cash = 10
	expectErr(t, e, g, act(models.ActionPayJailFine, "alice"), ErrInsufficientFunds)
}

func TestUseJailCard(t *testing.T) {
	e, g := newGame(t, dice(), noAuctions())
	jailAlice(g)
	expectErr(t, e, g, act(models.ActionUseJailCard, "alice"), ErrRuleViolation)

	var pile []string
	for _, id := range g.Decks.Chance.DrawPile {
		if id != "chance-goojf" {
			pile = append(pile, id)
		}
	}
	g.Decks.Chance.DrawPile = pile
	alice := g.PlayerById("alice")
	alice.GetOutOfJailFreeCards = 1
	alice.JailCardDecks = []models.DeckKind{models.DeckChance}

	g, _ = apply(t, e, g, act(models.ActionUseJailCard, "alice"))
	alice = g.PlayerById("alice")
	if alice.Jail.InJail || alice.GetOutOfJailFreeCards != 0 {
		t.Fatalf("alice = %+v", alice)
	}
	if d := g.Decks.Chance.Discard; len(d) != 1 || d[0] != "chance-goojf" {
		t.Fatalf("chance discard = %v", d)
	}
	if g.TurnState.Phase != models.PhaseWaitingForRoll {
		t.Fatalf("phase = %s", g.TurnState.Phase)
	}
}
