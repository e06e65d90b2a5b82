package engine

import (
	"testing"

	"github.com/DedS3t/monopoly-server/app/models"
)

func tradeGame(t *testing.T) (*Engine, *models.GameState) {
	e, g := newGame(t, dice(), testSettings())
	give(g, "alice", 6)
	give(g, "bob", 1)
	setPhase(g, models.PhasePlayerAction)
	return e, g
}

func propose(from, to string, terms models.TradeTerms) models.GameAction {
	return models.GameAction{Type: models.ActionProposeTrade, PlayerId: from, RecipientId: to, Offer: &terms}
}

func onTrade(typ models.ActionType, player, tradeId string) models.GameAction {
	return models.GameAction{Type: typ, PlayerId: player, TradeId: tradeId}
}

func TestTradeCounterThenAccept(t *testing.T) {
	e, g := tradeGame(t)
	g, _ = apply(t, e, g, propose("alice", "bob", models.TradeTerms{
		OfferedProperties:   []int{6},
		OfferedCash:         50,
		RequestedProperties: []int{1},
	}))
	if g.TurnState.Phase != models.PhaseTradeNegotiation || g.PendingTrade().Id != "trade-1" {
		t.Fatalf("phase %s", g.TurnState.Phase)
	}
	expectErr(t, e, g, act(models.ActionEndTurn, "alice"), ErrIllegalState)
	expectErr(t, e, g, onTrade(models.ActionAcceptTrade, "alice", "trade-1"), ErrNotEligible)

	counter := models.GameAction{
		Type:     models.ActionCounterTrade,
		PlayerId: "bob",
		TradeId:  "trade-1",
		Offer:    &models.TradeTerms{OfferedProperties: []int{1}, RequestedProperties: []int{6}, RequestedCash: 100},
	}
	g, _ = apply(t, e, g, counter)
	if g.TradeOffers[0].Status != models.TradeCountered {
		t.Fatalf("original offer %s", g.TradeOffers[0].Status)
	}
	pending := g.PendingTrade()
	if pending.Id != "trade-2" || pending.ProposerId != "bob" || pending.RecipientId != "alice" {
		t.Fatalf("counter = %+v", pending)
	}
	expectErr(t, e, g, onTrade(models.ActionAcceptTrade, "bob", "trade-2"), ErrNotEligible)
	expectErr(t, e, g, onTrade(models.ActionAcceptTrade, "alice", "trade-1"), ErrInvalidTarget)

	g, _ = apply(t, e, g, onTrade(models.ActionAcceptTrade, "alice", "trade-2"))
	alice, bob := g.PlayerById("alice"), g.PlayerById("bob")
	if g.PropertyById(1).OwnerId != "alice" || g.PropertyById(6).OwnerId != "bob" {
		t.Fatalf("ownership not swapped")
	}
	if alice.Cash != 1400 || bob.Cash != 1600 {
		t.Fatalf("cash alice %d bob %d", alice.Cash, bob.Cash)
	}
	if len(alice.Properties) != 1 || alice.Properties[0] != 1 || len(bob.Properties) != 1 || bob.Properties[0] != 6 {
		t.Fatalf("holdings alice %v bob %v", alice.Properties, bob.Properties)
	}
	if g.TurnState.Phase != models.PhasePlayerAction {
		t.Fatalf("phase %s", g.TurnState.Phase)
	}
}

func TestTradeEitherPartyRejects(t *testing.T) {
	for _, by := range []string{"alice", "bob"} {
		e, g := tradeGame(t)
		g, _ = apply(t, e, g, propose("alice", "bob", models.TradeTerms{RequestedProperties: []int{1}, OfferedCash: 80}))
		g, _ = apply(t, e, g, onTrade(models.ActionRejectTrade, by, "trade-1"))
		if g.TradeOffers[0].Status != models.TradeRejected || g.TurnState.Phase != models.PhasePlayerAction {
			t.Fatalf("%s rejecting: status %s phase %s", by, g.TradeOffers[0].Status, g.TurnState.Phase)
		}
		if g.PropertyById(1).OwnerId != "bob" {
			t.Fatalf("rejected trade moved property")
		}
	}
}

func TestTradeValidation(t *testing.T) {
	e, g := tradeGame(t)
	expectErr(t, e, g, propose("bob", "alice", models.TradeTerms{OfferedCash: 1}), ErrIllegalState)
	expectErr(t, e, g, propose("alice", "alice", models.TradeTerms{OfferedCash: 1}), ErrNotEligible)
	expectErr(t, e, g, propose("alice", "bob", models.TradeTerms{}), ErrInvalidTarget)
	expectErr(t, e, g, propose("alice", "bob", models.TradeTerms{OfferedProperties: []int{1}}), ErrInvalidTarget)
	expectErr(t, e, g, propose("alice", "bob", models.TradeTerms{OfferedCash: 5000}), ErrInsufficientFunds)
	expectErr(t, e, g, propose("alice", "bob", models.TradeTerms{RequestedCards: 1}), ErrInvalidTarget)
	expectErr(t, e, g, models.GameAction{Type: models.ActionProposeTrade, PlayerId: "alice", RecipientId: "bob"}, ErrInvalidTarget)

	give(g, "alice", 8, 9)
	g.PropertyById(8).Houses = 1
	g.Supply.Houses--
	expectErr(t, e, g, propose("alice", "bob", models.TradeTerms{OfferedProperties: []int{6}}), ErrRuleViolation)
}

func TestTradeMovesJailCards(t *testing.T) {
	e, g := tradeGame(t)
	bob := g.PlayerById("bob")
	bob.GetOutOfJailFreeCards = 1
	bob.JailCardDecks = []models.DeckKind{models.DeckCommunityChest}

	res, err := e.ExecuteTrade(g, models.TradeOffer{
		ProposerId:  "alice",
		RecipientId: "bob",
		TradeTerms:  models.TradeTerms{OfferedCash: 40, RequestedCards: 1},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	alice := res.State.PlayerById("alice")
	if alice.GetOutOfJailFreeCards != 1 || alice.JailCardDecks[0] != models.DeckCommunityChest || alice.Cash != 1460 {
		t.Fatalf("alice = %+v", alice)
	}
	done := res.Events[0].Payload.(models.TradeCompletedPayload)
	if len(done.RequestedCardDecks) != 1 || done.Offer.Id != "trade-1" {
		t.Fatalf("completed = %+v", done)
	}
}
