package engine

import (
	"fmt"

	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/board"
	"github.com/DedS3t/monopoly-server/platform/rules"
)

// validateTrade checks both sides can deliver what the offer names against
// the current state.
func validateTrade(g *models.GameState, o models.TradeOffer) error {
	proposer := g.PlayerById(o.ProposerId)
	recipient := g.PlayerById(o.RecipientId)
	if proposer == nil || recipient == nil {
		return notEligible("unknown trade party")
	}
	if proposer.Id == recipient.Id {
		return notEligible("cannot trade with yourself")
	}
	if proposer.IsBankrupt || recipient.IsBankrupt || !proposer.IsActive || !recipient.IsActive {
		return notEligible("both parties must still be in the game")
	}
	if len(o.OfferedProperties) == 0 && len(o.RequestedProperties) == 0 &&
		o.OfferedCash == 0 && o.RequestedCash == 0 && o.OfferedCards == 0 && o.RequestedCards == 0 {
		return invalidTarget("empty trade")
	}
	if o.OfferedCash < 0 || o.RequestedCash < 0 || o.OfferedCards < 0 || o.RequestedCards < 0 {
		return invalidTarget("negative amounts")
	}
	seen := make(map[int]bool)
	check := func(owner *models.Player, ids []int) error {
		for _, id := range ids {
			if seen[id] {
				return invalidTarget("space %d listed twice", id)
			}
			seen[id] = true
			if _, err := ownedProperty(g, owner, id); err != nil {
				return err
			}
			if rules.GroupHasBuildings(g, id) {
				return violation("sell the buildings in the %s group before trading %s",
					board.MustGet(id).ColorGroup, board.MustGet(id).Name)
			}
		}
		return nil
	}
	if err := check(proposer, o.OfferedProperties); err != nil {
		return err
	}
	if err := check(recipient, o.RequestedProperties); err != nil {
		return err
	}
	if proposer.Cash < o.OfferedCash {
		return insufficient("%s cannot cover $%d", proposer.Id, o.OfferedCash)
	}
	if recipient.Cash < o.RequestedCash {
		return insufficient("%s cannot cover $%d", recipient.Id, o.RequestedCash)
	}
	if proposer.GetOutOfJailFreeCards < o.OfferedCards {
		return invalidTarget("%s holds %d jail cards", proposer.Id, proposer.GetOutOfJailFreeCards)
	}
	if recipient.GetOutOfJailFreeCards < o.RequestedCards {
		return invalidTarget("%s holds %d jail cards", recipient.Id, recipient.GetOutOfJailFreeCards)
	}
	return nil
}

func (t *tx) newOffer(proposerId, recipientId string, terms *models.TradeTerms) (models.TradeOffer, error) {
	if terms == nil {
		return models.TradeOffer{}, invalidTarget("missing trade terms")
	}
	o := models.TradeOffer{
		ProposerId:  proposerId,
		RecipientId: recipientId,
		TradeTerms: models.TradeTerms{
			OfferedProperties:   append([]int(nil), terms.OfferedProperties...),
			OfferedCash:         terms.OfferedCash,
			OfferedCards:        terms.OfferedCards,
			RequestedProperties: append([]int(nil), terms.RequestedProperties...),
			RequestedCash:       terms.RequestedCash,
			RequestedCards:      terms.RequestedCards,
		},
		Status: models.TradePending,
	}
	if err := validateTrade(t.g, o); err != nil {
		return o, err
	}
	t.g.TradeSeq++
	o.Id = fmt.Sprintf("trade-%d", t.g.TradeSeq)
	t.g.TradeOffers = append(t.g.TradeOffers, o)
	t.emit(models.TradeProposedPayload{Offer: o})
	return o, nil
}

func (t *tx) proposeTrade(p *models.Player, recipientId string, terms *models.TradeTerms) error {
	if err := t.requireAction(p); err != nil {
		return err
	}
	if _, err := t.newOffer(p.Id, recipientId, terms); err != nil {
		return err
	}
	t.g.TurnState.Phase = models.PhaseTradeNegotiation
	return nil
}

func (t *tx) pendingTrade(tradeId string) (*models.TradeOffer, error) {
	if t.g.TurnState.Phase != models.PhaseTradeNegotiation {
		return nil, illegal("no trade under negotiation")
	}
	tr := t.g.PendingTrade()
	if tr == nil || tr.Id != tradeId {
		return nil, invalidTarget("no pending trade %q", tradeId)
	}
	return tr, nil
}

func (t *tx) acceptTrade(p *models.Player, tradeId string) error {
	tr, err := t.pendingTrade(tradeId)
	if err != nil {
		return err
	}
	if tr.RecipientId != p.Id {
		return notEligible("only %s can accept %s", tr.RecipientId, tr.Id)
	}
	if err := t.executeTrade(tr); err != nil {
		return err
	}
	t.g.TurnState.Phase = models.PhasePlayerAction
	return nil
}

func (t *tx) rejectTrade(p *models.Player, tradeId string) error {
	tr, err := t.pendingTrade(tradeId)
	if err != nil {
		return err
	}
	if tr.RecipientId != p.Id && tr.ProposerId != p.Id {
		return notEligible("%s is not part of %s", p.Id, tr.Id)
	}
	tr.Status = models.TradeRejected
	t.emit(models.TradeRejectedPayload{TradeId: tr.Id, ById: p.Id})
	t.g.TurnState.Phase = models.PhasePlayerAction
	return nil
}

// counterTrade closes the pending offer as countered and opens a new one
// from its recipient back to its proposer.
func (t *tx) counterTrade(p *models.Player, tradeId string, terms *models.TradeTerms) error {
	tr, err := t.pendingTrade(tradeId)
	if err != nil {
		return err
	}
	if tr.RecipientId != p.Id {
		return notEligible("only %s can counter %s", tr.RecipientId, tr.Id)
	}
	proposerId := tr.ProposerId
	tr.Status = models.TradeCountered
	if _, err := t.newOffer(p.Id, proposerId, terms); err != nil {
		return err
	}
	return nil
}

// executeTrade swaps everything named in tr between its two parties after
// re-checking it against the current state.
func (t *tx) executeTrade(tr *models.TradeOffer) error {
	if err := validateTrade(t.g, *tr); err != nil {
		return err
	}
	proposer := t.g.PlayerById(tr.ProposerId)
	recipient := t.g.PlayerById(tr.RecipientId)
	for _, id := range tr.OfferedProperties {
		moveProperty(t.g, id, proposer, recipient)
	}
	for _, id := range tr.RequestedProperties {
		moveProperty(t.g, id, recipient, proposer)
	}
	proposer.Cash += tr.RequestedCash - tr.OfferedCash
	recipient.Cash += tr.OfferedCash - tr.RequestedCash
	offered := moveJailCards(proposer, recipient, tr.OfferedCards)
	requested := moveJailCards(recipient, proposer, tr.RequestedCards)
	tr.Status = models.TradeAccepted
	t.emit(models.TradeCompletedPayload{Offer: *tr, OfferedCardDecks: offered, RequestedCardDecks: requested})
	return nil
}

// ExecuteTrade applies offer directly, outside the negotiation flow.
func (e *Engine) ExecuteTrade(g *models.GameState, offer models.TradeOffer) (Result, error) {
	return e.run(g, func(t *tx) error {
		o := offer
		o.Status = models.TradePending
		if o.Id == "" {
			t.g.TradeSeq++
			o.Id = fmt.Sprintf("trade-%d", t.g.TradeSeq)
		}
		return t.executeTrade(&o)
	})
}

func moveProperty(g *models.GameState, spaceId int, from, to *models.Player) {
	g.PropertyById(spaceId).OwnerId = to.Id
	var kept []int
	for _, id := range from.Properties {
		if id != spaceId {
			kept = append(kept, id)
		}
	}
	from.Properties = kept
	to.Properties = append(to.Properties, spaceId)
}

// moveJailCards hands the last n jail cards held by from to to and returns
// the decks they came from.
func moveJailCards(from, to *models.Player, n int) []models.DeckKind {
	if n <= 0 {
		return nil
	}
	cut := len(from.JailCardDecks) - n
	moved := append([]models.DeckKind(nil), from.JailCardDecks[cut:]...)
	from.JailCardDecks = append([]models.DeckKind(nil), from.JailCardDecks[:cut]...)
	to.JailCardDecks = append(to.JailCardDecks, moved...)
	from.GetOutOfJailFreeCards -= n
	to.GetOutOfJailFreeCards += n
	return moved
}
