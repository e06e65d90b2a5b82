package eventlog

import (
	"fmt"

	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/board"
)

// Project rebuilds the public board view of a game purely from its event
// log, starting from nothing. A client that doubts its cached state can
// run this over the full log and compare.
func Project(events []models.GameEvent) (models.BoardView, error) {
	p := &projector{}
	for _, ev := range events {
		if err := p.apply(ev); err != nil {
			return models.BoardView{}, fmt.Errorf("event %d (%s): %w", ev.Seq, ev.Type, err)
		}
	}
	p.view.Normalize()
	return p.view, nil
}

type projector struct {
	view    models.BoardView
	started bool
}

func (p *projector) player(id string) (*models.Player, error) {
	for i := range p.view.Players {
		if p.view.Players[i].Id == id {
			return &p.view.Players[i], nil
		}
	}
	return nil, fmt.Errorf("unknown player %q", id)
}

func (p *projector) property(id int) (*models.Property, error) {
	for i := range p.view.Properties {
		if p.view.Properties[i].SpaceId == id {
			return &p.view.Properties[i], nil
		}
	}
	return nil, fmt.Errorf("unknown property %d", id)
}

// adjust adds delta to the cash of id. An empty id is the bank.
func (p *projector) adjust(id string, delta int) error {
	if id == "" {
		return nil
	}
	pl, err := p.player(id)
	if err != nil {
		return err
	}
	pl.Cash += delta
	return nil
}

func (p *projector) transferProperty(spaceId int, from, to string) error {
	prop, err := p.property(spaceId)
	if err != nil {
		return err
	}
	prop.OwnerId = to
	if from != "" {
		pl, err := p.player(from)
		if err != nil {
			return err
		}
		pl.Properties = removeInt(pl.Properties, spaceId)
	}
	if to != "" {
		pl, err := p.player(to)
		if err != nil {
			return err
		}
		pl.Properties = append(pl.Properties, spaceId)
	}
	return nil
}

func (p *projector) apply(ev models.GameEvent) error {
	if !p.started && ev.Type != models.EventGameStarted {
		return fmt.Errorf("log does not begin with %s", models.EventGameStarted)
	}
	switch e := ev.Payload.(type) {
	case models.GameStartedPayload:
		p.started = true
		p.view = models.BoardView{
			GameId: ev.GameId,
			Status: models.StatusPlaying,
			Supply: models.BuildingSupply{Houses: models.MaxHouses, Hotels: models.MaxHotels},
		}
		for _, pl := range e.Players {
			pl.Properties = nil
			pl.JailCardDecks = nil
			p.view.Players = append(p.view.Players, pl)
		}
		for _, id := range board.OwnableSpaces() {
			s := board.MustGet(id)
			p.view.Properties = append(p.view.Properties, models.Property{SpaceId: id, Type: s.Type, ColorGroup: s.ColorGroup})
		}
	case models.TurnStartedPayload:
		p.view.CurrentPlayerIndex = e.PlayerIndex
	case models.DiceRolledPayload:
		pl, err := p.player(e.PlayerId)
		if err != nil {
			return err
		}
		if pl.Jail.InJail && !e.IsDoubles {
			pl.Jail.TurnsInJail++
		}
	case models.PlayerMovedPayload:
		pl, err := p.player(e.PlayerId)
		if err != nil {
			return err
		}
		pl.Position = e.To
		pl.Cash += e.Salary
	case models.PropertyPurchasedPayload:
		if err := p.adjust(e.PlayerId, -e.Price); err != nil {
			return err
		}
		return p.transferProperty(e.SpaceId, "", e.PlayerId)
	case models.RentPaidPayload:
		if err := p.adjust(e.FromId, -e.Amount); err != nil {
			return err
		}
		return p.adjust(e.ToId, e.Amount)
	case models.TaxPaidPayload:
		if e.ToPot {
			p.view.FreeParkingPot += e.Amount
		}
		return p.adjust(e.PlayerId, -e.Amount)
	case models.CardDrawnPayload:
		if e.Kept {
			pl, err := p.player(e.PlayerId)
			if err != nil {
				return err
			}
			pl.GetOutOfJailFreeCards++
			pl.JailCardDecks = append(pl.JailCardDecks, e.Deck)
		}
	case models.CashTransferredPayload:
		if e.ToPot {
			p.view.FreeParkingPot += e.Amount
		}
		if e.FromPot {
			p.view.FreeParkingPot -= e.Amount
		}
		if err := p.adjust(e.FromId, -e.Amount); err != nil {
			return err
		}
		return p.adjust(e.ToId, e.Amount)
	case models.PlayerJailedPayload:
		pl, err := p.player(e.PlayerId)
		if err != nil {
			return err
		}
		pl.Position = board.JailPos
		pl.Jail = models.JailStatus{InJail: true}
	case models.PlayerFreedPayload:
		pl, err := p.player(e.PlayerId)
		if err != nil {
			return err
		}
		pl.Jail = models.JailStatus{}
		pl.Cash -= e.Paid
		if e.CardDeck != "" {
			pl.GetOutOfJailFreeCards--
			pl.JailCardDecks = pl.JailCardDecks[:len(pl.JailCardDecks)-1]
		}
	case models.BuildingPlacedPayload:
		prop, err := p.property(e.SpaceId)
		if err != nil {
			return err
		}
		prop.Houses = e.Houses
		if e.Houses == models.HotelLevel {
			p.view.Supply.Hotels--
			p.view.Supply.Houses += 4
		} else {
			p.view.Supply.Houses--
		}
		return p.adjust(e.PlayerId, -e.Cost)
	case models.BuildingSoldPayload:
		prop, err := p.property(e.SpaceId)
		if err != nil {
			return err
		}
		if prop.Houses == models.HotelLevel {
			p.view.Supply.Hotels++
			p.view.Supply.Houses -= 4
		} else {
			p.view.Supply.Houses++
		}
		prop.Houses = e.Houses
		return p.adjust(e.PlayerId, e.Refund)
	case models.PropertyMortgagedPayload:
		prop, err := p.property(e.SpaceId)
		if err != nil {
			return err
		}
		prop.Mortgaged = true
		return p.adjust(e.PlayerId, e.Amount)
	case models.PropertyUnmortgagedPayload:
		prop, err := p.property(e.SpaceId)
		if err != nil {
			return err
		}
		prop.Mortgaged = false
		return p.adjust(e.PlayerId, -e.Amount)
	case models.TradeCompletedPayload:
		return p.applyTrade(e)
	case models.PlayerBankruptPayload:
		return p.applyBankruptcy(e)
	case models.AuctionEndedPayload:
		if e.WinnerId == "" {
			return nil
		}
		if err := p.adjust(e.WinnerId, -e.Amount); err != nil {
			return err
		}
		return p.transferProperty(e.SpaceId, "", e.WinnerId)
	case models.GameEndedPayload:
		p.view.Status = models.StatusFinished
		p.view.WinnerId = e.WinnerId
	case models.TradeProposedPayload, models.TradeRejectedPayload,
		models.DebtIncurredPayload, models.DebtSettledPayload,
		models.AuctionStartedPayload, models.AuctionBidPayload, models.AuctionPassedPayload:
		// no effect on the board view
	default:
		return fmt.Errorf("unhandled payload %T", ev.Payload)
	}
	return nil
}

func (p *projector) applyTrade(e models.TradeCompletedPayload) error {
	o := e.Offer
	for _, id := range o.OfferedProperties {
		if err := p.transferProperty(id, o.ProposerId, o.RecipientId); err != nil {
			return err
		}
	}
	for _, id := range o.RequestedProperties {
		if err := p.transferProperty(id, o.RecipientId, o.ProposerId); err != nil {
			return err
		}
	}
	if err := p.adjust(o.ProposerId, o.RequestedCash-o.OfferedCash); err != nil {
		return err
	}
	if err := p.adjust(o.RecipientId, o.OfferedCash-o.RequestedCash); err != nil {
		return err
	}
	proposer, err := p.player(o.ProposerId)
	if err != nil {
		return err
	}
	recipient, err := p.player(o.RecipientId)
	if err != nil {
		return err
	}
	moveCards(proposer, recipient, o.OfferedCards)
	moveCards(recipient, proposer, o.RequestedCards)
	return nil
}

func (p *projector) applyBankruptcy(e models.PlayerBankruptPayload) error {
	pl, err := p.player(e.PlayerId)
	if err != nil {
		return err
	}
	var creditor *models.Player
	if e.CreditorId != "" {
		if creditor, err = p.player(e.CreditorId); err != nil {
			return err
		}
	}
	for _, id := range e.Properties {
		prop, err := p.property(id)
		if err != nil {
			return err
		}
		if prop.Houses == models.HotelLevel {
			p.view.Supply.Hotels++
		} else {
			p.view.Supply.Houses += prop.Houses
		}
		prop.Houses = 0
		prop.OwnerId = e.CreditorId
		if creditor != nil {
			creditor.Properties = append(creditor.Properties, id)
		} else {
			prop.Mortgaged = false
		}
	}
	if creditor != nil {
		creditor.Cash += e.Cash
		moveCards(pl, creditor, pl.GetOutOfJailFreeCards)
	}
	pl.Cash = 0
	pl.Properties = nil
	pl.GetOutOfJailFreeCards = 0
	pl.JailCardDecks = nil
	pl.IsBankrupt = true
	pl.IsActive = false
	return nil
}

// moveCards hands the last n held jail cards from one player to another.
func moveCards(from, to *models.Player, n int) {
	if n <= 0 {
		return
	}
	cut := len(from.JailCardDecks) - n
	to.JailCardDecks = append(to.JailCardDecks, from.JailCardDecks[cut:]...)
	from.JailCardDecks = append([]models.DeckKind(nil), from.JailCardDecks[:cut]...)
	from.GetOutOfJailFreeCards -= n
	to.GetOutOfJailFreeCards += n
}

func removeInt(list []int, v int) []int {
	out := list[:0:0]
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
