package engine

import (
	"sort"

	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/board"
	"github.com/DedS3t/monopoly-server/platform/rules"
)

func (t *tx) chargeRent(p *models.Player, prop *models.Property, diceTotal int, mode rentMode) {
	if mode == rentTenTimesDice {
		d := t.roll(p)
		t.emitRoll(p, d)
		diceTotal = d.Total
	}
	owned := rules.OwnedBy(t.g, prop.OwnerId)
	rent := rules.RentOwed(*prop, owned, diceTotal)
	switch mode {
	case rentDoubleRailroad:
		rent *= 2
	case rentTenTimesDice:
		rent = 10 * diceTotal
	}
	t.charge(models.Debt{DebtorId: p.Id, CreditorId: prop.OwnerId, Amount: rent, Reason: models.DebtRent, SpaceId: prop.SpaceId})
}

// charge collects d immediately if the debtor has the cash and owes
// nothing older, and records it as an outstanding debt otherwise.
func (t *tx) charge(d models.Debt) {
	if d.Amount <= 0 {
		return
	}
	debtor := t.g.PlayerById(d.DebtorId)
	if debtor.Cash >= d.Amount && t.owes(d.DebtorId) == 0 {
		t.pay(d)
		return
	}
	t.g.Debts = append(t.g.Debts, d)
	t.emit(models.DebtIncurredPayload{Debt: d})
}

func (t *tx) toPot(d models.Debt) bool {
	if d.CreditorId != "" || !t.g.Settings.FreeParkingJackpot {
		return false
	}
	return d.Reason == models.DebtTax || d.Reason == models.DebtCard || d.Reason == models.DebtRepairs
}

// pay moves the cash for d and emits the matching event. The caller has
// checked the debtor can afford it.
func (t *tx) pay(d models.Debt) {
	debtor := t.g.PlayerById(d.DebtorId)
	debtor.Cash -= d.Amount
	if d.CreditorId != "" {
		t.g.PlayerById(d.CreditorId).Cash += d.Amount
	}
	pot := t.toPot(d)
	if pot {
		t.g.FreeParkingPot += d.Amount
	}
	switch d.Reason {
	case models.DebtRent:
		t.emit(models.RentPaidPayload{FromId: d.DebtorId, ToId: d.CreditorId, SpaceId: d.SpaceId, Amount: d.Amount})
	case models.DebtTax:
		t.emit(models.TaxPaidPayload{PlayerId: d.DebtorId, SpaceId: d.SpaceId, Amount: d.Amount, ToPot: pot})
	default:
		t.emit(models.CashTransferredPayload{FromId: d.DebtorId, ToId: d.CreditorId, Amount: d.Amount, Reason: string(d.Reason), ToPot: pot})
	}
}

// settleDebts pays each debtor's debts in the order they arose, stopping
// at the first one the debtor cannot cover.
func (t *tx) settleDebts() {
	if len(t.g.Debts) == 0 {
		return
	}
	var open []models.Debt
	blocked := make(map[string]bool)
	for _, d := range t.g.Debts {
		debtor := t.g.PlayerById(d.DebtorId)
		if debtor == nil || debtor.IsBankrupt {
			continue
		}
		if !blocked[d.DebtorId] && debtor.Cash >= d.Amount {
			t.pay(d)
			t.emit(models.DebtSettledPayload{Debt: d})
			continue
		}
		blocked[d.DebtorId] = true
		open = append(open, d)
	}
	t.g.Debts = open
}

// owes is the total outstanding debt of playerId.
func (t *tx) owes(playerId string) int {
	return TotalDebt(t.g, playerId)
}

func TotalDebt(g *models.GameState, playerId string) int {
	total := 0
	for _, d := range g.Debts {
		if d.DebtorId == playerId {
			total += d.Amount
		}
	}
	return total
}

func (t *tx) declareBankruptcy(p *models.Player, creditorId string) error {
	owed := t.owes(p.Id)
	if owed == 0 {
		return illegal("%s has no outstanding debt", p.Id)
	}
	matched := false
	for _, d := range t.g.Debts {
		if d.DebtorId == p.Id && d.CreditorId == creditorId {
			matched = true
			break
		}
	}
	if !matched {
		return invalidTarget("%s owes nothing to %q", p.Id, creditorId)
	}
	// Assets that cannot be sold or mortgaged right now, like a hotel while
	// the bank is short of houses, do not keep a player in the game.
	if _, movable := raiseMove(t.g, p.Id); movable && rules.CanRaise(t.g, p.Id, owed) {
		return violation("%s can still raise $%d by selling or mortgaging", p.Id, owed)
	}
	t.bankrupt(p, creditorId)
	return nil
}

// Bankrupt removes playerId from the game, handing everything to
// creditorId, or to the bank when creditorId is empty.
func (e *Engine) Bankrupt(g *models.GameState, playerId, creditorId string) (Result, error) {
	return e.run(g, func(t *tx) error {
		p := t.g.PlayerById(playerId)
		if p == nil || p.IsBankrupt {
			return notEligible("player %q cannot go bankrupt", playerId)
		}
		if creditorId != "" {
			c := t.g.PlayerById(creditorId)
			if c == nil || c.IsBankrupt || c.Id == p.Id {
				return invalidTarget("invalid creditor %q", creditorId)
			}
		}
		t.bankrupt(p, creditorId)
		return nil
	})
}

// Forfeit takes playerId out of a running game. Everything goes to the
// creditor of their oldest open debt, or to the bank when they owe no
// player.
func (e *Engine) Forfeit(g *models.GameState, playerId string) (Result, error) {
	creditorId := ""
	if g != nil {
		for _, d := range g.Debts {
			if d.DebtorId == playerId {
				creditorId = d.CreditorId
				break
			}
		}
	}
	return e.Bankrupt(g, playerId, creditorId)
}

func (t *tx) bankrupt(p *models.Player, creditorId string) {
	var creditor *models.Player
	if creditorId != "" {
		creditor = t.g.PlayerById(creditorId)
	}
	wasCurrent := t.isCurrent(p)

	cash := p.Cash
	props := append([]int(nil), p.Properties...)
	sort.Ints(props)
	for _, id := range props {
		prop := t.g.PropertyById(id)
		if prop.Houses > 0 {
			space := board.MustGet(id)
			if prop.Houses == models.HotelLevel {
				t.g.Supply.Hotels++
			} else {
				t.g.Supply.Houses += prop.Houses
			}
			cash += prop.Houses * (space.HouseCost / 2)
			prop.Houses = 0
		}
		prop.OwnerId = creditorId
		if creditor != nil {
			creditor.Properties = append(creditor.Properties, id)
		} else {
			prop.Mortgaged = false
		}
	}
	transferred := 0
	if creditor != nil {
		transferred = cash
		creditor.Cash += cash
		n := p.GetOutOfJailFreeCards
		creditor.JailCardDecks = append(creditor.JailCardDecks, p.JailCardDecks...)
		creditor.GetOutOfJailFreeCards += n
	} else {
		for _, deck := range p.JailCardDecks {
			t.returnJailCard(deck)
		}
	}
	p.Cash = 0
	p.Properties = nil
	p.GetOutOfJailFreeCards = 0
	p.JailCardDecks = nil
	p.IsBankrupt = true
	p.IsActive = false

	var debts []models.Debt
	for _, d := range t.g.Debts {
		if d.DebtorId == p.Id {
			continue
		}
		if d.CreditorId == p.Id {
			d.CreditorId = ""
		}
		debts = append(debts, d)
	}
	t.g.Debts = debts

	t.emit(models.PlayerBankruptPayload{PlayerId: p.Id, CreditorId: creditorId, Cash: transferred, Properties: props})

	if tr := t.g.PendingTrade(); tr != nil && (tr.ProposerId == p.Id || tr.RecipientId == p.Id) {
		tr.Status = models.TradeRejected
		t.emit(models.TradeRejectedPayload{TradeId: tr.Id, ById: p.Id})
		if t.g.TurnState.Phase == models.PhaseTradeNegotiation {
			t.g.TurnState.Phase = models.PhasePlayerAction
		}
	}
	if t.g.Auction != nil && !wasCurrent {
		t.dropFromAuction(p.Id)
	}

	if t.g.ActivePlayers() <= 1 {
		t.finish()
		return
	}
	if wasCurrent {
		t.g.TurnState.Phase = models.PhaseEndTurn
		t.advanceTurn()
	}
}

func (t *tx) finish() {
	for _, pl := range t.g.Players {
		if pl.IsActive && !pl.IsBankrupt {
			t.g.WinnerId = pl.Id
		}
	}
	t.g.Status = models.StatusFinished
	t.g.Auction = nil
	t.g.PendingBuyDecision = nil
	t.emit(models.GameEndedPayload{WinnerId: t.g.WinnerId})
}
