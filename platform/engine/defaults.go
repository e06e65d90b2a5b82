package engine

import (
	"sort"

	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/board"
	"github.com/DedS3t/monopoly-server/platform/rules"
)

// DefaultAction is the action a timer submits when the player the game is
// waiting on does nothing. Debts are dealt with first: the debtor sells or
// mortgages one asset at a time, or goes bankrupt when nothing can cover
// the debt.
func DefaultAction(g *models.GameState) (models.GameAction, bool) {
	if g == nil || g.Status != models.StatusPlaying {
		return models.GameAction{}, false
	}
	if len(g.Debts) > 0 {
		return debtAction(g, g.Debts[0])
	}
	cur := g.CurrentPlayer()
	if cur == nil {
		return models.GameAction{}, false
	}
	switch g.TurnState.Phase {
	case models.PhaseWaitingForRoll:
		if cur.Jail.InJail {
			return models.GameAction{Type: models.ActionRollForDoubles, PlayerId: cur.Id}, true
		}
		return models.GameAction{Type: models.ActionRollDice, PlayerId: cur.Id}, true
	case models.PhaseAwaitingBuyDecision:
		if g.PendingBuyDecision == nil {
			return models.GameAction{}, false
		}
		return models.GameAction{Type: models.ActionDeclineProperty, PlayerId: cur.Id, PropertyId: g.PendingBuyDecision.SpaceId}, true
	case models.PhaseAuction:
		a := g.Auction
		if a == nil {
			return models.GameAction{}, false
		}
		for _, id := range a.EligiblePlayers {
			if id != a.HighBidderId && !contains(a.PassedPlayers, id) {
				return models.GameAction{Type: models.ActionPassAuction, PlayerId: id}, true
			}
		}
	case models.PhaseTradeNegotiation:
		if tr := g.PendingTrade(); tr != nil {
			return models.GameAction{Type: models.ActionRejectTrade, PlayerId: tr.RecipientId, TradeId: tr.Id}, true
		}
	case models.PhasePlayerAction:
		return models.GameAction{Type: models.ActionEndTurn, PlayerId: cur.Id}, true
	}
	return models.GameAction{}, false
}

func debtAction(g *models.GameState, d models.Debt) (models.GameAction, bool) {
	if rules.CanRaise(g, d.DebtorId, TotalDebt(g, d.DebtorId)) {
		if a, ok := raiseMove(g, d.DebtorId); ok {
			return a, true
		}
	}
	return models.GameAction{Type: models.ActionDeclareBankruptcy, PlayerId: d.DebtorId, CreditorId: d.CreditorId}, true
}

// raiseMove finds one sale or mortgage playerId is allowed to make right
// now, lowest space first. Buildings go before mortgages.
func raiseMove(g *models.GameState, playerId string) (models.GameAction, bool) {
	owned := rules.OwnedBy(g, playerId)
	sort.Slice(owned, func(i, j int) bool { return owned[i].SpaceId < owned[j].SpaceId })
	for _, p := range owned {
		if p.Houses == 0 {
			continue
		}
		if p.Houses == models.HotelLevel && g.Supply.Houses < 4 {
			continue
		}
		highest := true
		for _, sib := range rules.GroupProperties(g, board.MustGet(p.SpaceId).ColorGroup) {
			if sib.Houses > p.Houses {
				highest = false
			}
		}
		if highest {
			return models.GameAction{Type: models.ActionSellBuilding, PlayerId: playerId, PropertyId: p.SpaceId, Count: 1}, true
		}
	}
	for _, p := range owned {
		if !p.Mortgaged && !rules.GroupHasBuildings(g, p.SpaceId) {
			return models.GameAction{Type: models.ActionMortgageProperty, PlayerId: playerId, PropertyId: p.SpaceId}, true
		}
	}
	return models.GameAction{}, false
}
