package engine

import "github.com/DedS3t/monopoly-server/app/models"

func (t *tx) startAuction(spaceId int) {
	var eligible []string
	n := len(t.g.Players)
	// Bidding order starts with the player who declined.
	for i := 0; i < n; i++ {
		pl := t.g.Players[(t.g.CurrentPlayerIndex+i)%n]
		if pl.IsActive && !pl.IsBankrupt {
			eligible = append(eligible, pl.Id)
		}
	}
	t.g.Auction = &models.AuctionInfo{PropertyId: spaceId, EligiblePlayers: eligible, PassedPlayers: []string{}}
	t.g.TurnState.Phase = models.PhaseAuction
	t.emit(models.AuctionStartedPayload{SpaceId: spaceId, EligiblePlayers: append([]string(nil), eligible...)})
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func (t *tx) auctionBidder(p *models.Player) (*models.AuctionInfo, error) {
	a := t.g.Auction
	if t.g.TurnState.Phase != models.PhaseAuction || a == nil {
		return nil, illegal("no auction in progress")
	}
	if !contains(a.EligiblePlayers, p.Id) {
		return nil, notEligible("%s is not in this auction", p.Id)
	}
	if contains(a.PassedPlayers, p.Id) {
		return nil, notEligible("%s has already passed", p.Id)
	}
	return a, nil
}

func (t *tx) placeBid(p *models.Player, amount int) error {
	a, err := t.auctionBidder(p)
	if err != nil {
		return err
	}
	if amount <= a.HighBid {
		return violation("bid must exceed $%d", a.HighBid)
	}
	if amount > p.Cash {
		return insufficient("%s cannot cover a bid of $%d", p.Id, amount)
	}
	a.HighBid = amount
	a.HighBidderId = p.Id
	t.emit(models.AuctionBidPayload{SpaceId: a.PropertyId, PlayerId: p.Id, Amount: amount})
	t.checkAuctionEnd()
	return nil
}

func (t *tx) passAuction(p *models.Player) error {
	a, err := t.auctionBidder(p)
	if err != nil {
		return err
	}
	if a.HighBidderId == p.Id {
		return violation("the high bidder cannot pass")
	}
	a.PassedPlayers = append(a.PassedPlayers, p.Id)
	t.emit(models.AuctionPassedPayload{SpaceId: a.PropertyId, PlayerId: p.Id})
	t.checkAuctionEnd()
	return nil
}

// dropFromAuction removes a player who left the game mid-auction.
func (t *tx) dropFromAuction(playerId string) {
	a := t.g.Auction
	var eligible []string
	for _, id := range a.EligiblePlayers {
		if id != playerId {
			eligible = append(eligible, id)
		}
	}
	a.EligiblePlayers = eligible
	if a.HighBidderId == playerId {
		a.HighBidderId = ""
		a.HighBid = 0
	}
	t.checkAuctionEnd()
}

// checkAuctionEnd closes the auction once every eligible player other than
// the high bidder has passed.
func (t *tx) checkAuctionEnd() {
	a := t.g.Auction
	var remaining []string
	for _, id := range a.EligiblePlayers {
		if !contains(a.PassedPlayers, id) {
			remaining = append(remaining, id)
		}
	}
	switch {
	case a.HighBidderId != "" && len(remaining) == 1 && remaining[0] == a.HighBidderId:
	case len(remaining) == 0:
	default:
		return
	}

	winner := t.g.PlayerById(a.HighBidderId)
	if winner != nil && winner.Cash >= a.HighBid {
		winner.Cash -= a.HighBid
		t.g.PropertyById(a.PropertyId).OwnerId = winner.Id
		winner.Properties = append(winner.Properties, a.PropertyId)
		t.emit(models.AuctionEndedPayload{SpaceId: a.PropertyId, WinnerId: winner.Id, Amount: a.HighBid})
	} else {
		t.emit(models.AuctionEndedPayload{SpaceId: a.PropertyId})
	}
	t.g.Auction = nil
	t.g.TurnState.Phase = models.PhasePlayerAction
}
