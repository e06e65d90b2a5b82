package engine

import (
	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/board"
)

const maxDoubles = 3

// jailAttempts is the number of failed doubles rolls after which a jailed
// player must pay the fine and leave.
const jailAttempts = 3

func (t *tx) roll(p *models.Player) models.DiceResult {
	d1, d2 := t.e.roller.Roll(t.g)
	d := models.DiceResult{Die1: d1, Die2: d2, Total: d1 + d2, IsDoubles: d1 == d2}
	t.g.LastDiceResult = &d
	return d
}

func (t *tx) emitRoll(p *models.Player, d models.DiceResult) {
	t.emit(models.DiceRolledPayload{
		PlayerId:     p.Id,
		Die1:         d.Die1,
		Die2:         d.Die2,
		IsDoubles:    d.IsDoubles,
		DoublesCount: t.g.TurnState.DoublesCount,
	})
}

func (t *tx) rollDice(p *models.Player) error {
	if err := t.requireTurn(p, models.PhaseWaitingForRoll); err != nil {
		return err
	}
	if p.Jail.InJail {
		return illegal("%s is in jail", p.Id)
	}
	ts := &t.g.TurnState
	ts.Phase = models.PhaseRolling
	d := t.roll(p)
	if d.IsDoubles {
		ts.DoublesCount++
	}
	t.emitRoll(p, d)
	ts.HasRolled = true

	if ts.DoublesCount >= maxDoubles {
		t.sendToJail(p, "three doubles")
		ts.Phase = models.PhasePlayerAction
		return nil
	}
	ts.RolledDoubles = d.IsDoubles
	t.moveBy(p, d.Total)
	t.resolve(p, d.Total, rentNormal)
	return nil
}

func (t *tx) rollForDoubles(p *models.Player) error {
	if err := t.requireTurn(p, models.PhaseWaitingForRoll); err != nil {
		return err
	}
	if !p.Jail.InJail {
		return illegal("%s is not in jail", p.Id)
	}
	ts := &t.g.TurnState
	ts.Phase = models.PhaseRolling
	// Jail rolls never chain into the doubles counter.
	ts.DoublesCount = 0
	ts.RolledDoubles = false
	d := t.roll(p)
	t.emitRoll(p, d)
	ts.HasRolled = true

	if d.IsDoubles {
		t.free(p, "doubles", 0, "")
	} else {
		p.Jail.TurnsInJail++
		if p.Jail.TurnsInJail < jailAttempts {
			ts.Phase = models.PhasePlayerAction
			t.g.LastResolution = describe("%s stays in jail", p.Name)
			return nil
		}
		if p.Cash >= board.JailFine {
			p.Cash -= board.JailFine
			t.free(p, "forced", board.JailFine, "")
		} else {
			t.free(p, "forced", 0, "")
			t.charge(models.Debt{DebtorId: p.Id, Amount: board.JailFine, Reason: models.DebtJailFine})
		}
	}
	t.moveBy(p, d.Total)
	t.resolve(p, d.Total, rentNormal)
	return nil
}

func (t *tx) payJailFine(p *models.Player) error {
	if err := t.requireTurn(p, models.PhaseWaitingForRoll); err != nil {
		return err
	}
	if !p.Jail.InJail {
		return illegal("%s is not in jail", p.Id)
	}
	if p.Cash < board.JailFine {
		return insufficient("jail fine is $%d, %s has $%d", board.JailFine, p.Id, p.Cash)
	}
	p.Cash -= board.JailFine
	t.free(p, "fine", board.JailFine, "")
	t.g.TurnState.DoublesCount = 0
	return nil
}

func (t *tx) useJailCard(p *models.Player) error {
	if err := t.requireTurn(p, models.PhaseWaitingForRoll); err != nil {
		return err
	}
	if !p.Jail.InJail {
		return illegal("%s is not in jail", p.Id)
	}
	if p.GetOutOfJailFreeCards == 0 {
		return violation("%s holds no Get Out of Jail Free card", p.Id)
	}
	deck := p.JailCardDecks[len(p.JailCardDecks)-1]
	p.JailCardDecks = p.JailCardDecks[:len(p.JailCardDecks)-1]
	p.GetOutOfJailFreeCards--
	t.returnJailCard(deck)
	t.free(p, "card", 0, deck)
	t.g.TurnState.DoublesCount = 0
	return nil
}

func (t *tx) free(p *models.Player, method string, paid int, deck models.DeckKind) {
	p.Jail = models.JailStatus{}
	t.emit(models.PlayerFreedPayload{PlayerId: p.Id, Method: method, Paid: paid, CardDeck: deck})
}

func (t *tx) sendToJail(p *models.Player, reason string) {
	p.Position = board.JailPos
	p.Jail = models.JailStatus{InJail: true}
	t.g.TurnState.RolledDoubles = false
	t.g.TurnState.DoublesCount = 0
	t.g.LastResolution = describe("%s went to jail (%s)", p.Name, reason)
	t.emit(models.PlayerJailedPayload{PlayerId: p.Id, Reason: reason})
}

func (t *tx) endTurn(p *models.Player) error {
	if err := t.requireAction(p); err != nil {
		return err
	}
	if len(t.g.Debts) > 0 {
		return violation("outstanding debts must be settled before the turn ends")
	}
	ts := &t.g.TurnState
	if ts.RolledDoubles && !p.Jail.InJail {
		ts.Phase = models.PhaseWaitingForRoll
		ts.RolledDoubles = false
		ts.HasRolled = false
		t.clearTransient()
		return nil
	}
	ts.Phase = models.PhaseEndTurn
	t.advanceTurn()
	return nil
}

func (t *tx) clearTransient() {
	t.g.PendingBuyDecision = nil
	t.g.LastCardDrawn = nil
	t.g.LastResolution = ""
	t.g.Auction = nil
}

// advanceTurn hands the turn to the next active player.
func (t *tx) advanceTurn() {
	n := len(t.g.Players)
	for i := 1; i <= n; i++ {
		idx := (t.g.CurrentPlayerIndex + i) % n
		p := t.g.Players[idx]
		if p.IsActive && !p.IsBankrupt {
			t.startTurn(idx)
			return
		}
	}
}

func (t *tx) startTurn(idx int) {
	t.g.CurrentPlayerIndex = idx
	t.g.TurnState = models.TurnState{Phase: models.PhaseWaitingForRoll}
	t.clearTransient()
	t.emit(models.TurnStartedPayload{PlayerId: t.g.Players[idx].Id, PlayerIndex: idx})
}

// moveBy advances p around the board, paying the Go salary once if the move
// wraps.
func (t *tx) moveBy(p *models.Player, steps int) {
	from := p.Position
	to := (from + steps) % board.Size
	passed := from+steps >= board.Size
	t.place(p, from, to, passed)
}

// moveTo advances p forward to dest. Landing on or passing Go pays.
func (t *tx) moveTo(p *models.Player, dest int) {
	from := p.Position
	t.place(p, from, dest, dest <= from)
}

func (t *tx) moveBack(p *models.Player, steps int) {
	from := p.Position
	to := ((from-steps)%board.Size + board.Size) % board.Size
	t.place(p, from, to, false)
}

func (t *tx) place(p *models.Player, from, to int, passedGo bool) {
	salary := 0
	if passedGo {
		salary = board.GoSalary
	}
	p.Position = to
	p.Cash += salary
	t.emit(models.PlayerMovedPayload{PlayerId: p.Id, From: from, To: to, PassedGo: passedGo, Salary: salary})
}

type rentMode int

const (
	rentNormal rentMode = iota
	rentDoubleRailroad
	rentTenTimesDice
)

// resolve settles the space p has just landed on and leaves the turn in the
// phase that follows.
func (t *tx) resolve(p *models.Player, diceTotal int, mode rentMode) {
	t.g.TurnState.Phase = models.PhaseResolving
	space := board.MustGet(p.Position)
	t.g.LastResolution = describe("%s landed on %s", p.Name, space.Name)
	next := models.PhasePlayerAction

	switch space.Type {
	case models.SpaceStreet, models.SpaceRailroad, models.SpaceUtility:
		prop := t.g.PropertyById(space.Id)
		switch {
		case prop.OwnerId == "":
			t.g.PendingBuyDecision = &models.PendingBuyDecision{SpaceId: space.Id, Cost: space.Cost}
			next = models.PhaseAwaitingBuyDecision
		case prop.OwnerId != p.Id && !prop.Mortgaged:
			t.chargeRent(p, prop, diceTotal, mode)
		}
	case models.SpaceTax:
		t.charge(models.Debt{DebtorId: p.Id, Amount: space.TaxAmount, Reason: models.DebtTax, SpaceId: space.Id})
	case models.SpaceChance:
		t.drawCard(p, models.DeckChance)
		return
	case models.SpaceCommunityChest:
		t.drawCard(p, models.DeckCommunityChest)
		return
	case models.SpaceGoToJail:
		t.sendToJail(p, "go to jail")
	case models.SpaceFreeParking:
		if t.g.Settings.FreeParkingJackpot && t.g.FreeParkingPot > 0 {
			pot := t.g.FreeParkingPot
			t.g.FreeParkingPot = 0
			p.Cash += pot
			t.emit(models.CashTransferredPayload{ToId: p.Id, Amount: pot, Reason: "freeParking", FromPot: true})
		}
	}
	t.g.TurnState.Phase = next
}
