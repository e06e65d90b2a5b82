package models

import "sort"

type GameStatus string

const (
	StatusWaiting  GameStatus = "waiting"
	StatusPlaying  GameStatus = "playing"
	StatusFinished GameStatus = "finished"
)

type TurnPhase string

const (
	PhaseWaitingForRoll      TurnPhase = "WaitingForRoll"
	PhaseRolling             TurnPhase = "Rolling"
	PhaseResolving           TurnPhase = "Resolving"
	PhaseAwaitingBuyDecision TurnPhase = "AwaitingBuyDecision"
	PhaseAuction             TurnPhase = "Auction"
	PhasePlayerAction        TurnPhase = "PlayerAction"
	PhaseTradeNegotiation    TurnPhase = "TradeNegotiation"
	PhaseEndTurn             TurnPhase = "EndTurn"
)

type TurnState struct {
	Phase         TurnPhase `json:"phase"`
	DoublesCount  int       `json:"doublesCount"`
	HasRolled     bool      `json:"hasRolled"`
	RolledDoubles bool      `json:"rolledDoubles"`
}

type Settings struct {
	MaxPlayers         int   `json:"maxPlayers"`
	StartingCash       int   `json:"startingCash"`
	TurnTimeLimit      int   `json:"turnTimeLimit"` // seconds, 0 disables
	FreeParkingJackpot bool  `json:"freeParkingJackpot"`
	AuctionsEnabled    bool  `json:"auctionsEnabled"`
	Seed               int64 `json:"seed"`
}

func DefaultSettings() Settings {
	return Settings{
		MaxPlayers:      8,
		StartingCash:    1500,
		AuctionsEnabled: true,
	}
}

// Property is the ownership record of one ownable space.
type Property struct {
	SpaceId    int       `json:"spaceId"`
	Type       SpaceType `json:"type"`
	ColorGroup string    `json:"colorGroup,omitempty"`
	OwnerId    string    `json:"ownerId,omitempty"`
	Houses     int       `json:"houses"` // 5 is a hotel
	Mortgaged  bool      `json:"mortgaged"`
}

const HotelLevel = 5

type BuildingSupply struct {
	Houses int `json:"houses"`
	Hotels int `json:"hotels"`
}

const (
	MaxHouses = 32
	MaxHotels = 12
)

type Deck struct {
	DrawPile []string `json:"drawPile"`
	Discard  []string `json:"discard"`
}

type Decks struct {
	Chance         Deck `json:"chance"`
	CommunityChest Deck `json:"communityChest"`
}

type DiceResult struct {
	Die1      int  `json:"die1"`
	Die2      int  `json:"die2"`
	Total     int  `json:"total"`
	IsDoubles bool `json:"isDoubles"`
}

type PendingBuyDecision struct {
	SpaceId int `json:"spaceId"`
	Cost    int `json:"cost"`
}

type AuctionInfo struct {
	PropertyId      int      `json:"propertyId"`
	HighBid         int      `json:"highBid"`
	HighBidderId    string   `json:"highBidderId,omitempty"`
	EligiblePlayers []string `json:"eligiblePlayers"`
	PassedPlayers   []string `json:"passedPlayers"`
}

type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeAccepted  TradeStatus = "accepted"
	TradeRejected  TradeStatus = "rejected"
	TradeCountered TradeStatus = "countered"
)

// TradeTerms is what a proposer puts on the table and asks for in return.
type TradeTerms struct {
	OfferedProperties   []int `json:"offeredProperties"`
	OfferedCash         int   `json:"offeredCash"`
	OfferedCards        int   `json:"offeredCards"`
	RequestedProperties []int `json:"requestedProperties"`
	RequestedCash       int   `json:"requestedCash"`
	RequestedCards      int   `json:"requestedCards"`
}

type TradeOffer struct {
	Id          string `json:"id"`
	ProposerId  string `json:"proposerId"`
	RecipientId string `json:"recipientId"`
	TradeTerms
	Status TradeStatus `json:"status"`
}

type DebtReason string

const (
	DebtRent     DebtReason = "rent"
	DebtTax      DebtReason = "tax"
	DebtCard     DebtReason = "card"
	DebtRepairs  DebtReason = "repairs"
	DebtJailFine DebtReason = "jailFine"
)

// Debt is a payment a player could not cover in cash. An empty CreditorId
// means the bank.
type Debt struct {
	DebtorId   string     `json:"debtorId"`
	CreditorId string     `json:"creditorId,omitempty"`
	Amount     int        `json:"amount"`
	Reason     DebtReason `json:"reason"`
	SpaceId    int        `json:"spaceId,omitempty"`
}

// GameState is the single source of truth for one room. It is replaced
// wholesale on every processed action.
type GameState struct {
	GameId             string         `json:"gameId"`
	Status             GameStatus     `json:"status"`
	Players            []Player       `json:"players"`
	CurrentPlayerIndex int            `json:"currentPlayerIndex"`
	Properties         []Property     `json:"properties"`
	Decks              Decks          `json:"decks"`
	TurnState          TurnState      `json:"turnState"`
	Settings           Settings       `json:"settings"`
	Supply             BuildingSupply `json:"supply"`
	FreeParkingPot     int            `json:"freeParkingPot"`
	Events             []GameEvent    `json:"events"`

	LastDiceResult     *DiceResult         `json:"lastDiceResult,omitempty"`
	PendingBuyDecision *PendingBuyDecision `json:"pendingBuyDecision,omitempty"`
	LastCardDrawn      *Card               `json:"lastCardDrawn,omitempty"`
	LastResolution     string              `json:"lastResolution,omitempty"`
	Auction            *AuctionInfo        `json:"auction,omitempty"`
	TradeOffers        []TradeOffer        `json:"tradeOffers,omitempty"`
	Debts              []Debt              `json:"debts,omitempty"`

	RNG      uint64 `json:"rng"`
	TradeSeq int    `json:"tradeSeq"`
	WinnerId string `json:"winnerId,omitempty"`
}

// CurrentPlayer returns the player whose turn it is.
func (g *GameState) CurrentPlayer() *Player {
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil
	}
	return &g.Players[g.CurrentPlayerIndex]
}

func (g *GameState) PlayerById(id string) *Player {
	for i := range g.Players {
		if g.Players[i].Id == id {
			return &g.Players[i]
		}
	}
	return nil
}

func (g *GameState) PropertyById(spaceId int) *Property {
	for i := range g.Properties {
		if g.Properties[i].SpaceId == spaceId {
			return &g.Properties[i]
		}
	}
	return nil
}

// PendingTrade returns the single open trade offer, if any.
func (g *GameState) PendingTrade() *TradeOffer {
	for i := range g.TradeOffers {
		if g.TradeOffers[i].Status == TradePending {
			return &g.TradeOffers[i]
		}
	}
	return nil
}

func (g *GameState) ActivePlayers() int {
	n := 0
	for _, p := range g.Players {
		if p.IsActive && !p.IsBankrupt {
			n++
		}
	}
	return n
}

// Clone returns a deep copy so that an action can be applied without
// touching the state it was derived from.
func (g *GameState) Clone() *GameState {
	c := *g
	c.Players = make([]Player, len(g.Players))
	for i, p := range g.Players {
		p.Properties = append([]int(nil), p.Properties...)
		p.JailCardDecks = append([]DeckKind(nil), p.JailCardDecks...)
		c.Players[i] = p
	}
	c.Properties = append([]Property(nil), g.Properties...)
	c.Decks = Decks{
		Chance:         cloneDeck(g.Decks.Chance),
		CommunityChest: cloneDeck(g.Decks.CommunityChest),
	}
	c.Events = append([]GameEvent(nil), g.Events...)
	if g.LastDiceResult != nil {
		d := *g.LastDiceResult
		c.LastDiceResult = &d
	}
	if g.PendingBuyDecision != nil {
		d := *g.PendingBuyDecision
		c.PendingBuyDecision = &d
	}
	if g.LastCardDrawn != nil {
		card := *g.LastCardDrawn
		c.LastCardDrawn = &card
	}
	if g.Auction != nil {
		a := *g.Auction
		a.EligiblePlayers = append([]string(nil), g.Auction.EligiblePlayers...)
		a.PassedPlayers = append([]string(nil), g.Auction.PassedPlayers...)
		c.Auction = &a
	}
	c.TradeOffers = nil
	for _, t := range g.TradeOffers {
		t.OfferedProperties = append([]int(nil), t.OfferedProperties...)
		t.RequestedProperties = append([]int(nil), t.RequestedProperties...)
		c.TradeOffers = append(c.TradeOffers, t)
	}
	c.Debts = append([]Debt(nil), g.Debts...)
	return &c
}

// Public is the copy sent to clients. It hides the dice seed and the card
// order, and leaves out the event history, which is sent on its own.
func (g *GameState) Public() *GameState {
	c := g.Clone()
	c.Events = nil
	c.RNG = 0
	c.Decks = Decks{}
	return c
}

func cloneDeck(d Deck) Deck {
	return Deck{
		DrawPile: append([]string(nil), d.DrawPile...),
		Discard:  append([]string(nil), d.Discard...),
	}
}

// BoardView is the public, replayable portion of a GameState.
type BoardView struct {
	GameId             string         `json:"gameId"`
	Status             GameStatus     `json:"status"`
	Players            []Player       `json:"players"`
	CurrentPlayerIndex int            `json:"currentPlayerIndex"`
	Properties         []Property     `json:"properties"`
	Supply             BuildingSupply `json:"supply"`
	FreeParkingPot     int            `json:"freeParkingPot"`
	WinnerId           string         `json:"winnerId,omitempty"`
}

// Normalize sorts and de-nils slices so two views built by different paths
// compare equal with reflect.DeepEqual.
func (v *BoardView) Normalize() {
	for i := range v.Players {
		p := &v.Players[i]
		props := append([]int{}, p.Properties...)
		sort.Ints(props)
		p.Properties = props
		if len(p.JailCardDecks) == 0 {
			p.JailCardDecks = nil
		}
	}
	props := append([]Property{}, v.Properties...)
	sort.Slice(props, func(i, j int) bool { return props[i].SpaceId < props[j].SpaceId })
	v.Properties = props
}
