package models

import (
	"encoding/json"
	"fmt"
)

type EventType string

const (
	EventGameStarted         EventType = "GameStarted"
	EventTurnStarted         EventType = "TurnStarted"
	EventDiceRolled          EventType = "DiceRolled"
	EventPlayerMoved         EventType = "PlayerMoved"
	EventPropertyPurchased   EventType = "PropertyPurchased"
	EventRentPaid            EventType = "RentPaid"
	EventTaxPaid             EventType = "TaxPaid"
	EventCardDrawn           EventType = "CardDrawn"
	EventCashTransferred     EventType = "CashTransferred"
	EventPlayerJailed        EventType = "PlayerJailed"
	EventPlayerFreed         EventType = "PlayerFreed"
	EventBuildingPlaced      EventType = "BuildingPlaced"
	EventBuildingSold        EventType = "BuildingSold"
	EventPropertyMortgaged   EventType = "PropertyMortgaged"
	EventPropertyUnmortgaged EventType = "PropertyUnmortgaged"
	EventTradeProposed       EventType = "TradeProposed"
	EventTradeRejected       EventType = "TradeRejected"
	EventTradeCompleted      EventType = "TradeCompleted"
	EventDebtIncurred        EventType = "DebtIncurred"
	EventDebtSettled         EventType = "DebtSettled"
	EventPlayerBankrupt      EventType = "PlayerBankrupt"
	EventAuctionStarted      EventType = "AuctionStarted"
	EventAuctionBid          EventType = "AuctionBid"
	EventAuctionPassed       EventType = "AuctionPassed"
	EventAuctionEnded        EventType = "AuctionEnded"
	EventGameEnded           EventType = "GameEnded"
)

// EventPayload is implemented by every per-type payload struct.
type EventPayload interface {
	EventType() EventType
}

type GameEvent struct {
	Id        string       `json:"id"`
	GameId    string       `json:"gameId"`
	Seq       int          `json:"seq"`
	Type      EventType    `json:"type"`
	Payload   EventPayload `json:"payload"`
	Timestamp int64        `json:"timestamp"`
}

type GameStartedPayload struct {
	Players  []Player `json:"players"`
	Settings Settings `json:"settings"`
}

type TurnStartedPayload struct {
	PlayerId    string `json:"playerId"`
	PlayerIndex int    `json:"playerIndex"`
}

type DiceRolledPayload struct {
	PlayerId     string `json:"playerId"`
	Die1         int    `json:"die1"`
	Die2         int    `json:"die2"`
	IsDoubles    bool   `json:"isDoubles"`
	DoublesCount int    `json:"doublesCount"`
}

type PlayerMovedPayload struct {
	PlayerId string `json:"playerId"`
	From     int    `json:"from"`
	To       int    `json:"to"`
	PassedGo bool   `json:"passedGo"`
	Salary   int    `json:"salary"`
}

type PropertyPurchasedPayload struct {
	PlayerId string `json:"playerId"`
	SpaceId  int    `json:"spaceId"`
	Price    int    `json:"price"`
}

type RentPaidPayload struct {
	FromId  string `json:"fromId"`
	ToId    string `json:"toId"`
	SpaceId int    `json:"spaceId"`
	Amount  int    `json:"amount"`
}

type TaxPaidPayload struct {
	PlayerId string `json:"playerId"`
	SpaceId  int    `json:"spaceId"`
	Amount   int    `json:"amount"`
	ToPot    bool   `json:"toPot"`
}

type CardDrawnPayload struct {
	PlayerId string   `json:"playerId"`
	Deck     DeckKind `json:"deck"`
	CardId   string   `json:"cardId"`
	Text     string   `json:"text"`
	Kept     bool     `json:"kept"`
}

// CashTransferredPayload covers card payouts, free parking and other cash
// flows not tied to rent, tax or a purchase. Empty ids mean the bank.
type CashTransferredPayload struct {
	FromId  string `json:"fromId,omitempty"`
	ToId    string `json:"toId,omitempty"`
	Amount  int    `json:"amount"`
	Reason  string `json:"reason"`
	ToPot   bool   `json:"toPot,omitempty"`
	FromPot bool   `json:"fromPot,omitempty"`
}

type PlayerJailedPayload struct {
	PlayerId string `json:"playerId"`
	Reason   string `json:"reason"`
}

type PlayerFreedPayload struct {
	PlayerId string   `json:"playerId"`
	Method   string   `json:"method"`
	Paid     int      `json:"paid"`
	CardDeck DeckKind `json:"cardDeck,omitempty"`
}

type BuildingPlacedPayload struct {
	PlayerId string `json:"playerId"`
	SpaceId  int    `json:"spaceId"`
	Houses   int    `json:"houses"`
	Cost     int    `json:"cost"`
}

type BuildingSoldPayload struct {
	PlayerId string `json:"playerId"`
	SpaceId  int    `json:"spaceId"`
	Houses   int    `json:"houses"`
	Refund   int    `json:"refund"`
}

type PropertyMortgagedPayload struct {
	PlayerId string `json:"playerId"`
	SpaceId  int    `json:"spaceId"`
	Amount   int    `json:"amount"`
}

type PropertyUnmortgagedPayload struct {
	PlayerId string `json:"playerId"`
	SpaceId  int    `json:"spaceId"`
	Amount   int    `json:"amount"`
}

type TradeProposedPayload struct {
	Offer TradeOffer `json:"offer"`
}

type TradeRejectedPayload struct {
	TradeId string `json:"tradeId"`
	ById    string `json:"byId"`
}

type TradeCompletedPayload struct {
	Offer TradeOffer `json:"offer"`
	// Decks of the GOOJF cards that changed hands, proposer's first.
	OfferedCardDecks   []DeckKind `json:"offeredCardDecks,omitempty"`
	RequestedCardDecks []DeckKind `json:"requestedCardDecks,omitempty"`
}

type DebtIncurredPayload struct {
	Debt Debt `json:"debt"`
}

type DebtSettledPayload struct {
	Debt Debt `json:"debt"`
}

type PlayerBankruptPayload struct {
	PlayerId   string `json:"playerId"`
	CreditorId string `json:"creditorId,omitempty"`
	Cash       int    `json:"cash"`
	Properties []int  `json:"properties"`
}

type AuctionStartedPayload struct {
	SpaceId         int      `json:"spaceId"`
	EligiblePlayers []string `json:"eligiblePlayers"`
}

type AuctionBidPayload struct {
	SpaceId  int    `json:"spaceId"`
	PlayerId string `json:"playerId"`
	Amount   int    `json:"amount"`
}

type AuctionPassedPayload struct {
	SpaceId  int    `json:"spaceId"`
	PlayerId string `json:"playerId"`
}

type AuctionEndedPayload struct {
	SpaceId  int    `json:"spaceId"`
	WinnerId string `json:"winnerId,omitempty"`
	Amount   int    `json:"amount"`
}

type GameEndedPayload struct {
	WinnerId string `json:"winnerId"`
}

func (GameStartedPayload) EventType() EventType         { return EventGameStarted }
func (TurnStartedPayload) EventType() EventType         { return EventTurnStarted }
func (DiceRolledPayload) EventType() EventType          { return EventDiceRolled }
func (PlayerMovedPayload) EventType() EventType         { return EventPlayerMoved }
func (PropertyPurchasedPayload) EventType() EventType   { return EventPropertyPurchased }
func (RentPaidPayload) EventType() EventType            { return EventRentPaid }
func (TaxPaidPayload) EventType() EventType             { return EventTaxPaid }
func (CardDrawnPayload) EventType() EventType           { return EventCardDrawn }
func (CashTransferredPayload) EventType() EventType     { return EventCashTransferred }
func (PlayerJailedPayload) EventType() EventType        { return EventPlayerJailed }
func (PlayerFreedPayload) EventType() EventType         { return EventPlayerFreed }
func (BuildingPlacedPayload) EventType() EventType      { return EventBuildingPlaced }
func (BuildingSoldPayload) EventType() EventType        { return EventBuildingSold }
func (PropertyMortgagedPayload) EventType() EventType   { return EventPropertyMortgaged }
func (PropertyUnmortgagedPayload) EventType() EventType { return EventPropertyUnmortgaged }
func (TradeProposedPayload) EventType() EventType       { return EventTradeProposed }
func (TradeRejectedPayload) EventType() EventType       { return EventTradeRejected }
func (TradeCompletedPayload) EventType() EventType      { return EventTradeCompleted }
func (DebtIncurredPayload) EventType() EventType        { return EventDebtIncurred }
func (DebtSettledPayload) EventType() EventType         { return EventDebtSettled }
func (PlayerBankruptPayload) EventType() EventType      { return EventPlayerBankrupt }
func (AuctionStartedPayload) EventType() EventType      { return EventAuctionStarted }
func (AuctionBidPayload) EventType() EventType          { return EventAuctionBid }
func (AuctionPassedPayload) EventType() EventType       { return EventAuctionPassed }
func (AuctionEndedPayload) EventType() EventType        { return EventAuctionEnded }
func (GameEndedPayload) EventType() EventType           { return EventGameEnded }

// NewPayload returns an empty payload value for t, or an error for an
// unknown type. Every EventType must have a case here.
func NewPayload(t EventType) (EventPayload, error) {
	switch t {
	case EventGameStarted:
		return &GameStartedPayload{}, nil
	case EventTurnStarted:
		return &TurnStartedPayload{}, nil
	case EventDiceRolled:
		return &DiceRolledPayload{}, nil
	case EventPlayerMoved:
		return &PlayerMovedPayload{}, nil
	case EventPropertyPurchased:
		return &PropertyPurchasedPayload{}, nil
	case EventRentPaid:
		return &RentPaidPayload{}, nil
	case EventTaxPaid:
		return &TaxPaidPayload{}, nil
	case EventCardDrawn:
		return &CardDrawnPayload{}, nil
	case EventCashTransferred:
		return &CashTransferredPayload{}, nil
	case EventPlayerJailed:
		return &PlayerJailedPayload{}, nil
	case EventPlayerFreed:
		return &PlayerFreedPayload{}, nil
	case EventBuildingPlaced:
		return &BuildingPlacedPayload{}, nil
	case EventBuildingSold:
		return &BuildingSoldPayload{}, nil
	case EventPropertyMortgaged:
		return &PropertyMortgagedPayload{}, nil
	case EventPropertyUnmortgaged:
		return &PropertyUnmortgagedPayload{}, nil
	case EventTradeProposed:
		return &TradeProposedPayload{}, nil
	case EventTradeRejected:
		return &TradeRejectedPayload{}, nil
	case EventTradeCompleted:
		return &TradeCompletedPayload{}, nil
	case EventDebtIncurred:
		return &DebtIncurredPayload{}, nil
	case EventDebtSettled:
		return &DebtSettledPayload{}, nil
	case EventPlayerBankrupt:
		return &PlayerBankruptPayload{}, nil
	case EventAuctionStarted:
		return &AuctionStartedPayload{}, nil
	case EventAuctionBid:
		return &AuctionBidPayload{}, nil
	case EventAuctionPassed:
		return &AuctionPassedPayload{}, nil
	case EventAuctionEnded:
		return &AuctionEndedPayload{}, nil
	case EventGameEnded:
		return &GameEndedPayload{}, nil
	}
	return nil, fmt.Errorf("unknown event type %q", t)
}

// UnmarshalJSON decodes the payload into the struct matching Type. Decoded
// payloads are stored as values, the same way the engine emits them.
func (e *GameEvent) UnmarshalJSON(data []byte) error {
	var raw struct {
		Id        string          `json:"id"`
		GameId    string          `json:"gameId"`
		Seq       int             `json:"seq"`
		Type      EventType       `json:"type"`
		Payload   json.RawMessage `json:"payload"`
		Timestamp int64           `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ptr, err := NewPayload(raw.Type)
	if err != nil {
		return err
	}
	if len(raw.Payload) > 0 && string(raw.Payload) != "null" {
		if err := json.Unmarshal(raw.Payload, ptr); err != nil {
			return fmt.Errorf("decoding %s payload: %w", raw.Type, err)
		}
	}
	e.Id, e.GameId, e.Seq, e.Type, e.Timestamp = raw.Id, raw.GameId, raw.Seq, raw.Type, raw.Timestamp
	e.Payload = deref(ptr)
	return nil
}

func deref(p EventPayload) EventPayload {
	switch v := p.(type) {
	case *GameStartedPayload:
		return *v
	case *TurnStartedPayload:
		return *v
	case *DiceRolledPayload:
		return *v
	case *PlayerMovedPayload:
		return *v
	case *PropertyPurchasedPayload:
		return *v
	case *RentPaidPayload:
		return *v
	case *TaxPaidPayload:
		return *v
	case *CardDrawnPayload:
		return *v
	case *CashTransferredPayload:
		return *v
	case *PlayerJailedPayload:
		return *v
	case *PlayerFreedPayload:
		return *v
	case *BuildingPlacedPayload:
		return *v
	case *BuildingSoldPayload:
		return *v
	case *PropertyMortgagedPayload:
		return *v
	case *PropertyUnmortgagedPayload:
		return *v
	case *TradeProposedPayload:
		return *v
	case *TradeRejectedPayload:
		return *v
	case *TradeCompletedPayload:
		return *v
	case *DebtIncurredPayload:
		return *v
	case *DebtSettledPayload:
		return *v
	case *PlayerBankruptPayload:
		return *v
	case *AuctionStartedPayload:
		return *v
	case *AuctionBidPayload:
		return *v
	case *AuctionPassedPayload:
		return *v
	case *AuctionEndedPayload:
		return *v
	case *GameEndedPayload:
		return *v
	}
	return p
}
