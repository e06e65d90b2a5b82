package models

type ActionType string

const (
	ActionRollDice           ActionType = "RollDice"
	ActionPayJailFine        ActionType = "PayJailFine"
	ActionUseJailCard        ActionType = "UseJailCard"
	ActionRollForDoubles     ActionType = "RollForDoubles"
	ActionBuyProperty        ActionType = "BuyProperty"
	ActionDeclineProperty    ActionType = "DeclineProperty"
	ActionEndTurn            ActionType = "EndTurn"
	ActionBuildHouse         ActionType = "BuildHouse"
	ActionSellBuilding       ActionType = "SellBuilding"
	ActionMortgageProperty   ActionType = "MortgageProperty"
	ActionUnmortgageProperty ActionType = "UnmortgageProperty"
	ActionProposeTrade       ActionType = "ProposeTrade"
	ActionAcceptTrade        ActionType = "AcceptTrade"
	ActionRejectTrade        ActionType = "RejectTrade"
	ActionCounterTrade       ActionType = "CounterTrade"
	ActionPlaceBid           ActionType = "PlaceBid"
	ActionPassAuction        ActionType = "PassAuction"
	ActionDeclareBankruptcy  ActionType = "DeclareBankruptcy"
)

// GameAction is a player request. PlayerId is the actor, filled in by the
// transport from the authenticated connection; the remaining fields are
// read according to Type.
type GameAction struct {
	Type        ActionType  `json:"type"`
	PlayerId    string      `json:"playerId"`
	PropertyId  int         `json:"propertyId,omitempty"`
	Count       int         `json:"count,omitempty"`
	RecipientId string      `json:"recipientId,omitempty"`
	TradeId     string      `json:"tradeId,omitempty"`
	Offer       *TradeTerms `json:"offer,omitempty"`
	Amount      int         `json:"amount,omitempty"`
	CreditorId  string      `json:"creditorId,omitempty"`
}

// ActionResult is the reply sent back to the client that submitted an action.
type ActionResult struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
}
