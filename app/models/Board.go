package models

type SpaceType string

const (
	SpaceGo             SpaceType = "go"
	SpaceStreet         SpaceType = "street"
	SpaceRailroad       SpaceType = "railroad"
	SpaceUtility        SpaceType = "utility"
	SpaceTax            SpaceType = "tax"
	SpaceChance         SpaceType = "chance"
	SpaceCommunityChest SpaceType = "communityChest"
	SpaceJail           SpaceType = "jail"
	SpaceFreeParking    SpaceType = "freeParking"
	SpaceGoToJail       SpaceType = "goToJail"
)

// Purchasable reports whether a space of this type can be owned.
func (t SpaceType) Purchasable() bool {
	return t == SpaceStreet || t == SpaceRailroad || t == SpaceUtility
}

// Space is the static definition of one of the 40 board positions.
type Space struct {
	Id            int       `json:"id"`
	Name          string    `json:"name"`
	Type          SpaceType `json:"type"`
	ColorGroup    string    `json:"group,omitempty"`
	Cost          int       `json:"cost,omitempty"`
	RentTiers     []int     `json:"rent,omitempty"` // base, 1-4 houses, hotel
	MortgageValue int       `json:"mortgage,omitempty"`
	HouseCost     int       `json:"housecost,omitempty"`
	HotelCost     int       `json:"hotelcost,omitempty"`
	TaxAmount     int       `json:"tax,omitempty"`
}

type DeckKind string

const (
	DeckChance         DeckKind = "chance"
	DeckCommunityChest DeckKind = "communityChest"
)

type EffectKind string

const (
	EffectCash                   EffectKind = "cash"
	EffectMove                   EffectKind = "move"
	EffectMoveBack               EffectKind = "moveBack"
	EffectJail                   EffectKind = "jail"
	EffectCollectFromAll         EffectKind = "collectFromAll"
	EffectPayEachPlayer          EffectKind = "payEachPlayer"
	EffectRepairs                EffectKind = "repairs"
	EffectAdvanceNearestRailroad EffectKind = "advanceNearestRailroad"
	EffectAdvanceNearestUtility  EffectKind = "advanceNearestUtility"
	EffectGetOutOfJailFree       EffectKind = "goojf"
)

// CardEffect is the tagged effect of a card. Only the fields relevant to
// Kind are set.
type CardEffect struct {
	Kind        EffectKind `json:"kind"`
	Amount      int        `json:"amount,omitempty"` // cash (signed), collectFromAll, payEachPlayer
	Destination int        `json:"destination,omitempty"`
	Spaces      int        `json:"spaces,omitempty"`
	PerHouse    int        `json:"perHouse,omitempty"`
	PerHotel    int        `json:"perHotel,omitempty"`
}

type Card struct {
	Id     string     `json:"id"`
	Deck   DeckKind   `json:"deck"`
	Text   string     `json:"text"`
	Effect CardEffect `json:"effect"`
}
