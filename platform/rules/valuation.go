package rules

import (
	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/board"
)

// BuildingRefund is what the bank pays back for one house, or for a hotel
// when level is the hotel level.
func BuildingRefund(space models.Space, level int) int {
	if level == models.HotelLevel && space.HotelCost > 0 {
		return space.HotelCost / 2
	}
	return space.HouseCost / 2
}

// BuildingCost is the price of raising a street from level-1 to level.
func BuildingCost(space models.Space, level int) int {
	if level == models.HotelLevel && space.HotelCost > 0 {
		return space.HotelCost
	}
	return space.HouseCost
}

// UnmortgageCost is the mortgage value plus 10% interest rounded up.
func UnmortgageCost(mortgageValue int) int {
	return mortgageValue + (mortgageValue+9)/10
}

// LiquidationValue is the cash a player could raise by selling every
// building back to the bank and mortgaging every unmortgaged property.
// A hotel counts as five houses.
func LiquidationValue(g *models.GameState, playerId string) int {
	total := 0
	for _, p := range OwnedBy(g, playerId) {
		space := board.MustGet(p.SpaceId)
		total += p.Houses * (space.HouseCost / 2)
		if !p.Mortgaged {
			total += space.MortgageValue
		}
	}
	return total
}

// NetWorth is cash plus the printed price of unmortgaged properties plus
// the full build cost of standing buildings. Display only.
func NetWorth(g *models.GameState, playerId string) int {
	pl := g.PlayerById(playerId)
	if pl == nil {
		return 0
	}
	total := pl.Cash
	for _, p := range OwnedBy(g, playerId) {
		space := board.MustGet(p.SpaceId)
		if !p.Mortgaged {
			total += space.Cost
		}
		total += p.Houses * space.HouseCost
	}
	return total
}

// CanRaise reports whether cash plus liquidation value covers amount.
func CanRaise(g *models.GameState, playerId string, amount int) bool {
	pl := g.PlayerById(playerId)
	if pl == nil {
		return false
	}
	return pl.Cash+LiquidationValue(g, playerId) >= amount
}
