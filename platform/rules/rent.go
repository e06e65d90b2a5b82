package rules

import (
	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/board"
)

const (
	railroadBaseRent      = 25
	utilitySingleFactor   = 4
	utilityMonopolyFactor = 10
)

// RentOwed computes the rent due for landing on p. owned is every property
// record held by p's owner (p included). diceTotal is only read for
// utilities.
func RentOwed(p models.Property, owned []models.Property, diceTotal int) int {
	if p.Mortgaged || p.OwnerId == "" {
		return 0
	}
	space := board.MustGet(p.SpaceId)
	switch space.Type {
	case models.SpaceStreet:
		if p.Houses > 0 {
			return space.RentTiers[p.Houses]
		}
		if holdsGroup(space.ColorGroup, owned) {
			return 2 * space.RentTiers[0]
		}
		return space.RentTiers[0]
	case models.SpaceRailroad:
		n := countType(models.SpaceRailroad, owned)
		if n == 0 {
			return 0
		}
		return railroadBaseRent << uint(n-1)
	case models.SpaceUtility:
		if countType(models.SpaceUtility, owned) >= 2 {
			return utilityMonopolyFactor * diceTotal
		}
		return utilitySingleFactor * diceTotal
	}
	return 0
}

// OwnedBy returns the property records held by ownerId.
func OwnedBy(g *models.GameState, ownerId string) []models.Property {
	var out []models.Property
	for _, p := range g.Properties {
		if p.OwnerId == ownerId && ownerId != "" {
			out = append(out, p)
		}
	}
	return out
}

// OwnsFullGroup reports whether ownerId holds every street of group.
func OwnsFullGroup(g *models.GameState, ownerId, group string) bool {
	return ownerId != "" && holdsGroup(group, OwnedBy(g, ownerId))
}

// GroupProperties returns the ownership records of every street in group.
func GroupProperties(g *models.GameState, group string) []*models.Property {
	var out []*models.Property
	for _, id := range board.GroupMembers(group) {
		if p := g.PropertyById(id); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// GroupHasBuildings reports whether any street in the group of spaceId has
// a house or hotel. Railroads and utilities never do.
func GroupHasBuildings(g *models.GameState, spaceId int) bool {
	space := board.MustGet(spaceId)
	if space.Type != models.SpaceStreet {
		return false
	}
	for _, p := range GroupProperties(g, space.ColorGroup) {
		if p.Houses > 0 {
			return true
		}
	}
	return false
}

func holdsGroup(group string, owned []models.Property) bool {
	members := board.GroupMembers(group)
	if len(members) == 0 {
		return false
	}
	for _, id := range members {
		found := false
		for _, p := range owned {
			if p.SpaceId == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func countType(t models.SpaceType, owned []models.Property) int {
	n := 0
	for _, p := range owned {
		if board.MustGet(p.SpaceId).Type == t {
			n++
		}
	}
	return n
}
