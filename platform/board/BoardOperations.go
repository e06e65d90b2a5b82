package board

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DedS3t/monopoly-server/app/models"
)

const (
	Size        = 40
	GoPosition  = 0
	JailPos     = 10
	FreeParkPos = 20
	GoSalary    = 200
	JailFine    = 50
)

//go:embed spaces.json
var spacesJSON []byte

//go:embed cards.json
var cardsJSON []byte

var (
	spaces []models.Space
	cards  map[string]models.Card
	decks  map[models.DeckKind][]string
	groups map[string][]int
)

func init() {
	var err error
	if spaces, err = LoadSpaces(spacesJSON); err != nil {
		panic(err)
	}
	var list []models.Card
	if list, err = LoadCards(cardsJSON); err != nil {
		panic(err)
	}
	cards = make(map[string]models.Card, len(list))
	decks = make(map[models.DeckKind][]string)
	for _, c := range list {
		cards[c.Id] = c
		decks[c.Deck] = append(decks[c.Deck], c.Id)
	}
	groups = make(map[string][]int)
	for _, s := range spaces {
		if s.Type == models.SpaceStreet {
			groups[s.ColorGroup] = append(groups[s.ColorGroup], s.Id)
		}
	}
}

// LoadSpaces decodes and validates a board definition.
func LoadSpaces(data []byte) ([]models.Space, error) {
	var list []models.Space
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decoding board: %w", err)
	}
	if len(list) != Size {
		return nil, fmt.Errorf("board has %d spaces, want %d", len(list), Size)
	}
	for i, s := range list {
		if s.Id != i {
			return nil, fmt.Errorf("space %q at index %d has id %d", s.Name, i, s.Id)
		}
		if s.Type == models.SpaceStreet && len(s.RentTiers) != 6 {
			return nil, fmt.Errorf("street %q has %d rent tiers, want 6", s.Name, len(s.RentTiers))
		}
	}
	return list, nil
}

func LoadCards(data []byte) ([]models.Card, error) {
	var list []models.Card
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decoding cards: %w", err)
	}
	return list, nil
}

func Spaces() []models.Space {
	return spaces
}

func GetByPos(pos int) (models.Space, error) {
	if pos < 0 || pos >= len(spaces) {
		return models.Space{}, errors.New("not found")
	}
	return spaces[pos], nil
}

// MustGet is GetByPos for positions already known to be on the board.
func MustGet(pos int) models.Space {
	return spaces[pos]
}

func GetCard(id string) (models.Card, error) {
	c, ok := cards[id]
	if !ok {
		return models.Card{}, errors.New("not found")
	}
	return c, nil
}

// DeckCards returns the card ids of a deck in printed order.
func DeckCards(kind models.DeckKind) []string {
	return append([]string(nil), decks[kind]...)
}

// GroupMembers returns the street ids sharing a colour group.
func GroupMembers(group string) []int {
	return groups[group]
}

func Groups() map[string][]int {
	return groups
}

// OwnableSpaces returns the ids of every street, railroad and utility.
func OwnableSpaces() []int {
	var ids []int
	for _, s := range spaces {
		if s.Type.Purchasable() {
			ids = append(ids, s.Id)
		}
	}
	return ids
}

// NearestOfType returns the first space of type t strictly ahead of pos,
// wrapping past Go.
func NearestOfType(pos int, t models.SpaceType) int {
	for i := 1; i <= Size; i++ {
		p := (pos + i) % Size
		if spaces[p].Type == t {
			return p
		}
	}
	return pos
}

func CountOfType(t models.SpaceType) int {
	n := 0
	for _, s := range spaces {
		if s.Type == t {
			n++
		}
	}
	return n
}
