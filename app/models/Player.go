package models

// Seat is a lobby membership row: one user sitting in one game.
type Seat struct {
	tableName struct{} `pg:"seats"`

	User_id  string `pg:",pk"`
	Game_id  string `pg:",pk"`
	Username string
	Token    string
	Active   bool `pg:",use_zero"`
}

type JailStatus struct {
	InJail      bool `json:"inJail"`
	TurnsInJail int  `json:"turnsInJail,omitempty"`
}

// Player is the in-game record of one participant.
type Player struct {
	Id                    string     `json:"id"`
	Name                  string     `json:"name"`
	Token                 string     `json:"token"`
	Cash                  int        `json:"cash"`
	Position              int        `json:"position"`
	Properties            []int      `json:"properties"`
	Jail                  JailStatus `json:"jailStatus"`
	IsActive              bool       `json:"isActive"`
	IsBankrupt            bool       `json:"isBankrupt"`
	GetOutOfJailFreeCards int        `json:"getOutOfJailFreeCards"`
	JailCardDecks         []DeckKind `json:"jailCardDecks,omitempty"`
}

// PlayerDto is the public per-player summary sent to clients.
type PlayerDto struct {
	Id         string `json:"id"`
	Username   string `json:"username"`
	Token      string `json:"token"`
	Balance    int    `json:"balance"`
	Pos        int    `json:"pos"`
	Properties []int  `json:"properties"`
	Jail       bool   `json:"jail"`
	Bankrupt   bool   `json:"bankrupt"`
	NetWorth   int    `json:"netWorth"`
}
