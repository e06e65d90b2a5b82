package models

import "time"

// Game is the lobby row for a room.
type Game struct {
	tableName struct{} `pg:"games"`

	Id         string `pg:",pk"`
	Name       string
	Status     string
	Type       string
	MaxPlayers int
	CreatedAt  time.Time `pg:"default:now()"`
}

const (
	LobbyOpen       = "open"
	LobbyInProgress = "in progress"
)

type GameCreateDto struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	MaxPlayers int    `json:"maxPlayers"`
}

type VerifyGameDto struct {
	Code    string `query:"code"`
	User_id string `query:"user_id"`
}
