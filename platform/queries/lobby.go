package queries

import (
	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/go-pg/pg/v10"
)

// Lobby is the postgres side of the lobby: users, games and who sits where.
// The HTTP controllers and the realtime servers both go through it.
type Lobby struct {
	DB *pg.DB
}

func (l Lobby) CreateUser(user *models.User) error { return CreateUser(user, l.DB) }

func (l Lobby) UserByEmail(email string) (*models.User, error) {
	return GetUserByEmail(email, l.DB)
}

func (l Lobby) Username(user_id string) (string, error) {
	user, err := GetUserData(user_id, l.DB)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}

func (l Lobby) CreateGame(game *models.Game) error { return CreateGame(game, l.DB) }

func (l Lobby) VerifyGame(id string) bool { return VerifyGame(id, l.DB) }

func (l Lobby) OpenGames() ([]models.Game, error) { return ListOpenGames(l.DB) }

func (l Lobby) FindOpenGame() (*models.Game, error) { return FindOpenGame(l.DB) }

func (l Lobby) RemoveGame(id string) error { return CleanUp(id, l.DB) }

func (l Lobby) SeatJoined(seat models.Seat) error { return CreateSeat(seat, l.DB) }

func (l Lobby) SeatLeft(game_id, user_id string) error { return DeleteSeat(user_id, game_id, l.DB) }

func (l Lobby) GameStarted(game_id string) error { return MarkStarted(game_id, l.DB) }
