package queries

import (
	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/go-pg/pg/v10"
)

func VerifyGame(id string, db *pg.DB) bool {
	game := &models.Game{Id: id}
	err := db.Model(game).WherePK().Select()
	return err == nil
}

func CreateGame(game *models.Game, db *pg.DB) error {
	_, err := db.Model(game).Insert()
	return err
}

func ListOpenGames(db *pg.DB) ([]models.Game, error) {
	var games []models.Game
	err := db.Model(&games).Where("status = ?", models.LobbyOpen).Order("created_at ASC").Select()
	return games, err
}

// FindOpenGame returns the oldest open game with a free seat, or nil.
func FindOpenGame(db *pg.DB) (*models.Game, error) {
	games, err := ListOpenGames(db)
	if err != nil || len(games) == 0 {
		return nil, err
	}
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.Id
	}
	var seats []models.Seat
	if err := db.Model(&seats).Where("game_id IN (?)", pg.In(ids)).Select(); err != nil {
		return nil, err
	}
	return FirstWithFreeSeat(games, seats), nil
}

func Seats(game_id string, db *pg.DB) ([]models.Seat, error) {
	var seats []models.Seat
	err := db.Model(&seats).Where("game_id = ?", game_id).Select()
	return seats, err
}

// CreateSeat records a user joining a game. Joining again refreshes the row.
func CreateSeat(seat models.Seat, db *pg.DB) error {
	_, err := db.Model(&seat).
		OnConflict("(user_id, game_id) DO UPDATE").
		Set("username = EXCLUDED.username, token = EXCLUDED.token, active = EXCLUDED.active").
		Insert()
	return err
}

func DeleteSeat(user_id string, game_id string, db *pg.DB) error {
	seat := new(models.Seat)
	_, err := db.Model(seat).Where("user_id = ? AND game_id = ?", user_id, game_id).Delete()
	if err != nil {
		return err
	}
	return CheckDB(game_id, db)
}

// CheckDB deletes a game nobody is seated in.
func CheckDB(game_id string, db *pg.DB) error {
	n, err := db.Model((*models.Seat)(nil)).Where("game_id = ?", game_id).Count()
	if err != nil || n > 0 {
		return err
	}
	_, err = db.Model((*models.Game)(nil)).Where("id = ?", game_id).Delete()
	return err
}

func MarkStarted(game_id string, db *pg.DB) error {
	_, err := db.Model((*models.Game)(nil)).
		Set("status = ?", models.LobbyInProgress).
		Where("id = ?", game_id).
		Update()
	return err
}

func CleanUp(game_id string, db *pg.DB) error {
	if _, err := db.Model((*models.Seat)(nil)).Where("game_id = ?", game_id).Delete(); err != nil {
		return err
	}
	_, err := db.Model((*models.Game)(nil)).Where("id = ?", game_id).Delete()
	return err
}

// PruneGames drops every game, and its seats, whose id is not in keep.
// Rooms live in memory, so rows left by a previous process point at
// nothing unless the room was restored.
func PruneGames(keep []string, db *pg.DB) error {
	seats := db.Model((*models.Seat)(nil))
	games := db.Model((*models.Game)(nil))
	if len(keep) > 0 {
		seats.Where("game_id NOT IN (?)", pg.In(keep))
		games.Where("id NOT IN (?)", pg.In(keep))
	} else {
		seats.Where("TRUE")
		games.Where("TRUE")
	}
	if _, err := seats.Delete(); err != nil {
		return err
	}
	_, err := games.Delete()
	return err
}
