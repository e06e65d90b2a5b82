package queries

import "github.com/DedS3t/monopoly-server/app/models"

// CountSeats returns the number of seats per game id.
func CountSeats(seats []models.Seat) map[string]int {
	counts := make(map[string]int)
	for _, s := range seats {
		counts[s.Game_id]++
	}
	return counts
}

func HasFreeSeat(game models.Game, taken int) bool {
	max := game.MaxPlayers
	if max <= 0 {
		max = models.DefaultSettings().MaxPlayers
	}
	return game.Status == models.LobbyOpen && taken < max
}

// FirstWithFreeSeat picks the first game, in the given order, that still
// has room.
func FirstWithFreeSeat(games []models.Game, seats []models.Seat) *models.Game {
	counts := CountSeats(seats)
	for i := range games {
		if HasFreeSeat(games[i], counts[games[i].Id]) {
			return &games[i]
		}
	}
	return nil
}
