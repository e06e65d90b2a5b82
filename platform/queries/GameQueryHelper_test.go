package queries

import (
	"testing"

	"github.com/DedS3t/monopoly-server/app/models"
)

func TestFirstWithFreeSeat(t *testing.T) {
	games := []models.Game{
		{Id: "full", Status: models.LobbyOpen, MaxPlayers: 2},
		{Id: "running", Status: models.LobbyInProgress, MaxPlayers: 4},
		{Id: "open", Status: models.LobbyOpen, MaxPlayers: 3},
		{Id: "later", Status: models.LobbyOpen},
	}
	seats := []models.Seat{
		{Game_id: "full", User_id: "a"},
		{Game_id: "full", User_id: "b"},
		{Game_id: "open", User_id: "c"},
	}
	got := FirstWithFreeSeat(games, seats)
	if got == nil || got.Id != "open" {
		t.Fatalf("got %+v, want open", got)
	}
	if got := FirstWithFreeSeat(games[:2], seats); got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}

func TestHasFreeSeat(t *testing.T) {
	cases := []struct {
		game  models.Game
		taken int
		want  bool
	}{
		{models.Game{Status: models.LobbyOpen, MaxPlayers: 4}, 3, true},
		{models.Game{Status: models.LobbyOpen, MaxPlayers: 4}, 4, false},
		{models.Game{Status: models.LobbyOpen}, 7, true},
		{models.Game{Status: models.LobbyOpen}, 8, false},
		{models.Game{Status: models.LobbyInProgress, MaxPlayers: 4}, 0, false},
	}
	for _, c := range cases {
		if got := HasFreeSeat(c.game, c.taken); got != c.want {
			t.Fatalf("HasFreeSeat(%+v, %d) = %v, want %v", c.game, c.taken, got, c.want)
		}
	}
}
