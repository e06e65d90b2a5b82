package config

import (
	"os"
	"testing"
	"time"
)

func setenv(t *testing.T, key, value string) {
	old, had := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "STARTING_CASH", "AUCTIONS_ENABLED", "TURN_TIME_LIMIT"} {
		setenv(t, k, "")
	}
	c := Load()
	if c.HTTPAddr != ":4101" || c.SocketAddr != ":8000" {
		t.Fatalf("addrs = %q %q", c.HTTPAddr, c.SocketAddr)
	}
	if c.Game.StartingCash != 1500 || !c.Game.AuctionsEnabled || c.Game.TurnTimeLimit != 0 {
		t.Fatalf("game = %+v", c.Game)
	}
}

func TestLoadOverrides(t *testing.T) {
	setenv(t, "STARTING_CASH", "2000")
	setenv(t, "AUCTIONS_ENABLED", "false")
	setenv(t, "FREE_PARKING_JACKPOT", "true")
	setenv(t, "AUCTION_TIMEOUT", "15")
	setenv(t, "ALLOWED_ORIGINS", "http://a,http://b")
	c := Load()
	if c.Game.StartingCash != 2000 || c.Game.AuctionsEnabled || !c.Game.FreeParkingJackpot {
		t.Fatalf("game = %+v", c.Game)
	}
	if c.AuctionTimeout != 15*time.Second {
		t.Fatalf("auction timeout = %s", c.AuctionTimeout)
	}
	if len(c.AllowedOrigins) != 2 || c.AllowedOrigins[1] != "http://b" {
		t.Fatalf("origins = %v", c.AllowedOrigins)
	}
}
