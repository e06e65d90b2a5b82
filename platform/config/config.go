package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string
	SocketAddr     string
	AllowedOrigins []string
	JWTSecret      string

	DBUser     string
	DBAddr     string
	DBPassword string
	DBName     string

	// RedisURL is a host:port. Empty disables the redis mirror.
	RedisURL string

	LogLevel  string
	LogFormat string

	Game           models.Settings
	AuctionTimeout time.Duration
}

// Load reads .env (when present) and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	game := models.DefaultSettings()
	game.StartingCash = envInt("STARTING_CASH", game.StartingCash)
	game.MaxPlayers = envInt("MAX_PLAYERS", game.MaxPlayers)
	game.TurnTimeLimit = envInt("TURN_TIME_LIMIT", 0)
	game.FreeParkingJackpot = envBool("FREE_PARKING_JACKPOT", false)
	game.AuctionsEnabled = envBool("AUCTIONS_ENABLED", true)

	return Config{
		HTTPAddr:       env("HTTP_ADDR", ":4101"),
		SocketAddr:     env("SOCKET_ADDR", ":8000"),
		AllowedOrigins: strings.Split(env("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		JWTSecret:      env("JWT_SECRET", "secret"),
		DBUser:         os.Getenv("DB_USER"),
		DBAddr:         os.Getenv("DB_ADDR"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		RedisURL:       os.Getenv("REDIS_URL"),
		LogLevel:       env("LOG_LEVEL", "info"),
		LogFormat:      env("LOG_FORMAT", "text"),
		Game:           game,
		AuctionTimeout: time.Duration(envInt("AUCTION_TIMEOUT", 0)) * time.Second,
	}
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
