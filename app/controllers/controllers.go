package controllers

import (
	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/platform/config"
	"github.com/DedS3t/monopoly-server/platform/rooms"
)

// Store is the persistent lobby the handlers read and write.
type Store interface {
	CreateUser(user *models.User) error
	UserByEmail(email string) (*models.User, error)
	CreateGame(game *models.Game) error
	VerifyGame(id string) bool
	OpenGames() ([]models.Game, error)
	FindOpenGame() (*models.Game, error)
}

type Handlers struct {
	Store  Store
	Rooms  *rooms.Manager
	Config config.Config
}

func New(store Store, manager *rooms.Manager, cfg config.Config) *Handlers {
	return &Handlers{Store: store, Rooms: manager, Config: cfg}
}
