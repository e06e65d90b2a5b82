package controllers

import (
	"strconv"

	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

func (h *Handlers) CreateGame(c *fiber.Ctx) error {
	gameCreateDto := new(models.GameCreateDto)
	if err := c.BodyParser(gameCreateDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	settings := h.Config.Game
	if n := gameCreateDto.MaxPlayers; n >= 2 && n <= models.DefaultSettings().MaxPlayers {
		settings.MaxPlayers = n
	}
	room := h.Rooms.Create(settings)

	game := &models.Game{
		Id:         room.Id,
		Name:       gameCreateDto.Name,
		Status:     models.LobbyOpen,
		Type:       gameCreateDto.Type,
		MaxPlayers: settings.MaxPlayers,
	}
	if err := h.Store.CreateGame(game); err != nil {
		log.WithField("room", room.Id).WithError(err).Error("saving game failed")
		h.Rooms.Destroy(room.Id)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{"id": game.Id})
}

func (h *Handlers) GetAllAvailGames(c *fiber.Ctx) error {
	games, err := h.Store.OpenGames()
	if err != nil {
		log.WithError(err).Error("listing games failed")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if games == nil {
		games = []models.Game{}
	}
	return c.JSON(games)
}

func (h *Handlers) FindAvailGame(c *fiber.Ctx) error {
	game, err := h.Store.FindOpenGame()
	if err != nil {
		log.WithError(err).Error("finding a game failed")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if game == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"id": ""})
	}
	return c.JSON(fiber.Map{"id": game.Id})
}

func (h *Handlers) VerifyGame(c *fiber.Ctx) error {
	verifyGameDto := new(models.VerifyGameDto)
	if err := c.QueryParser(verifyGameDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	_, live := h.Rooms.Get(verifyGameDto.Code)
	return c.JSON(fiber.Map{"status": live && h.Store.VerifyGame(verifyGameDto.Code)})
}

// GetState returns the lobby roster and, once the game runs, its public
// state.
func (h *Handlers) GetState(c *fiber.Ctx) error {
	room, ok := h.Rooms.Get(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	var state *models.GameState
	if g := room.Snapshot(); g != nil {
		state = g.Public()
	}
	return c.JSON(fiber.Map{"members": room.Members(), "state": state})
}

// GetEvents returns the events after ?since=<timestamp>, all of them when
// since is absent.
func (h *Handlers) GetEvents(c *fiber.Ctx) error {
	room, ok := h.Rooms.Get(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	var since int64
	if s := c.Query("since"); s != "" {
		var err error
		if since, err = strconv.ParseInt(s, 10, 64); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
	}
	events := room.EventsSince(since)
	if events == nil {
		events = []models.GameEvent{}
	}
	return c.JSON(events)
}
