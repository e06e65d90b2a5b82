package routes

import (
	"github.com/DedS3t/monopoly-server/app/controllers"
	"github.com/gofiber/fiber/v2"
)

func GameRoutes(a *fiber.App, h *controllers.Handlers) {
	route := a.Group("/game")
	route.Post("/create", h.CreateGame)
	route.Get("/verify", h.VerifyGame)
	route.Get("/all", h.GetAllAvailGames)
	route.Get("/find", h.FindAvailGame)
	route.Get("/:id/state", h.GetState)
	route.Get("/:id/events", h.GetEvents)
}
