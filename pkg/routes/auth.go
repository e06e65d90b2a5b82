package routes

import (
	"github.com/DedS3t/monopoly-server/app/controllers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(a *fiber.App, h *controllers.Handlers) {
	route := a.Group("/user")

	route.Post("/register", h.CreateUser)
	route.Post("/login", h.Login)
}
