package routes

import (
	"github.com/DedS3t/monopoly-server/app/controllers"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
)

// PrivateRoutes registers the routes that need a valid access token.
func PrivateRoutes(a *fiber.App, secret string) {
	protected := jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
	})
	a.Get("/user/cur", protected, controllers.Cur)
}
