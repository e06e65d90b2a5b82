package controllers

import (
	"github.com/DedS3t/monopoly-server/app/models"
	"github.com/DedS3t/monopoly-server/pkg/auth"
	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/go-pg/pg/v10"
	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	userDto := new(models.UserDto)
	if err := c.BodyParser(userDto); err != nil || userDto.Email == "" || userDto.Pass == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(userDto.Pass), bcrypt.DefaultCost)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	user := &models.User{
		Id:       uuid.NewV4().String(),
		Email:    userDto.Email,
		Password: string(hash),
	}
	if err := h.Store.CreateUser(user); err != nil {
		if pgErr, ok := err.(pg.Error); ok && pgErr.IntegrityViolation() {
			return c.SendStatus(fiber.StatusConflict)
		}
		log.WithError(err).Error("creating user failed")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": user.Id})
}

func (h *Handlers) Login(c *fiber.Ctx) error {
	userDto := new(models.UserDto)
	if err := c.BodyParser(userDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	user, err := h.Store.UserByEmail(userDto.Email)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(userDto.Pass)) != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	t, err := auth.Issue(h.Config.JWTSecret, user.Id)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{"access_token": t, "user_id": user.Id})
}

// Cur answers with the id of the authenticated user.
func Cur(c *fiber.Ctx) error {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	user_id, err := auth.UserId(token)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	return c.SendString(user_id)
}
