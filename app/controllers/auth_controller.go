package controllers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/FelixBraun92/PawPantry/app/models"
	"github.com/FelixBraun92/PawPantry/app/repository"
	"github.com/FelixBraun92/PawPantry/internal/pkg/env"
	"github.com/FelixBraun92/PawPantry/internal/pkg/jobqueue"
	"github.com/FelixBraun92/PawPantry/internal/pkg/security"
)

type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a customer account and enqueues the welcome email.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := userRepo.GetByEmail(req.Email); err == nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("register email lookup failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	user, err := models.CreateUser(req.Email, req.FullName, req.Password)
	if err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid registration data")
	}
	if err := userRepo.Create(user); err != nil {
		log.Printf("register create failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	jobqueue.NewNotifier().Welcome(user.Email, user.FullName)

	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleLogin verifies credentials and issues a signed access token.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonDetail(c, fiber.StatusUnauthorized, "Incorrect email or password")
		}
		log.Printf("login lookup failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !user.CheckPassword(req.Password) {
		return jsonDetail(c, fiber.StatusUnauthorized, "Incorrect email or password")
	}
	if !user.IsActive {
		return jsonDetail(c, fiber.StatusForbidden, "Inactive user")
	}

	ttl := 60
	if v, err := strconv.Atoi(env.GetEnv("AUTH_TOKEN_TTL_MINUTES", "60")); err == nil && v > 0 {
		ttl = v
	}
	token, err := security.GenerateAccessToken(
		user.ID, user.Email, user.Role,
		time.Duration(ttl)*time.Minute,
		env.GetEnv("AUTH_TOKEN_SECRET", ""),
	)
	if err != nil {
		log.Printf("token generation failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// HandleGetMe returns the authenticated user's profile.
func HandleGetMe(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(user)
}

// HandleUpdateMe patches the authenticated user's profile.
func HandleUpdateMe(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var req struct {
		FullName *string `json:"full_name"`
		Password *string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return jsonDetail(c, fiber.StatusBadRequest, "Invalid password")
		}
	}
	if err := user.Validate(); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid profile data")
	}
	if err := repository.GetGlobalFactory().GetUserRepository().Update(user); err != nil {
		log.Printf("profile update failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(user)
}
