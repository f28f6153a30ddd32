package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/FelixBraun92/PawPantry/app/models"
	"github.com/FelixBraun92/PawPantry/app/repository"
	"github.com/FelixBraun92/PawPantry/internal/pkg/usercontext"
)

// petResponse attaches the derived portion suggestion to a pet payload.
func petResponse(pet *models.Pet) fiber.Map {
	return fiber.Map{
		"pet":                pet,
		"portion_suggestion": pet.SuggestPortion(),
	}
}

// loadOwnPet resolves a path pet id to a pet owned by the caller. Foreign
// pets are reported as not found, except for admins.
func loadOwnPet(c *fiber.Ctx, userID uint) (*models.Pet, error) {
	petID, err := parseUintParam(c, "id")
	if err != nil {
		return nil, jsonDetail(c, fiber.StatusBadRequest, "Invalid pet id")
	}
	pet, err := repository.GetGlobalFactory().GetPetRepository().GetByID(petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, jsonDetail(c, fiber.StatusNotFound, "Pet not found")
		}
		log.Printf("pet lookup failed: %v", err)
		return nil, jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if pet.UserID != userID && !usercontext.IsAdmin(c) {
		return nil, jsonDetail(c, fiber.StatusNotFound, "Pet not found")
	}
	return pet, nil
}

// HandleCreatePet registers a pet profile for the authenticated user.
func HandleCreatePet(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var pet models.Pet
	if err := c.BodyParser(&pet); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	pet.ID = 0
	pet.UserID = user.ID
	if err := pet.Validate(); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid pet data")
	}

	if err := repository.GetGlobalFactory().GetPetRepository().Create(&pet); err != nil {
		log.Printf("pet create failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.Status(fiber.StatusCreated).JSON(petResponse(&pet))
}

// HandleListPets lists the authenticated user's pets with suggestions.
func HandleListPets(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	pets, err := repository.GetGlobalFactory().GetPetRepository().GetByUserID(user.ID)
	if err != nil {
		log.Printf("pet list failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	out := make([]fiber.Map, 0, len(pets))
	for i := range pets {
		out = append(out, petResponse(&pets[i]))
	}
	return c.JSON(out)
}

// HandleGetPet returns one owned pet with its portion suggestion.
func HandleGetPet(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	pet, errResp := loadOwnPet(c, user.ID)
	if pet == nil {
		return errResp
	}
	return c.JSON(petResponse(pet))
}

// HandleUpdatePet patches an owned pet profile.
func HandleUpdatePet(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	pet, errResp := loadOwnPet(c, user.ID)
	if pet == nil {
		return errResp
	}

	var patch models.Pet
	if err := c.BodyParser(&patch); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	patch.ID = pet.ID
	patch.UserID = pet.UserID
	if err := patch.Validate(); err != nil {
		return jsonDetail(c, fiber.StatusBadRequest, "Invalid pet data")
	}

	if err := repository.GetGlobalFactory().GetPetRepository().Update(&patch); err != nil {
		log.Printf("pet update failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(petResponse(&patch))
}

// HandleDeletePet removes an owned pet profile.
func HandleDeletePet(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return jsonDetail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	pet, errResp := loadOwnPet(c, user.ID)
	if pet == nil {
		return errResp
	}

	if err := repository.GetGlobalFactory().GetPetRepository().Delete(pet.ID); err != nil {
		log.Printf("pet delete failed: %v", err)
		return jsonDetail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(fiber.Map{"ok": true})
}
