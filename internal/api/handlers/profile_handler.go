package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"souschef/domain"
	"souschef/internal/api/presenters"
	"souschef/pkg/profile"
)

type (
	ProfileHandler interface {
		CreateProfile(c *fiber.Ctx) error
		GetProfile(c *fiber.Ctx) error
		CancelSetup(c *fiber.Ctx) error
	}

	profileHandler struct {
		profileService profile.ProfileService
		validator      *validator.Validate
	}
)

func NewProfileHandler(profileService profile.ProfileService, validator *validator.Validate) ProfileHandler {
	return &profileHandler{
		profileService: profileService,
		validator:      validator,
	}
}

func (h *profileHandler) CreateProfile(c *fiber.Ctx) error {
	req := new(domain.CreateProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateProfile, err)
	}

	email, _ := c.Locals("email").(string)
	res, err := h.profileService.CreateProfile(c.UserContext(), userID(c), email, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateProfile)
}

func (h *profileHandler) GetProfile(c *fiber.Ctx) error {
	res, err := h.profileService.GetProfile(c.UserContext(), userID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetProfile, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

// CancelSetup answers 202 when the account removal was queued for retry.
func (h *profileHandler) CancelSetup(c *fiber.Ctx) error {
	err := h.profileService.CancelSetup(c.UserContext(), userID(c))
	switch {
	case errors.Is(err, domain.ErrIdentityCleanupQueue):
		return presenters.SuccessResponse(c, nil, fiber.StatusAccepted, domain.MessageSuccessCancelSetup)
	case err != nil:
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCancelSetup, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelSetup)
}
