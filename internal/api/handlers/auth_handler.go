package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"souschef/domain"
	"souschef/internal/api/presenters"
	"souschef/pkg/identity"
	"souschef/pkg/validation"
)

type (
	AuthHandler interface {
		SignUp(c *fiber.Ctx) error
		SignIn(c *fiber.Ctx) error
		SignOut(c *fiber.Ctx) error
		CheckPassword(c *fiber.Ctx) error
	}

	authHandler struct {
		identityService identity.IdentityService
		validator       *validator.Validate
	}
)

func NewAuthHandler(identityService identity.IdentityService, validator *validator.Validate) AuthHandler {
	return &authHandler{
		identityService: identityService,
		validator:       validator,
	}
}

func (h *authHandler) SignUp(c *fiber.Ctx) error {
	req := new(domain.CredentialsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSignUp, err)
	}

	res, err := h.identityService.SignUp(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSignUp, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSignUp)
}

func (h *authHandler) SignIn(c *fiber.Ctx) error {
	req := new(domain.CredentialsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSignIn, err)
	}

	res, err := h.identityService.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSignIn, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSignIn)
}

func (h *authHandler) SignOut(c *fiber.Ctx) error {
	if err := h.identityService.SignOut(c.UserContext(), userID(c)); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSignOut, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSignOut)
}

// CheckPassword reports every password rule so the sign-up form can show a
// live checklist.
func (h *authHandler) CheckPassword(c *fiber.Ctx) error {
	req := new(domain.CheckPasswordRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"valid": validation.ValidatePassword(req.Password) == nil,
		"rules": validation.CheckPassword(req.Password),
	}, fiber.StatusOK, domain.MessageSuccessCheckPassword)
}
