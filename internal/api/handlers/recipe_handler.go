package handlers

import (
	"github.com/gofiber/fiber/v2"

	"souschef/domain"
	"souschef/internal/api/presenters"
	"souschef/pkg/recipe"
)

type (
	RecipeHandler interface {
		GetTodaysRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CheckFeasibility(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService) RecipeHandler {
	return &recipeHandler{recipeService: recipeService}
}

func (h *recipeHandler) GetTodaysRecipes(c *fiber.Ctx) error {
	recipes, err := h.recipeService.GetTodaysRecipes(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, recipes, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipeDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CheckFeasibility(c *fiber.Ctx) error {
	res, err := h.recipeService.CheckFeasibility(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCheckFeasibility, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCheckFeasibility)
}
