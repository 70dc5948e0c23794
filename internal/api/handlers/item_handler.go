package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"souschef/domain"
	"souschef/internal/api/presenters"
	"souschef/pkg/item"
)

type (
	ItemHandler interface {
		AddItem(c *fiber.Ctx) error
		GetItems(c *fiber.Ctx) error
		GetItemDetails(c *fiber.Ctx) error
		DeleteItem(c *fiber.Ctx) error
	}

	itemHandler struct {
		itemService item.ItemService
		validator   *validator.Validate
	}
)

func NewItemHandler(itemService item.ItemService, validator *validator.Validate) ItemHandler {
	return &itemHandler{
		itemService: itemService,
		validator:   validator,
	}
}

func (h *itemHandler) AddItem(c *fiber.Ctx) error {
	req := new(domain.AddItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddItem, err)
	}

	res, err := h.itemService.CreateItem(c.UserContext(), userID(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddItem)
}

func (h *itemHandler) GetItems(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(item.DefaultListLimit)))
	if err != nil || limit < 1 {
		limit = item.DefaultListLimit
	}

	items, err := h.itemService.GetItems(c.UserContext(), userID(c), limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetItems, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"count": len(items),
	}, fiber.StatusOK, domain.MessageSuccessGetItems)
}

func (h *itemHandler) GetItemDetails(c *fiber.Ctx) error {
	res, err := h.itemService.GetItemByID(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetItem)
}

func (h *itemHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.itemService.DeleteItem(c.UserContext(), userID(c), c.Params("id")); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteItem, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteItem)
}
