package handlers

import (
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"souschef/domain"
	"souschef/internal/api/presenters"
	"souschef/pkg/scan"
)

const maxImageBytes = 10 << 20

type (
	ScanHandler interface {
		StartSession(c *fiber.Ctx) error
		SendEvent(c *fiber.Ctx) error
		CaptureImage(c *fiber.Ctx) error
		GetSession(c *fiber.Ctx) error
		DismissSession(c *fiber.Ctx) error
		GetScans(c *fiber.Ctx) error
	}

	scanHandler struct {
		scanService scan.ScanService
		validator   *validator.Validate
	}
)

func NewScanHandler(scanService scan.ScanService, validator *validator.Validate) ScanHandler {
	return &scanHandler{
		scanService: scanService,
		validator:   validator,
	}
}

func (h *scanHandler) StartSession(c *fiber.Ctx) error {
	res, err := h.scanService.StartSession(c.UserContext(), userID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedStartScan, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessStartScan)
}

func (h *scanHandler) SendEvent(c *fiber.Ctx) error {
	req := new(domain.ScanEventRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedScanEvent, err)
	}

	res, err := h.scanService.SendEvent(c.UserContext(), userID(c), c.Params("id"), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedScanEvent, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessScanEvent)
}

// CaptureImage takes the photo from the multipart field "image".
func (h *scanHandler) CaptureImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}
	if file.Size > maxImageBytes {
		return presenters.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, domain.MessageFailedUploadImage, domain.ErrInvalidImageFormat)
	}

	f, err := file.Open()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	res, err := h.scanService.CaptureImage(c.UserContext(), userID(c), c.Params("id"), data)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedScanEvent, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessScanEvent)
}

func (h *scanHandler) GetSession(c *fiber.Ctx) error {
	res, err := h.scanService.GetSession(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetScan, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetScan)
}

func (h *scanHandler) DismissSession(c *fiber.Ctx) error {
	res, err := h.scanService.DismissSession(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDismissScan, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDismissScan)
}

func (h *scanHandler) GetScans(c *fiber.Ctx) error {
	scans, err := h.scanService.GetScans(c.UserContext(), userID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetScan, err)
	}
	return presenters.SuccessResponse(c, scans, fiber.StatusOK, domain.MessageSuccessGetScan)
}
