package handlers

import (
	"Fresh-Reminder-Backend/domain"
	"Fresh-Reminder-Backend/internal/api/presenters"
	"Fresh-Reminder-Backend/pkg/food"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FoodHandler interface {
		AddFood(c *fiber.Ctx) error
		GetFoods(c *fiber.Ctx) error
		GetFoodsByOwner(c *fiber.Ctx) error
		GetFoodByID(c *fiber.Ctx) error
		GetExpiringSoon(c *fiber.Ctx) error
		ReplaceFood(c *fiber.Ctx) error
		UpdateFoodNote(c *fiber.Ctx) error
		DeleteFood(c *fiber.Ctx) error
		SendExpiryReminder(c *fiber.Ctx) error
		UploadFoodImage(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService food.FoodService
		validator   *validator.Validate
	}
)

func NewFoodHandler(foodService food.FoodService, validator *validator.Validate) FoodHandler {
	return &foodHandler{
		foodService: foodService,
		validator:   validator,
	}
}

// foodError maps service errors onto HTTP statuses. Ownership failures
// keep the fixed forbidden body regardless of the failed operation.
func foodError(c *fiber.Ctx, message string, err error) error {
	switch {
	case errors.Is(err, domain.ErrForbiddenAccess):
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageForbidden, nil)
	case errors.Is(err, domain.ErrFoodNotFound):
		return presenters.ErrorResponse(c, fiber.StatusNotFound, message, err)
	case errors.Is(err, domain.ErrInvalidExpiryDate),
		errors.Is(err, domain.ErrInvalidAddedDate),
		errors.Is(err, domain.ErrInvalidNote),
		errors.Is(err, domain.ErrParseUUID):
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, message, err)
	default:
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, message, err)
	}
}

func (h *foodHandler) AddFood(c *fiber.Ctx) error {
	userEmail := c.Locals("user_email").(string)
	req := new(domain.AddFoodRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFood, err)
	}

	res, err := h.foodService.AddFood(c.Context(), *req, userEmail)
	if err != nil {
		return foodError(c, domain.MessageFailedAddFood, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddFood)
}

func (h *foodHandler) GetFoods(c *fiber.Ctx) error {
	email := c.Query("email")

	foods, err := h.foodService.GetFoods(c.Context(), email)
	if err != nil {
		return foodError(c, domain.MessageFailedGetFoods, err)
	}

	return presenters.SuccessResponse(c, foods, fiber.StatusOK, domain.MessageSuccessGetFoods)
}

func (h *foodHandler) GetFoodsByOwner(c *fiber.Ctx) error {
	// The ownership guard has already matched the email query parameter
	// against the verified claim.
	email := c.Locals("user_email").(string)

	foods, err := h.foodService.GetFoods(c.Context(), email)
	if err != nil {
		return foodError(c, domain.MessageFailedGetFoods, err)
	}

	return presenters.SuccessResponse(c, foods, fiber.StatusOK, domain.MessageSuccessGetFoods)
}

func (h *foodHandler) GetFoodByID(c *fiber.Ctx) error {
	itemID := c.Params("id")

	item, err := h.foodService.GetFoodByID(c.Context(), itemID)
	if err != nil {
		return foodError(c, domain.MessageFailedGetFoods, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetFoods)
}

func (h *foodHandler) GetExpiringSoon(c *fiber.Ctx) error {
	foods, err := h.foodService.GetExpiringSoon(c.Context())
	if err != nil {
		return foodError(c, domain.MessageFailedExpiringSoon, err)
	}

	return presenters.SuccessResponse(c, foods, fiber.StatusOK, domain.MessageSuccessExpiringSoon)
}

func (h *foodHandler) ReplaceFood(c *fiber.Ctx) error {
	userEmail := c.Locals("user_email").(string)
	itemID := c.Params("id")
	req := new(domain.ReplaceFoodRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReplaceFood, err)
	}

	if err := h.foodService.ReplaceFood(c.Context(), itemID, *req, userEmail); err != nil {
		return foodError(c, domain.MessageFailedReplaceFood, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessReplaceFood)
}

func (h *foodHandler) UpdateFoodNote(c *fiber.Ctx) error {
	userEmail := c.Locals("user_email").(string)
	itemID := c.Params("id")

	// The note payload is an arbitrary sub-document, stored wholesale.
	note := c.Body()
	if len(note) == 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.ErrInvalidNote)
	}

	if err := h.foodService.UpdateFoodNote(c.Context(), itemID, note, userEmail); err != nil {
		return foodError(c, domain.MessageFailedUpdateNote, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateNote)
}

func (h *foodHandler) DeleteFood(c *fiber.Ctx) error {
	userEmail := c.Locals("user_email").(string)
	itemID := c.Params("id")

	if err := h.foodService.DeleteFood(c.Context(), itemID, userEmail); err != nil {
		return foodError(c, domain.MessageFailedDeleteFood, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFood)
}

func (h *foodHandler) SendExpiryReminder(c *fiber.Ctx) error {
	userEmail := c.Locals("user_email").(string)

	res, err := h.foodService.SendExpiryReminder(c.Context(), userEmail)
	if err != nil {
		return foodError(c, domain.MessageFailedSendReminder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSendReminder)
}

func (h *foodHandler) UploadFoodImage(c *fiber.Ctx) error {
	userEmail := c.Locals("user_email").(string)
	req := new(domain.UploadFoodImageRequest)
	req.FoodID = c.Params("id")

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadFoodImage, err)
	}

	if err := h.foodService.UploadFoodImage(c.Context(), *req, userEmail); err != nil {
		return foodError(c, domain.MessageFailedUploadFoodImage, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUploadFoodImage)
}
