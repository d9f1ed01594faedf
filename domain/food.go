package domain

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddFood         = "food added successfully"
	MessageSuccessReplaceFood     = "food replaced successfully"
	MessageSuccessDeleteFood      = "food deleted successfully"
	MessageSuccessGetFoods        = "foods retrieved successfully"
	MessageSuccessUpdateNote      = "food note updated successfully"
	MessageSuccessExpiringSoon    = "expiring foods retrieved successfully"
	MessageSuccessSendReminder    = "expiry reminder sent successfully"
	MessageSuccessUploadFoodImage = "food image uploaded successfully"

	MessageFailedAddFood         = "failed to add food"
	MessageFailedReplaceFood     = "failed to replace food"
	MessageFailedDeleteFood      = "failed to delete food"
	MessageFailedGetFoods        = "failed to retrieve foods"
	MessageFailedUpdateNote      = "failed to update food note"
	MessageFailedExpiringSoon    = "failed to retrieve expiring foods"
	MessageFailedSendReminder    = "failed to send expiry reminder"
	MessageFailedUploadFoodImage = "failed to upload food image"

	ErrFoodNotFound      = errors.New("food not found")
	ErrInvalidExpiryDate = errors.New("invalid expiry date")
	ErrInvalidAddedDate  = errors.New("invalid added date")
	ErrInvalidNote       = errors.New("invalid note payload")
	ErrForbiddenAccess   = errors.New("forbidden access to food")
)

type (
	AddFoodRequest struct {
		Name       string `json:"name" validate:"required"`
		Quantity   int    `json:"quantity" validate:"omitempty,min=1"`
		Category   string `json:"category"`
		ExpiryDate string `json:"expiryDate" validate:"required"`
		AddedDate  string `json:"addedDate" validate:"omitempty"`
	}

	AddFoodResponse struct {
		ID         string    `json:"id"`
		UserEmail  string    `json:"user_email"`
		Name       string    `json:"name"`
		Quantity   int       `json:"quantity"`
		Category   string    `json:"category"`
		ExpiryDate time.Time `json:"expiry_date"`
		AddedDate  time.Time `json:"added_date"`
	}

	ReplaceFoodRequest struct {
		Name       string `json:"name" validate:"required"`
		Quantity   int    `json:"quantity" validate:"omitempty,min=1"`
		Category   string `json:"category"`
		ExpiryDate string `json:"expiryDate" validate:"required"`
		AddedDate  string `json:"addedDate" validate:"omitempty"`
	}

	UpdateNoteRequest struct {
		Note json.RawMessage `json:"note" validate:"required"`
	}

	FoodResponse struct {
		ID         string          `json:"id"`
		UserEmail  string          `json:"user_email"`
		Name       string          `json:"name"`
		Quantity   int             `json:"quantity"`
		Category   string          `json:"category"`
		ExpiryDate time.Time       `json:"expiry_date"`
		AddedDate  time.Time       `json:"added_date"`
		Note       json.RawMessage `json:"note,omitempty"`
		ImageURL   string          `json:"image_url,omitempty"`
		CreatedAt  time.Time       `json:"created_at"`
	}

	UploadFoodImageRequest struct {
		FoodID string                `json:"food_id" form:"food_id" validate:"required,uuid"`
		Image  *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	SendReminderResponse struct {
		Email     string `json:"email"`
		ItemCount int    `json:"item_count"`
	}
)
