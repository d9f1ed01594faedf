package food

import (
	"Fresh-Reminder-Backend/domain"
	"Fresh-Reminder-Backend/entities"
	"Fresh-Reminder-Backend/internal/utils/mailing"
	"Fresh-Reminder-Backend/internal/utils/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// ExpiryWindowDays is the length of the rolling near-term window in
	// calendar days. ExpiringSoonLimit caps how many items the
	// expiring-soon query returns.
	ExpiryWindowDays  = 5
	ExpiringSoonLimit = 6
)

type (
	FoodService interface {
		AddFood(ctx context.Context, req domain.AddFoodRequest, userEmail string) (domain.AddFoodResponse, error)
		GetFoods(ctx context.Context, userEmail string) ([]domain.FoodResponse, error)
		GetFoodByID(ctx context.Context, id string) (domain.FoodResponse, error)
		ReplaceFood(ctx context.Context, id string, req domain.ReplaceFoodRequest, userEmail string) error
		UpdateFoodNote(ctx context.Context, id string, note json.RawMessage, userEmail string) error
		DeleteFood(ctx context.Context, id string, userEmail string) error
		GetExpiringSoon(ctx context.Context) ([]domain.FoodResponse, error)
		SendExpiryReminder(ctx context.Context, userEmail string) (domain.SendReminderResponse, error)
		UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userEmail string) error
	}

	foodService struct {
		foodRepository FoodRepository
		s3             storage.AwsS3
		mailer         mailing.Mailer
		now            func() time.Time
	}
)

func NewFoodService(foodRepository FoodRepository, s3 storage.AwsS3, mailer mailing.Mailer) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		s3:             s3,
		mailer:         mailer,
		now:            time.Now,
	}
}

// expiryWindow computes the rolling near-term range starting at now.
// Calendar-day arithmetic, so month and year rollover behave.
func expiryWindow(now time.Time) (time.Time, time.Time) {
	return now, now.AddDate(0, 0, ExpiryWindowDays)
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func toFoodResponse(item *entities.Food) domain.FoodResponse {
	return domain.FoodResponse{
		ID:         item.ID.String(),
		UserEmail:  item.UserEmail,
		Name:       item.Name,
		Quantity:   item.Quantity,
		Category:   item.Category,
		ExpiryDate: item.ExpiryDate,
		AddedDate:  item.AddedDate,
		Note:       json.RawMessage(item.Note),
		ImageURL:   item.ImageURL,
		CreatedAt:  item.CreatedAt,
	}
}

func (s *foodService) AddFood(ctx context.Context, req domain.AddFoodRequest, userEmail string) (domain.AddFoodResponse, error) {
	expiryDate, err := parseDate(req.ExpiryDate)
	if err != nil {
		return domain.AddFoodResponse{}, domain.ErrInvalidExpiryDate
	}

	addedDate := s.now()
	if req.AddedDate != "" {
		addedDate, err = parseDate(req.AddedDate)
		if err != nil {
			return domain.AddFoodResponse{}, domain.ErrInvalidAddedDate
		}
	}

	food := &entities.Food{
		ID:         uuid.New(),
		UserEmail:  userEmail,
		Name:       req.Name,
		Quantity:   req.Quantity,
		Category:   req.Category,
		ExpiryDate: expiryDate,
		AddedDate:  addedDate,
	}

	if err := s.foodRepository.AddFood(ctx, food); err != nil {
		return domain.AddFoodResponse{}, err
	}

	return domain.AddFoodResponse{
		ID:         food.ID.String(),
		UserEmail:  food.UserEmail,
		Name:       food.Name,
		Quantity:   food.Quantity,
		Category:   food.Category,
		ExpiryDate: food.ExpiryDate,
		AddedDate:  food.AddedDate,
	}, nil
}

func (s *foodService) GetFoods(ctx context.Context, userEmail string) ([]domain.FoodResponse, error) {
	foods, err := s.foodRepository.GetFoods(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	response := make([]domain.FoodResponse, 0, len(foods))
	for _, item := range foods {
		response = append(response, toFoodResponse(item))
	}

	return response, nil
}

func (s *foodService) GetFoodByID(ctx context.Context, id string) (domain.FoodResponse, error) {
	food, err := s.foodRepository.GetFoodByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodResponse{}, domain.ErrFoodNotFound
		}
		return domain.FoodResponse{}, err
	}

	return toFoodResponse(food), nil
}

func (s *foodService) ReplaceFood(ctx context.Context, id string, req domain.ReplaceFoodRequest, userEmail string) error {
	foodID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrParseUUID
	}

	expiryDate, err := parseDate(req.ExpiryDate)
	if err != nil {
		return domain.ErrInvalidExpiryDate
	}

	addedDate := s.now()
	if req.AddedDate != "" {
		addedDate, err = parseDate(req.AddedDate)
		if err != nil {
			return domain.ErrInvalidAddedDate
		}
	}

	food := &entities.Food{
		ID:         foodID,
		UserEmail:  userEmail,
		Name:       req.Name,
		Quantity:   req.Quantity,
		Category:   req.Category,
		ExpiryDate: expiryDate,
		AddedDate:  addedDate,
	}

	existing, err := s.foodRepository.GetFoodByID(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		if existing.UserEmail != userEmail {
			return domain.ErrForbiddenAccess
		}
		// Owner email is immutable, and the note and image live outside
		// the replaceable field set.
		food.UserEmail = existing.UserEmail
		food.Note = existing.Note
		food.ImageURL = existing.ImageURL
	}

	return s.foodRepository.UpsertFood(ctx, food)
}

func (s *foodService) UpdateFoodNote(ctx context.Context, id string, note json.RawMessage, userEmail string) error {
	if !json.Valid(note) {
		return domain.ErrInvalidNote
	}

	food, err := s.foodRepository.GetFoodByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFoodNotFound
		}
		return err
	}

	if food.UserEmail != userEmail {
		return domain.ErrForbiddenAccess
	}

	return s.foodRepository.UpdateFoodNote(ctx, id, datatypes.JSON(note))
}

func (s *foodService) DeleteFood(ctx context.Context, id string, userEmail string) error {
	food, err := s.foodRepository.GetFoodByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFoodNotFound
		}
		return err
	}

	if food.UserEmail != userEmail {
		return domain.ErrForbiddenAccess
	}

	if food.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(food.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.foodRepository.DeleteFood(ctx, id)
}

func (s *foodService) GetExpiringSoon(ctx context.Context) ([]domain.FoodResponse, error) {
	startDate, endDate := expiryWindow(s.now())

	foods, err := s.foodRepository.GetFoodsByExpiryRange(ctx, startDate, endDate, ExpiringSoonLimit)
	if err != nil {
		return nil, err
	}

	response := make([]domain.FoodResponse, 0, len(foods))
	for _, item := range foods {
		response = append(response, toFoodResponse(item))
	}

	return response, nil
}

func (s *foodService) SendExpiryReminder(ctx context.Context, userEmail string) (domain.SendReminderResponse, error) {
	startDate, endDate := expiryWindow(s.now())

	foods, err := s.foodRepository.GetUserFoodsByExpiryRange(ctx, userEmail, startDate, endDate)
	if err != nil {
		return domain.SendReminderResponse{}, err
	}

	if len(foods) > 0 {
		var body strings.Builder
		body.WriteString("<p>These items in your fridge expire within the next ")
		body.WriteString(fmt.Sprintf("%d days:</p><ul>", ExpiryWindowDays))
		for _, item := range foods {
			body.WriteString(fmt.Sprintf(
				"<li>%s (x%d) expires on %s</li>",
				item.Name, item.Quantity, item.ExpiryDate.Format("2006-01-02"),
			))
		}
		body.WriteString("</ul>")

		if err := s.mailer.SendMail(userEmail, "Fresh Reminder: items expiring soon", body.String()); err != nil {
			return domain.SendReminderResponse{}, err
		}
	}

	return domain.SendReminderResponse{
		Email:     userEmail,
		ItemCount: len(foods),
	}, nil
}

func (s *foodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userEmail string) error {
	food, err := s.foodRepository.GetFoodByID(ctx, req.FoodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFoodNotFound
		}
		return err
	}

	if food.UserEmail != userEmail {
		return domain.ErrForbiddenAccess
	}

	fileName := fmt.Sprintf("food-%s", food.ID.String())
	var objectKey string
	var uploadErr error

	if food.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(food.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "foods", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "foods", storage.AllowImage...)
	}

	if uploadErr != nil {
		return uploadErr
	}

	food.ImageURL = s.s3.GetPublicLinkKey(objectKey)

	return s.foodRepository.UpdateFood(ctx, food)
}
