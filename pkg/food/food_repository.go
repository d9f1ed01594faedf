package food

import (
	"Fresh-Reminder-Backend/entities"
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	retryAttempts = 3
	retryBaseWait = 100 * time.Millisecond
)

type (
	FoodRepository interface {
		AddFood(ctx context.Context, food *entities.Food) error
		GetFoodByID(ctx context.Context, id string) (*entities.Food, error)
		GetFoods(ctx context.Context, userEmail string) ([]*entities.Food, error)
		UpsertFood(ctx context.Context, food *entities.Food) error
		UpdateFood(ctx context.Context, food *entities.Food) error
		UpdateFoodNote(ctx context.Context, id string, note datatypes.JSON) error
		DeleteFood(ctx context.Context, id string) error
		GetFoodsByExpiryRange(ctx context.Context, startDate, endDate time.Time, limit int) ([]*entities.Food, error)
		GetUserFoodsByExpiryRange(ctx context.Context, userEmail string, startDate, endDate time.Time) ([]*entities.Food, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

// withRetry re-runs the store call on transient failures with a short
// doubling backoff. Not-found and duplicate-key results are final.
func withRetry(ctx context.Context, op func() error) error {
	var err error
	wait := retryBaseWait
	for attempt := 0; attempt < retryAttempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) ||
			errors.Is(err, gorm.ErrDuplicatedKey) ||
			errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(wait):
		}
		wait *= 2
	}
	return err
}

func (r *foodRepository) AddFood(ctx context.Context, food *entities.Food) error {
	return withRetry(ctx, func() error {
		return r.db.WithContext(ctx).Create(food).Error
	})
}

func (r *foodRepository) GetFoodByID(ctx context.Context, id string) (*entities.Food, error) {
	var food entities.Food
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).First(&food).Error
	})
	if err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *foodRepository) GetFoods(ctx context.Context, userEmail string) ([]*entities.Food, error) {
	var foods []*entities.Food

	err := withRetry(ctx, func() error {
		query := r.db.WithContext(ctx)
		if userEmail != "" {
			query = query.Where("user_email = ?", userEmail)
		}
		return query.Order("expiry_date asc").Find(&foods).Error
	})
	if err != nil {
		return nil, err
	}

	return foods, nil
}

func (r *foodRepository) UpsertFood(ctx context.Context, food *entities.Food) error {
	return withRetry(ctx, func() error {
		return r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(food).Error
	})
}

func (r *foodRepository) UpdateFood(ctx context.Context, food *entities.Food) error {
	return withRetry(ctx, func() error {
		return r.db.WithContext(ctx).Save(food).Error
	})
}

func (r *foodRepository) UpdateFoodNote(ctx context.Context, id string, note datatypes.JSON) error {
	return withRetry(ctx, func() error {
		return r.db.WithContext(ctx).Model(&entities.Food{}).
			Where("id = ?", id).
			Update("note", note).Error
	})
}

func (r *foodRepository) DeleteFood(ctx context.Context, id string) error {
	return withRetry(ctx, func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Food{}).Error
	})
}

func (r *foodRepository) GetFoodsByExpiryRange(ctx context.Context, startDate, endDate time.Time, limit int) ([]*entities.Food, error) {
	var foods []*entities.Food

	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("expiry_date >= ? AND expiry_date <= ?", startDate, endDate).
			Order("expiry_date asc").
			Limit(limit).
			Find(&foods).Error
	})
	if err != nil {
		return nil, err
	}

	return foods, nil
}

func (r *foodRepository) GetUserFoodsByExpiryRange(ctx context.Context, userEmail string, startDate, endDate time.Time) ([]*entities.Food, error) {
	var foods []*entities.Food

	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("user_email = ? AND expiry_date >= ? AND expiry_date <= ?",
				userEmail, startDate, endDate).
			Order("expiry_date asc").
			Find(&foods).Error
	})
	if err != nil {
		return nil, err
	}

	return foods, nil
}
