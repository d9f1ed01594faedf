package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Food struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserEmail  string         `gorm:"index" json:"user_email"`
	Name       string         `json:"name"`
	Quantity   int            `json:"quantity"`
	Category   string         `json:"category"`
	ExpiryDate time.Time      `json:"expiry_date"`
	AddedDate  time.Time      `json:"added_date"`
	Note       datatypes.JSON `gorm:"type:jsonb" json:"note,omitempty"`
	ImageURL   string         `json:"image_url,omitempty"`

	Timestamp
}
