package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public identity of a platform user: campaign owners,
// donors, and reporters all resolve to profiles.
type Profile struct {
	UserID    uuid.UUID `json:"user_id"`
	FullName  *string   `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}
