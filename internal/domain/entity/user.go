package entity

import (
	"time"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	FullName string `json:"full_name" firestore:"fullName"`
	Phone    string `json:"phone" firestore:"phone"`
	Role     string `json:"role" firestore:"role"` // "farmer", "buyer", "admin"
	Status   string `json:"status" firestore:"status"`

	City    string `json:"city,omitempty" firestore:"city,omitempty"`
	Region  string `json:"region,omitempty" firestore:"region,omitempty"`
	Country string `json:"country,omitempty" firestore:"country,omitempty"`

	AvatarURL string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	Bio       string `json:"bio,omitempty" firestore:"bio,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
