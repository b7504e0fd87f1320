package dto

import "github.com/google/uuid"

type SwipeRequest struct {
	Direction string `json:"direction"`
}

type SwipeResponse struct {
	PostID      uuid.UUID `json:"post_id"`
	Direction   string    `json:"direction"`
	HiddenUntil string    `json:"hidden_until,omitempty"`
}
