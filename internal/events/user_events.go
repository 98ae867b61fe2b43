package events

import "time"

type UserRegistered struct {
	UserID string    `json:"userId"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	At     time.Time `json:"at"`
}

func (UserRegistered) Name() string { return "user.registered" }
