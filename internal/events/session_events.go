package events

import "time"

type SessionRevoked struct {
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId"`
	At        time.Time `json:"at"`
}

func (SessionRevoked) Name() string { return "session.revoked" }

// SessionsRevoked covers a bulk revoke, e.g. after a password change.
type SessionsRevoked struct {
	UserID string    `json:"userId"`
	Count  int64     `json:"count"`
	At     time.Time `json:"at"`
}

func (SessionsRevoked) Name() string { return "session.revoked_all" }
