package token

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

// Payload 驗證後放進 request context 的身分資訊
type Payload struct {
	ID        uuid.UUID
	UserID    int64
	UPN       string
	IssuedAt  time.Time
	ExpiredAt time.Time
}

func NewPayload(userID int64, username string, duration time.Duration) *Payload {
	now := time.Now().UTC()
	return &Payload{
		ID:        uuid.New(),
		UserID:    userID,
		UPN:       username,
		IssuedAt:  now,
		ExpiredAt: now.Add(duration),
	}
}
