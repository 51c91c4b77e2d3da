package token

import "time"

// Maker 簽發與驗證 access token
type Maker interface {
	CreateToken(userID int64, username string, duration time.Duration) (string, *Payload, error)
	VertifyToken(token string) (*Payload, error)
}
