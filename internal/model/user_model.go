package model

import "time"

type UserModel struct {
	ID        int64
	Username  string
	Email     string
	CreatedAt time.Time
}
