package model

import "time"

type LoginResult struct {
	AccessToken string
	ExpiredAt   time.Time
	User        *UserModel
}
