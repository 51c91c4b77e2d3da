package model

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"uniqueIndex;not null;type:varchar(20)"`
	Email        string    `gorm:"uniqueIndex;not null;type:varchar(50)"`
	PasswordHash string    `gorm:"not null;type:varchar(255)"`
	CreatedAt    time.Time `gorm:"not null"`
}
