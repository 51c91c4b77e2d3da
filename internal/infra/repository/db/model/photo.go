package model

import "time"

// Photo 一個聯絡人最多一張, FilePath 為儲存區內的檔名
type Photo struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ContactID int64     `gorm:"uniqueIndex;not null"`
	Contact   *Contact  `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE" json:"-"`
	FilePath  string    `gorm:"not null;type:varchar(255)"`
	CreatedAt time.Time `gorm:"not null"`
}
