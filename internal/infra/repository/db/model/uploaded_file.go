package model

import "time"

// UploadedFile 尚未綁定聯絡人的上傳檔, 記錄上傳者; 綁定後刪除
type UploadedFile struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"not null;index"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	FileName  string    `gorm:"uniqueIndex;not null;type:varchar(255)"`
	CreatedAt time.Time `gorm:"not null"`
}
