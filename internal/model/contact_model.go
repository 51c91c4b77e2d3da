package model

import "time"

// ContactModel 聯絡人聚合: 聯絡人 + 電話 + 照片
type ContactModel struct {
	ID           int64
	UserID       int64
	Name         string
	Address      *string
	PhoneNumbers []PhoneNumberModel
	Photo        *PhotoModel
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type PhoneNumberModel struct {
	ID        int64
	Number    string
	ContactID int64
}

type PhotoModel struct {
	ID        int64
	ContactID int64
	FileName  string
	CreatedAt time.Time
}

// ContactInput 新增聯絡人
type ContactInput struct {
	Name         string
	Address      *string
	PhoneNumbers []string
}

// ContactPatch nil 欄位不修改
type ContactPatch struct {
	Name         *string
	Address      *string
	PhoneNumbers *[]string
}

// PhotoContent 檔案內容與 MIME
type PhotoContent struct {
	FileName    string
	ContentType string
	Data        []byte
}
