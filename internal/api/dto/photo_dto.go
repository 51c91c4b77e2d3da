package dto

import "time"

type PhotoDTO struct {
	ID        int64     `json:"id"`
	ContactID int64     `json:"contactId"`
	FileName  string    `json:"fileName"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// FileNameDTO 上傳結果, 或綁定已上傳檔案時的 request body
type FileNameDTO struct {
	FileName string `json:"fileName"`
}
