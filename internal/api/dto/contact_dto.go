package dto

import "time"

type PhoneNumberDTO struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
}

type PhoneNumberInputDTO struct {
	Number string `json:"number"`
}

type CreateContactDTO struct {
	Name         string                `json:"name"`
	Address      *string               `json:"address,omitempty"`
	PhoneNumbers []PhoneNumberInputDTO `json:"phoneNumbers"`
}

// UpdateContactDTO 只更新有帶的欄位
type UpdateContactDTO struct {
	Name         *string                `json:"name,omitempty"`
	Address      *string                `json:"address,omitempty"`
	PhoneNumbers *[]PhoneNumberInputDTO `json:"phoneNumbers,omitempty"`
}

type ContactDTO struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Address      *string          `json:"address"`
	PhoneNumbers []PhoneNumberDTO `json:"phoneNumbers"`
	PhotoURL     string           `json:"photoUrl,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}
