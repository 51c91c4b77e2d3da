package model

type PhoneNumber struct {
	ID        int64    `gorm:"primaryKey;autoIncrement"`
	Number    string   `gorm:"uniqueIndex;not null;type:varchar(20)"`
	ContactID int64    `gorm:"not null;index"`
	Contact   *Contact `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE" json:"-"`
}
