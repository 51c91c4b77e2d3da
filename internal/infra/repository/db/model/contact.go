package model

// Contact 只保存 user_id 外鍵, 電話與照片由 repo 依 contact_id 查詢
type Contact struct {
	ID      int64   `gorm:"primaryKey;autoIncrement"`
	UserID  int64   `gorm:"not null;uniqueIndex:idx_contacts_user_name,priority:1"`
	User    *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Name    string  `gorm:"not null;type:varchar(100);uniqueIndex:idx_contacts_user_name,priority:2"`
	Address *string `gorm:"type:varchar(255)"`
	BaseModel
}
