package db

import (
	"github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db/model"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// 初始化db schema
// 冪等性, 給 mysql/sqlite 使用; postgres 走 migrations
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&model.User{},
		&model.Contact{},
		&model.PhoneNumber{},
		&model.Photo{},
		&model.UploadedFile{},
	)
}
