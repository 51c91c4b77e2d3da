package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormConfig() *gorm.Config {
	return &gorm.Config{
		// unique violation 轉為 gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         newGormLogger(),
	}
}

func GetDbConn(dbname, host, port, user, pas string) (*gorm.DB, error) {
	// 資料來源名稱 (DSN)
	dsn := fmt.Sprintf("user=%s password=%s host=%s port=%s dbname=%s sslmode=disable", user, pas, host, port, dbname)

	// 連線到資料庫
	db, err := gorm.Open(postgres.Open(dsn), newGormConfig())
	if err != nil {
		return nil, err
	}
	return db, nil
}

// dsn 需帶 parseTime=true
func GetMysqlConn(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), newGormConfig())
}

// 本機開發與測試使用, 單一連線避免 database is locked
func GetSqliteConn(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := gorm.Open(sqlite.Open(dsn), newGormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
