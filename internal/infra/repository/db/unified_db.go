package db

import (
	"context"

	"github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db/model"
	"gorm.io/gorm"
)

// UnifiedDB 統一的資料庫介面
type UnifiedDB interface {
	// 基礎操作
	GetDB() *gorm.DB
	InitMigrate() error
	// ExecTx 在同一個 transaction 內執行 fn, fn 回傳錯誤即 rollback
	ExecTx(ctx context.Context, fn func(UnifiedDB) error) error
	Close() error

	IUserRepository
	IContactRepository
	IPhoneNumberRepository
	IPhotoRepository
	IUploadedFileRepository
}

// IUserRepository User 相關操作介面
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// IContactRepository Contact 相關操作介面
type IContactRepository interface {
	CreateContact(ctx context.Context, contact *model.Contact) error
	GetContactByID(ctx context.Context, userID, id int64) (*model.Contact, error)
	GetContactByName(ctx context.Context, userID int64, name string) (*model.Contact, error)
	ListContactsByUserID(ctx context.Context, userID int64) ([]model.Contact, error)
	SearchContactsByName(ctx context.Context, userID int64, term string, limit int) ([]model.Contact, error)
	UpdateContact(ctx context.Context, contact *model.Contact) error
	DeleteContact(ctx context.Context, userID, id int64) error
}

// IPhoneNumberRepository PhoneNumber 相關操作介面
type IPhoneNumberRepository interface {
	CreatePhoneNumber(ctx context.Context, phone *model.PhoneNumber) error
	CreatePhoneNumbers(ctx context.Context, phones []model.PhoneNumber) error
	GetPhoneNumberByID(ctx context.Context, id int64) (*model.PhoneNumber, error)
	GetPhoneNumberByNumber(ctx context.Context, number string) (*model.PhoneNumber, error)
	ListPhoneNumbersByNumbers(ctx context.Context, numbers []string) ([]model.PhoneNumber, error)
	ListPhoneNumbersByContactIDs(ctx context.Context, contactIDs []int64) ([]model.PhoneNumber, error)
	UpdatePhoneNumber(ctx context.Context, id int64, number string) error
	DeletePhoneNumber(ctx context.Context, id int64) error
	DeletePhoneNumbersByContactID(ctx context.Context, contactID int64) error
}

// IPhotoRepository Photo 相關操作介面
type IPhotoRepository interface {
	CreatePhoto(ctx context.Context, photo *model.Photo) error
	GetPhotoByContactID(ctx context.Context, contactID int64) (*model.Photo, error)
	GetPhotoByFilePath(ctx context.Context, filePath string) (*model.Photo, error)
	ListPhotosByContactIDs(ctx context.Context, contactIDs []int64) ([]model.Photo, error)
	DeletePhotoByContactID(ctx context.Context, contactID int64) error
}

// IUploadedFileRepository 未綁定上傳檔的擁有者紀錄
type IUploadedFileRepository interface {
	CreateUploadedFile(ctx context.Context, file *model.UploadedFile) error
	GetUploadedFileByName(ctx context.Context, fileName string) (*model.UploadedFile, error)
	DeleteUploadedFileByName(ctx context.Context, fileName string) error
}

// UnifiedDBImpl 統一資料庫實現
type UnifiedDBImpl struct {
	db    *gorm.DB
	dbDao *DbDao
	*UserRepo
	*ContactRepo
	*PhoneNumberRepo
	*PhotoRepo
	*UploadedFileRepo
}

// NewUnifiedDB 創建新的統一資料庫實例
func NewUnifiedDB(db *gorm.DB) *UnifiedDBImpl {
	dbDao := NewDbDao(db)
	return &UnifiedDBImpl{
		db:               db,
		dbDao:            dbDao,
		UserRepo:         NewUserRepo(dbDao),
		ContactRepo:      NewContactRepo(dbDao),
		PhoneNumberRepo:  NewPhoneNumberRepo(dbDao),
		PhotoRepo:        NewPhotoRepo(dbDao),
		UploadedFileRepo: NewUploadedFileRepo(dbDao),
	}
}

func (u *UnifiedDBImpl) InitMigrate() error {
	return u.dbDao.InitMigrate()
}

// GetDB 獲取資料庫連接
func (u *UnifiedDBImpl) GetDB() *gorm.DB {
	return u.db
}

func (u *UnifiedDBImpl) ExecTx(ctx context.Context, fn func(UnifiedDB) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUnifiedDB(tx))
	})
}

func (u *UnifiedDBImpl) Close() error {
	sqlDB, err := u.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var (
	_ UnifiedDB               = (*UnifiedDBImpl)(nil)
	_ IUserRepository         = (*UnifiedDBImpl)(nil)
	_ IContactRepository      = (*UnifiedDBImpl)(nil)
	_ IPhoneNumberRepository  = (*UnifiedDBImpl)(nil)
	_ IPhotoRepository        = (*UnifiedDBImpl)(nil)
	_ IUploadedFileRepository = (*UnifiedDBImpl)(nil)
)
