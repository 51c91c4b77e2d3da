package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/phonebook/internal/constants"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/auth/crypt"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db"
	dbmodel "github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/phonebook/internal/model"
	er "github.com/RoyceAzure/lab/phonebook/internal/util/rj_error"
)

type IUserService interface {
	// Register 註冊新用戶
	// 參數:
	//   - ctx: 上下文
	//   - username: 帳號, 3~20 字元
	//   - email: 信箱
	//   - password: 密碼明文, 至少 6 字元
	//
	// 錯誤:
	//   - er.BadRequestCode 400: 欄位格式錯誤
	//   - er.ConflictCode 409: 信箱或帳號已存在
	//   - er.InternalErrorCode 500: 內部處理錯誤
	Register(ctx context.Context, username, email, password string) (*model.UserModel, error)
	GetUserByID(ctx context.Context, id int64) (*model.UserModel, error)
}

type UserService struct {
	dbDao db.UnifiedDB
}

func NewUserService(dbDao db.UnifiedDB) IUserService {
	if dbDao == nil {
		panic("dbDao cannot be nil")
	}
	return &UserService{
		dbDao: dbDao,
	}
}

func (u *UserService) Register(ctx context.Context, username, email, password string) (*model.UserModel, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := validateRegister(username, email, password); err != nil {
		return nil, err
	}

	// 檢查email是否已存在
	if _, err := u.dbDao.GetUserByEmail(ctx, email); err == nil {
		return nil, er.New(er.ConflictCode, "Email already exists!")
	} else if !db.IsNotFound(err) {
		return nil, er.Wrap(er.InternalErrorCode, err)
	}

	if _, err := u.dbDao.GetUserByUsername(ctx, username); err == nil {
		return nil, er.New(er.ConflictCode, "Username already exists!")
	} else if !db.IsNotFound(err) {
		return nil, er.Wrap(er.InternalErrorCode, err)
	}

	hashPassword, err := crypt.HashPassword(password)
	if err != nil {
		return nil, er.Wrap(er.InternalErrorCode, err)
	}

	userEntity, err := u.dbDao.CreateUser(ctx, &dbmodel.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashPassword,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// 同時註冊時由唯一索引擋下
		if db.IsUniqueViolation(err) {
			return nil, er.New(er.ConflictCode, "Username or email already exists!")
		}
		return nil, er.Wrap(er.InternalErrorCode, err)
	}

	return convertRepoUserToModel(userEntity), nil
}

func (u *UserService) GetUserByID(ctx context.Context, id int64) (*model.UserModel, error) {
	userEntity, err := u.dbDao.GetUserByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, er.Newf(er.NotFoundCode, "User with id %d was not found!", id)
		}
		return nil, er.Wrap(er.InternalErrorCode, err)
	}
	return convertRepoUserToModel(userEntity), nil
}

func validateRegister(username, email, password string) error {
	if l := len([]rune(username)); l < constants.MinUsernameLength || l > constants.MaxUsernameLength {
		return er.Newf(er.BadRequestCode, "Username must be between %d and %d characters.", constants.MinUsernameLength, constants.MaxUsernameLength)
	}
	if email == "" {
		return er.New(er.BadRequestCode, "Email is required.")
	}
	if len(email) > constants.MaxEmailLength {
		return er.Newf(er.BadRequestCode, "Email cannot exceed %d characters.", constants.MaxEmailLength)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return er.New(er.BadRequestCode, "Invalid email format.")
	}
	if len(password) < constants.MinPasswordLength {
		return er.Newf(er.BadRequestCode, "Password must be at least %d characters long.", constants.MinPasswordLength)
	}
	if len(password) > constants.MaxPasswordLength {
		return er.Newf(er.BadRequestCode, "Password cannot exceed %d bytes.", constants.MaxPasswordLength)
	}
	return nil
}

// 將 repository 模型轉換為服務層模型
func convertRepoUserToModel(u *dbmodel.User) *model.UserModel {
	return &model.UserModel{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
