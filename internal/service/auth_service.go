package service

import (
	"context"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/phonebook/internal/infra/auth/crypt"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/auth/token"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/phonebook/internal/model"
	er "github.com/RoyceAzure/lab/phonebook/internal/util/rj_error"
)

const invalidCredentialMsg = "Invalid username or password."

type IAuthService interface {
	// Login 帳號密碼登入, 成功回傳 access token
	// 參數:
	//   - ctx: 上下文
	//   - username: 帳號
	//   - password: 密碼明文
	//
	// 錯誤:
	//   - er.UnauthenticatedCode 401: 帳號不存在或密碼錯誤
	//   - er.InternalErrorCode 500: 內部處理錯誤
	Login(ctx context.Context, username, password string) (*model.LoginResult, error)
}

type AuthService struct {
	dbDao         db.UnifiedDB
	tokenMaker    token.Maker
	tokenDuration time.Duration
}

func NewAuthService(dbDao db.UnifiedDB, tokenMaker token.Maker, tokenDuration time.Duration) IAuthService {
	if dbDao == nil {
		panic("dbDao cannot be nil")
	}
	if tokenMaker == nil {
		panic("tokenMaker cannot be nil")
	}
	return &AuthService{
		dbDao:         dbDao,
		tokenMaker:    tokenMaker,
		tokenDuration: tokenDuration,
	}
}

func (a *AuthService) Login(ctx context.Context, username, password string) (*model.LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, er.New(er.UnauthenticatedCode, invalidCredentialMsg)
	}

	user, err := a.dbDao.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, er.New(er.UnauthenticatedCode, invalidCredentialMsg)
		}
		return nil, er.Wrap(er.InternalErrorCode, err)
	}

	if err := crypt.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, er.New(er.UnauthenticatedCode, invalidCredentialMsg)
	}

	accessToken, payload, err := a.tokenMaker.CreateToken(user.ID, user.Username, a.tokenDuration)
	if err != nil {
		return nil, er.Wrap(er.InternalErrorCode, err)
	}

	return &model.LoginResult{
		AccessToken: accessToken,
		ExpiredAt:   payload.ExpiredAt,
		User:        convertRepoUserToModel(user),
	}, nil
}
