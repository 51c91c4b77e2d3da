package appcontext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/RoyceAzure/lab/phonebook/internal/config"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/auth/token"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/logger"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/redis_client"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/storage"
	"github.com/RoyceAzure/lab/phonebook/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf             *config.Config
	Logger         *zerolog.Logger
	logCloser      io.Closer
	DbDao          db.UnifiedDB
	TokenMaker     token.Maker
	PhotoStore     storage.PhotoStore
	RedisClient    *redis.Client
	AuthLimiter    ratelimit.Limiter
	UserService    service.IUserService
	AuthService    service.IAuthService
	ContactService service.IContactService
	PhotoService   service.IPhotoService
}

// NewApplicationContext 完整的 api server 依賴
func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	app := &ApplicationContext{
		Cf: cf,
	}
	if err := app.Init(); err != nil {
		app.Shutdown(context.Background())
		return nil, err
	}
	return app, nil
}

// NewMigrationContext 只建立 migration 與 seed 需要的部分
func NewMigrationContext(cf *config.Config) (*ApplicationContext, error) {
	app := &ApplicationContext{
		Cf: cf,
	}
	steps := []func() error{
		app.setUpLogger,
		app.setUpdbDao,
		app.setUpPhotoStore,
		app.setUpUserService,
		app.setUpContactService,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			app.Shutdown(context.Background())
			return nil, err
		}
	}
	return app, nil
}

func (app *ApplicationContext) Init() error {
	steps := []func() error{
		app.setUpLogger,
		app.setUpdbDao,
		app.setUpAutoMigrate,
		app.setUpTokenMaker,
		app.setUpPhotoStore,
		app.setUpRateLimiter,
		app.setUpUserService,
		app.setUpAuthService,
		app.setUpContactService,
		app.setUpPhotoService,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (app *ApplicationContext) setUpLogger() error {
	l, closer, err := logger.New(app.Cf)
	if err != nil {
		return err
	}
	app.Logger = l
	app.logCloser = closer
	app.logConfig()
	return nil
}

// logConfig 印出設定, 密碼類欄位遮蔽
func (app *ApplicationContext) logConfig() {
	v := reflect.ValueOf(*app.Cf)
	t := v.Type()
	event := app.Logger.Debug()
	for i := 0; i < v.NumField(); i++ {
		key := t.Field(i).Tag.Get("mapstructure")
		value := fmt.Sprintf("%v", v.Field(i).Interface())
		if isSecretKey(key) && value != "" {
			value = "******"
		}
		event = event.Str(key, value)
	}
	event.Msg("config loaded")
}

func isSecretKey(key string) bool {
	for _, s := range []string{"PASSWORD", "SECRET", "DSN"} {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}

func (app *ApplicationContext) setUpdbDao() error {
	app.Logger.Info().Msg("Start setup database connection")
	var (
		conn *gorm.DB
		err  error
	)
	switch app.Cf.DbDriver {
	case "postgres":
		conn, err = db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	case "mysql":
		conn, err = db.GetMysqlConn(app.Cf.MysqlDsn)
	case "sqlite":
		conn, err = db.GetSqliteConn(app.Cf.SqlitePath)
	default:
		err = fmt.Errorf("unsupported DB_DRIVER %q", app.Cf.DbDriver)
	}
	if err != nil {
		return err
	}
	app.DbDao = db.NewUnifiedDB(conn)
	app.Logger.Info().Str("driver", app.Cf.DbDriver).Msg("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpAutoMigrate() error {
	if !app.Cf.AutoMigrate {
		return nil
	}
	return app.Migrate()
}

func (app *ApplicationContext) setUpTokenMaker() error {
	app.Logger.Info().Msg("Start setup token maker")
	tokenMaker, err := token.NewJWTMaker(app.Cf.JwtSecret, app.Cf.JwtIssuer, app.Cf.JwtAudience)
	if err != nil {
		return fmt.Errorf("無法創建 token maker: %w", err)
	}
	app.TokenMaker = tokenMaker
	app.Logger.Info().Msg("Finish setup token maker")
	return nil
}

func (app *ApplicationContext) setUpPhotoStore() error {
	app.Logger.Info().Msg("Start setup photo store")
	switch app.Cf.PhotoBackend {
	case "s3":
		s3Store, err := storage.NewS3Store(context.Background(), app.Cf.S3Region, app.Cf.S3Endpoint, app.Cf.S3Bucket, app.Cf.S3Prefix)
		if err != nil {
			return err
		}
		app.PhotoStore = s3Store
	default:
		localStore, err := storage.NewLocalStore(app.Cf.UploadDir)
		if err != nil {
			return err
		}
		app.PhotoStore = localStore
	}
	app.Logger.Info().Str("backend", app.Cf.PhotoBackend).Msg("Finish setup photo store")
	return nil
}

func (app *ApplicationContext) setUpRateLimiter() error {
	app.Logger.Info().Msg("Start setup auth rate limiter")
	limiterType := ratelimit.LimiterType(app.Cf.AuthRateLimitType)
	var client ratelimit.RedisClient
	if limiterType == ratelimit.RedisBucket {
		redisClient, err := redis_client.GetRedisClient(context.Background(), app.Cf.RedisAddr, redis_client.WithPassword(app.Cf.RedisPassword))
		if err != nil {
			return err
		}
		app.RedisClient = redisClient
		client = redisClient
	}

	limiter, err := ratelimit.NewLimiter(limiterType, ratelimit.LimiterConfig{
		Capacity: app.Cf.AuthRateCapacity,
		RatePS:   float64(app.Cf.AuthRatePerSec),
	}, client)
	if err != nil {
		return err
	}
	app.AuthLimiter = limiter
	app.Logger.Info().Str("type", string(limiterType)).Msg("Finish setup auth rate limiter")
	return nil
}

func (app *ApplicationContext) setUpUserService() error {
	app.Logger.Info().Msg("Start setup user service")
	app.UserService = service.NewUserService(app.DbDao)
	app.Logger.Info().Msg("Finish setup user service")
	return nil
}

func (app *ApplicationContext) setUpAuthService() error {
	app.Logger.Info().Msg("Start setup auth service")
	app.AuthService = service.NewAuthService(app.DbDao, app.TokenMaker, app.Cf.TokenDuration())
	app.Logger.Info().Msg("Finish setup auth service")
	return nil
}

func (app *ApplicationContext) setUpContactService() error {
	app.Logger.Info().Msg("Start setup contact service")
	app.ContactService = service.NewContactService(app.DbDao, app.PhotoStore)
	app.Logger.Info().Msg("Finish setup contact service")
	return nil
}

func (app *ApplicationContext) setUpPhotoService() error {
	app.Logger.Info().Msg("Start setup photo service")
	app.PhotoService = service.NewPhotoService(app.DbDao, app.PhotoStore)
	app.Logger.Info().Msg("Finish setup photo service")
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		var errs []error

		if app.AuthLimiter != nil {
			app.AuthLimiter.Stop()
		}

		if app.RedisClient != nil {
			if err := redis_client.CloseAll(); err != nil {
				errs = append(errs, fmt.Errorf("close redis: %w", err))
			}
		}

		// 關閉 DB
		if app.DbDao != nil {
			if err := app.DbDao.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close database: %w", err))
			}
		}

		if app.Logger != nil {
			app.Logger.Info().Msg("Application shutdown complete")
		}
		// 關閉 logger
		if app.logCloser != nil {
			if err := app.logCloser.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close logger: %w", err))
			}
		}
		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
