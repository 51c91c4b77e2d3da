package appcontext

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/phonebook/internal/config"
	"github.com/RoyceAzure/lab/phonebook/internal/model"
	er "github.com/RoyceAzure/lab/phonebook/internal/util/rj_error"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func runDBMigration(migrationURL string, dbSource string) error {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		return err
	}
	defer migration.Close()

	return migration.Up()
}

// Migrate postgres 使用 sql migration, 其他 driver 使用 gorm AutoMigrate
func (app *ApplicationContext) Migrate() error {
	app.Logger.Info().Msg("Start setup db migration")
	if app.Cf.DbDriver == "postgres" {
		err := runDBMigration(app.Cf.MigrationURL, app.Cf.PostgresURL())
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("db migration failed: %w", err)
		}
	} else {
		if err := app.DbDao.InitMigrate(); err != nil {
			return fmt.Errorf("db migration failed: %w", err)
		}
	}
	app.Logger.Info().Msg("Finish setup db migration")
	return nil
}

// SeedData 依 yaml 建立預設用戶與聯絡人, 已存在的資料略過
func (app *ApplicationContext) SeedData(ctx context.Context, path string) error {
	app.Logger.Info().Str("file", path).Msg("Start seed data")
	seedCf, err := config.LoadSeedConfig(path)
	if err != nil {
		return err
	}

	for _, u := range seedCf.Users {
		userID, err := app.seedUser(ctx, u)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
		for _, c := range u.Contacts {
			if err := app.seedContact(ctx, userID, c); err != nil {
				return fmt.Errorf("seed contact %s: %w", c.Name, err)
			}
		}
	}
	app.Logger.Info().Int("users", len(seedCf.Users)).Msg("Finish seed data")
	return nil
}

func (app *ApplicationContext) seedUser(ctx context.Context, u config.SeedUser) (int64, error) {
	user, err := app.UserService.Register(ctx, u.Username, u.Email, u.Password)
	if err == nil {
		return user.ID, nil
	}
	if !er.IsCode(err, er.ConflictCode) {
		return 0, err
	}
	existing, err := app.DbDao.GetUserByUsername(ctx, u.Username)
	if err != nil {
		return 0, err
	}
	app.Logger.Debug().Str("username", u.Username).Msg("seed user exists, skip")
	return existing.ID, nil
}

func (app *ApplicationContext) seedContact(ctx context.Context, userID int64, c config.SeedContact) error {
	input := &model.ContactInput{
		Name:         c.Name,
		PhoneNumbers: c.PhoneNumbers,
	}
	if c.Address != "" {
		address := c.Address
		input.Address = &address
	}
	_, err := app.ContactService.AddContact(ctx, userID, input)
	if er.IsCode(err, er.ConflictCode) {
		app.Logger.Debug().Str("contact", c.Name).Msg("seed contact exists, skip")
		return nil
	}
	return err
}
