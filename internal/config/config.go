package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/phonebook/internal/constants"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	viper "github.com/spf13/viper"
)

/*
把init config跟read config分開
init : 需要設置viper watch 與 onConfigChange
read : 一般讀寫  需要使用讀寫鎖
*/
var config_singleton *ConfigSingleTon
var muonce sync.Once

type ConfigSingleTon struct {
	Config *Config
	v      *viper.Viper
	mu     sync.RWMutex
}

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	Env        string `mapstructure:"ENV"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	DbDriver     string `mapstructure:"DB_DRIVER"`
	DbName       string `mapstructure:"POSTGRES_DB"`
	DbHost       string `mapstructure:"POSTGRES_HOST"`
	DbPort       string `mapstructure:"POSTGRES_PORT"`
	DbUser       string `mapstructure:"POSTGRES_USER"`
	DbPas        string `mapstructure:"POSTGRES_PASSWORD"`
	MysqlDsn     string `mapstructure:"MYSQL_DSN"`
	SqlitePath   string `mapstructure:"SQLITE_PATH"`
	MigrationURL string `mapstructure:"MIGRATION_URL"`
	AutoMigrate  bool   `mapstructure:"AUTO_MIGRATE"`
	SeedFile     string `mapstructure:"SEED_FILE"`

	JwtSecret            string `mapstructure:"JWT_SECRET"`
	JwtIssuer            string `mapstructure:"JWT_ISSUER"`
	JwtAudience          string `mapstructure:"JWT_AUDIENCE"`
	TokenDurationMinutes int    `mapstructure:"TOKEN_DURATION_MINUTES"`

	PhotoBackend string `mapstructure:"PHOTO_BACKEND"`
	UploadDir    string `mapstructure:"UPLOAD_DIR"`
	S3Bucket     string `mapstructure:"S3_BUCKET"`
	S3Prefix     string `mapstructure:"S3_PREFIX"`
	S3Region     string `mapstructure:"S3_REGION"`
	S3Endpoint   string `mapstructure:"S3_ENDPOINT"`

	CorsAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	StaticDir          string `mapstructure:"STATIC_DIR"`

	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	AuthRateLimitType string `mapstructure:"AUTH_RATE_LIMIT_TYPE"`
	AuthRateCapacity  int    `mapstructure:"AUTH_RATE_CAPACITY"`
	AuthRatePerSec    int    `mapstructure:"AUTH_RATE_PER_SEC"`

	LogKafkaBrokers string `mapstructure:"LOG_KAFKA_BROKERS"`
	LogKafkaTopic   string `mapstructure:"LOG_KAFKA_TOPIC"`
}

var defaults = map[string]any{
	"SERVER_PORT":            "8080",
	"ENV":                    string(constants.Dev),
	"LOG_LEVEL":              "info",
	"DB_DRIVER":              "postgres",
	"POSTGRES_DB":            "phonebook",
	"POSTGRES_HOST":          "localhost",
	"POSTGRES_PORT":          "5432",
	"POSTGRES_USER":          "postgres",
	"POSTGRES_PASSWORD":      "",
	"MYSQL_DSN":              "",
	"SQLITE_PATH":            "phonebook.db",
	"MIGRATION_URL":          "file://internal/infra/repository/db/migrations",
	"AUTO_MIGRATE":           false,
	"SEED_FILE":              "docs/seed.yaml",
	"JWT_SECRET":             "",
	"JWT_ISSUER":             "phonebook",
	"JWT_AUDIENCE":           "phonebook-spa",
	"TOKEN_DURATION_MINUTES": constants.DefaultTokenDurationMinutes,
	"PHOTO_BACKEND":          "local",
	"UPLOAD_DIR":             constants.DefaultUploadDir,
	"S3_BUCKET":              "",
	"S3_PREFIX":              "photos/",
	"S3_REGION":              "us-east-1",
	"S3_ENDPOINT":            "",
	"CORS_ALLOWED_ORIGINS":   "http://localhost:3000,http://localhost:5173",
	"STATIC_DIR":             "",
	"REDIS_ADDR":             "",
	"REDIS_PASSWORD":         "",
	"AUTH_RATE_LIMIT_TYPE":   "token_bucket",
	"AUTH_RATE_CAPACITY":     20,
	"AUTH_RATE_PER_SEC":      5,
	"LOG_KAFKA_BROKERS":      "",
	"LOG_KAFKA_TOPIC":        "phonebook-log",
}

func GetConfig() *Config {
	initConfig()
	config_singleton.mu.RLock()
	defer config_singleton.mu.RUnlock()
	return config_singleton.Config
}

func initConfig() {
	muonce.Do(func() {
		config_singleton = &ConfigSingleTon{v: viper.New()}
		path := os.Getenv("CONFIG_PATH")
		if path == "" {
			path = ".env"
		}
		cf, fileLoaded, err := loadConfig(config_singleton.v, path)
		if err != nil {
			log.Fatal().Err(err).Msg("error read config")
		}
		config_singleton.Config = cf

		if !fileLoaded {
			return
		}
		config_singleton.v.OnConfigChange(func(e fsnotify.Event) {
			config_singleton.mu.Lock()
			defer config_singleton.mu.Unlock()
			if err := config_singleton.v.Unmarshal(config_singleton.Config); err != nil {
				log.Error().Err(err).Str("file", e.Name).Msg("failed to reload config file")
				return
			}
			log.Info().Str("file", e.Name).Msg("config reloaded")
		})
		config_singleton.v.WatchConfig()
	})
}

/*
單純回傳錯誤  由外部決定要不要Fatal
檔案不存在時只使用預設值與環境變數
*/
func loadConfig(v *viper.Viper, path string) (cf *Config, fileLoaded bool, err error) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, err
		}
		err = nil
	} else {
		fileLoaded = true
	}

	cf = &Config{}
	if err = v.Unmarshal(cf); err != nil {
		return nil, false, err
	}
	return cf, fileLoaded, nil
}

// LoadConfig 讀取指定檔案, 不進入 singleton, 給 cli 與測試使用
func LoadConfig(path string) (*Config, error) {
	cf, _, err := loadConfig(viper.New(), path)
	return cf, err
}

// AllowedOrigins CORS 允許來源
func (c *Config) AllowedOrigins() []string {
	return splitAndTrim(c.CorsAllowedOrigins)
}

func (c *Config) KafkaBrokers() []string {
	return splitAndTrim(c.LogKafkaBrokers)
}

func (c *Config) IsDebug() bool {
	return c.Env == string(constants.Debug) || c.Env == string(constants.Dev)
}

// Validate 啟動前檢查必要設定
func (c *Config) Validate() error {
	if len(c.JwtSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.TokenDurationMinutes <= 0 {
		return fmt.Errorf("TOKEN_DURATION_MINUTES must be positive, got %d", c.TokenDurationMinutes)
	}
	switch c.DbDriver {
	case "postgres", "sqlite":
	case "mysql":
		if c.MysqlDsn == "" {
			return fmt.Errorf("MYSQL_DSN is required when DB_DRIVER=mysql")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DbDriver)
	}
	switch c.PhotoBackend {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when PHOTO_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unsupported PHOTO_BACKEND %q", c.PhotoBackend)
	}
	return nil
}

// PostgresURL golang-migrate 使用的連線字串, pgx5 driver
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=disable", c.DbUser, c.DbPas, c.DbHost, c.DbPort, c.DbName)
}

func (c *Config) TokenDuration() time.Duration {
	return time.Duration(c.TokenDurationMinutes) * time.Minute
}

func splitAndTrim(s string) []string {
	res := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			res = append(res, p)
		}
	}
	return res
}
