package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/phonebook/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New 建立 process logger 並設為 zerolog/log 的 global logger
// 有設定 kafka 時回傳的 closer 需要在 shutdown 時關閉
func New(cf *config.Config) (*zerolog.Logger, io.Closer, error) {
	var (
		sink   io.Writer
		closer io.Closer = nopCloser{}
	)
	if brokers := cf.KafkaBrokers(); len(brokers) > 0 {
		kw, err := NewKafkaWriter(brokers, cf.LogKafkaTopic)
		if err != nil {
			return nil, nil, err
		}
		sink, closer = kw, kw
	}

	var out io.Writer = os.Stdout
	if cf.IsDebug() {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	logger := build(out, sink, cf.LogLevel)

	log.Logger = logger
	zerolog.SetGlobalLevel(logger.GetLevel())

	return &logger, closer, nil
}

func build(out io.Writer, sink io.Writer, level string) zerolog.Logger {
	w := out
	if sink != nil {
		w = zerolog.MultiLevelWriter(out, sink)
	}
	return zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("service", "phonebook").
		Logger()
}

func parseLevel(level string) zerolog.Level {
	lv, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lv == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lv
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
