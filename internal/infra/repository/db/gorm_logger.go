package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// zerologWriter gorm logger 的輸出端, 寫到全域 zerolog logger
type zerologWriter struct{}

func (zerologWriter) Printf(format string, args ...interface{}) {
	log.Warn().Str("component", "gorm").Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// 查無資料是正常流程 (重複檢查), 不記錄
func newGormLogger() logger.Interface {
	return logger.New(zerologWriter{}, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
