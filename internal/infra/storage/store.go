package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/RoyceAzure/lab/phonebook/internal/constants"
	"github.com/google/uuid"
)

var (
	ErrFileNotFound        = errors.New("file not found")
	ErrExtensionNotAllowed = fmt.Errorf("extension not allowed (%s)", strings.Join(constants.AllowedPhotoExtensions, ","))
	ErrFileTooLarge        = fmt.Errorf("file size exceeds the limit of %d MB", constants.MaxPhotoSize/(1024*1024))
	ErrEmptyFile           = errors.New("no file uploaded")
	ErrInvalidFileName     = errors.New("invalid file name")
)

// PhotoStore 照片檔案存放區, 與資料庫的 photo row 分開管理
type PhotoStore interface {
	// Store 驗證後寫入, 回傳存放區內的檔名 (<uuid><ext>)
	Store(ctx context.Context, data []byte, originalName string) (string, error)
	// Retrieve 不存在回傳 ErrFileNotFound
	Retrieve(ctx context.Context, name string) ([]byte, error)
	// Remove 不存在時回傳 false, nil
	Remove(ctx context.Context, name string) (bool, error)
	Exists(ctx context.Context, name string) (bool, error)
}

// ValidateUpload 檢查副檔名與大小, 回傳小寫副檔名
func ValidateUpload(data []byte, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !slices.Contains(constants.AllowedPhotoExtensions, ext) {
		return "", ErrExtensionNotAllowed
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if int64(len(data)) > constants.MaxPhotoSize {
		return "", ErrFileTooLarge
	}
	return ext, nil
}

// ValidateFileName 只接受存放區內的單純檔名
func ValidateFileName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) ||
		strings.Contains(name, "..") ||
		filepath.Base(name) != name {
		return ErrInvalidFileName
	}
	return nil
}

func newFileName(ext string) string {
	return uuid.New().String() + ext
}

// ContentType 依副檔名決定 MIME
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
