package rj_error

import (
	"errors"
	"fmt"
)

type ErrorCode int

// 錯誤碼與 http status 對齊, handler 直接轉換
const (
	BadRequestCode      ErrorCode = 400
	UnauthenticatedCode ErrorCode = 401
	UnauthorizedCode    ErrorCode = 403
	NotFoundCode        ErrorCode = 404
	ConflictCode        ErrorCode = 409
	TooManyRequestsCode ErrorCode = 429
	InternalErrorCode   ErrorCode = 500
)

var ErrStrMap = map[ErrorCode]string{
	BadRequestCode:      "bad request",
	UnauthenticatedCode: "unauthenticated",
	UnauthorizedCode:    "unauthorized",
	NotFoundCode:        "not found",
	ConflictCode:        "conflict",
	TooManyRequestsCode: "too many requests",
	InternalErrorCode:   "internal server error",
}

// AnaError 應用層預期錯誤, Message 可直接回給 client
// Err 為底層錯誤, 只寫入 log
type AnaError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func New(code ErrorCode, msg string) *AnaError {
	return &AnaError{
		Code:    code,
		Message: msg,
	}
}

func Newf(code ErrorCode, format string, args ...any) *AnaError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap 包裝非預期錯誤, Message 使用預設字串
func Wrap(code ErrorCode, err error) *AnaError {
	return &AnaError{
		Code:    code,
		Message: ErrStrMap[code],
		Err:     err,
	}
}

func (e *AnaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("code: %d, message: %s, err: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("code: %d, message: %s", e.Code, e.Message)
}

func (e *AnaError) Unwrap() error {
	return e.Err
}

// CodeOf 取得錯誤碼, 非 AnaError 一律視為 InternalErrorCode
func CodeOf(err error) ErrorCode {
	var anaErr *AnaError
	if errors.As(err, &anaErr) {
		return anaErr.Code
	}
	return InternalErrorCode
}

func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
