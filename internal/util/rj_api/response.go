package rj_api

import (
	"encoding/json"
	"errors"
	"net/http"

	er "github.com/RoyceAzure/lab/phonebook/internal/util/rj_error"
)

// ResponseError 錯誤回應格式
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// SuccessJSON data 直接作為 body
func SuccessJSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

func ErrorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ResponseError{
		Code:    status,
		Message: message,
	})
}

// WriteError 依 AnaError code 回應, 其他錯誤一律 500 且不帶細節
func WriteError(w http.ResponseWriter, err error) {
	var anaErr *er.AnaError
	if errors.As(err, &anaErr) {
		msg := anaErr.Message
		if anaErr.Code == er.InternalErrorCode || msg == "" {
			msg = er.ErrStrMap[anaErr.Code]
		}
		ErrorJSON(w, int(anaErr.Code), msg)
		return
	}
	ErrorJSON(w, int(er.InternalErrorCode), er.ErrStrMap[er.InternalErrorCode])
}
