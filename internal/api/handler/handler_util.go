package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/phonebook/internal/api/dto"
	"github.com/RoyceAzure/lab/phonebook/internal/constants"
	"github.com/RoyceAzure/lab/phonebook/internal/model"
	"github.com/RoyceAzure/lab/phonebook/internal/util"
	api "github.com/RoyceAzure/lab/phonebook/internal/util/rj_api"
	er "github.com/RoyceAzure/lab/phonebook/internal/util/rj_error"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// writeServiceError 非預期錯誤記錄細節, 回應只帶通用訊息
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if er.CodeOf(err) == er.InternalErrorCode {
		log.Error().
			Err(err).
			Str("request_id", util.GetRequestIDFromContext(r.Context())).
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Msg("request failed")
	}
	api.WriteError(w, err)
}

// getUserID AuthMiddleware 之後一定有 payload
func getUserID(r *http.Request) (int64, error) {
	payload := util.GetTokenPayloadFromContext(r.Context())
	if payload == nil {
		return 0, er.New(er.UnauthenticatedCode, er.ErrStrMap[er.UnauthenticatedCode])
	}
	return payload.UserID, nil
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, er.Newf(er.BadRequestCode, "Invalid %s.", name)
	}
	return id, nil
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return er.New(er.BadRequestCode, "Invalid request body.")
	}
	return nil
}

// readUploadedFile 讀取 multipart 的 file 欄位
// 檔案大小由 storage 檢查, 這裡只多讀一個 byte 讓它判斷超過上限
func readUploadedFile(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadBody)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, "", er.New(er.BadRequestCode, "File size exceeds the limit of 5 MB.")
		}
		return nil, "", er.New(er.BadRequestCode, "No file uploaded.")
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(constants.PhotoFormField)
	if err != nil {
		return nil, "", er.New(er.BadRequestCode, "No file uploaded.")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, constants.MaxPhotoSize+1))
	if err != nil {
		return nil, "", er.Wrap(er.InternalErrorCode, err)
	}
	return data, header.Filename, nil
}

// writeFile 回傳原始檔案內容
func writeFile(w http.ResponseWriter, content *model.PhotoContent) {
	w.Header().Set("Content-Type", content.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(content.Data)))
	w.Header().Set("Content-Disposition", "inline; filename=\""+content.FileName+"\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content.Data)
}

func contactPhotoURL(contactID int64) string {
	return "/api/contacts/" + strconv.FormatInt(contactID, 10) + "/photo"
}

func convertUserModelToDTO(m *model.UserModel) dto.UserDTO {
	return dto.UserDTO{
		ID:       m.ID,
		Username: m.Username,
		Email:    m.Email,
	}
}

func convertPhoneModelToDTO(m *model.PhoneNumberModel) dto.PhoneNumberDTO {
	return dto.PhoneNumberDTO{
		ID:     m.ID,
		Number: m.Number,
	}
}

func convertPhotoModelToDTO(m *model.PhotoModel) dto.PhotoDTO {
	return dto.PhotoDTO{
		ID:        m.ID,
		ContactID: m.ContactID,
		FileName:  m.FileName,
		URL:       contactPhotoURL(m.ContactID),
		CreatedAt: m.CreatedAt,
	}
}

func convertContactModelToDTO(m *model.ContactModel) dto.ContactDTO {
	phones := make([]dto.PhoneNumberDTO, 0, len(m.PhoneNumbers))
	for i := range m.PhoneNumbers {
		phones = append(phones, convertPhoneModelToDTO(&m.PhoneNumbers[i]))
	}
	res := dto.ContactDTO{
		ID:           m.ID,
		Name:         m.Name,
		Address:      m.Address,
		PhoneNumbers: phones,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Photo != nil {
		res.PhotoURL = contactPhotoURL(m.ID)
	}
	return res
}

func convertContactModelsToDTO(ms []*model.ContactModel) []dto.ContactDTO {
	res := make([]dto.ContactDTO, 0, len(ms))
	for _, m := range ms {
		res = append(res, convertContactModelToDTO(m))
	}
	return res
}

func phoneInputsToNumbers(in []dto.PhoneNumberInputDTO) []string {
	res := make([]string, 0, len(in))
	for _, p := range in {
		res = append(res, p.Number)
	}
	return res
}
