package handler

import (
	"mime"
	"net/http"

	"github.com/RoyceAzure/lab/phonebook/internal/api/dto"
	"github.com/RoyceAzure/lab/phonebook/internal/model"
	"github.com/RoyceAzure/lab/phonebook/internal/service"
	api "github.com/RoyceAzure/lab/phonebook/internal/util/rj_api"
	er "github.com/RoyceAzure/lab/phonebook/internal/util/rj_error"
	"github.com/go-chi/chi/v5"
)

type PhotoHandler struct {
	photoService service.IPhotoService
}

func NewPhotoHandler(photoService service.IPhotoService) *PhotoHandler {
	if photoService == nil {
		panic("photoService cannot be nil")
	}
	return &PhotoHandler{
		photoService: photoService,
	}
}

// @Summary set contact photo
// @Description multipart upload in field "file", or JSON {"fileName"} to attach a file uploaded earlier. Replaces any existing photo.
// @Tags photos
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "contact id"
// @Param file formData file false "jpg, jpeg or png up to 5 MB"
// @Success 201 {object} dto.PhotoDTO "created"
// @Failure 400 {object} rj_api.ResponseError "BadRequestCode"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 404 {object} rj_api.ResponseError "NotFoundCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /contacts/{id}/photo [post]
func (p *PhotoHandler) SetContactPhoto(w http.ResponseWriter, r *http.Request) {
	userID, contactID, err := userAndContactID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var photo *model.PhotoModel
	if isJSONRequest(r) {
		var fileDTO dto.FileNameDTO
		if err := decodeJSON(r, &fileDTO); err != nil {
			writeServiceError(w, r, err)
			return
		}
		photo, err = p.photoService.AttachPhoto(r.Context(), userID, contactID, fileDTO.FileName)
	} else {
		data, name, readErr := readUploadedFile(w, r)
		if readErr != nil {
			writeServiceError(w, r, readErr)
			return
		}
		photo, err = p.photoService.UploadContactPhoto(r.Context(), userID, contactID, data, name)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.SuccessJSON(w, http.StatusCreated, convertPhotoModelToDTO(photo))
}

// @Summary get contact photo
// @Tags photos
// @Produce image/png
// @Produce image/jpeg
// @Security ApiKeyAuth
// @Param id path int true "contact id"
// @Success 200 {file} file "image bytes"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 404 {object} rj_api.ResponseError "NotFoundCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /contacts/{id}/photo [get]
func (p *PhotoHandler) GetContactPhoto(w http.ResponseWriter, r *http.Request) {
	userID, contactID, err := userAndContactID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	content, err := p.photoService.GetContactPhoto(r.Context(), userID, contactID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeFile(w, content)
}

// @Summary remove contact photo
// @Tags photos
// @Security ApiKeyAuth
// @Param id path int true "contact id"
// @Success 200 "removed"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 404 {object} rj_api.ResponseError "NotFoundCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /contacts/{id}/photo [delete]
func (p *PhotoHandler) RemoveContactPhoto(w http.ResponseWriter, r *http.Request) {
	userID, contactID, err := userAndContactID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := p.photoService.RemovePhoto(r.Context(), userID, contactID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// @Summary upload file
// @Description store a photo without attaching it, returns the stored name. Only the uploader can retrieve, attach or delete it.
// @Tags contact photos
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "jpg, jpeg or png up to 5 MB"
// @Success 200 {object} dto.FileNameDTO "stored"
// @Failure 400 {object} rj_api.ResponseError "BadRequestCode"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /contact_photos/uploadfile [post]
func (p *PhotoHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	data, name, err := readUploadedFile(w, r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	stored, err := p.photoService.UploadFile(r.Context(), userID, data, name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.SuccessJSON(w, http.StatusOK, dto.FileNameDTO{FileName: stored})
}

// @Summary retrieve file
// @Tags contact photos
// @Produce image/png
// @Produce image/jpeg
// @Security ApiKeyAuth
// @Param name path string true "stored file name"
// @Success 200 {file} file "image bytes"
// @Failure 400 {object} rj_api.ResponseError "BadRequestCode"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 404 {object} rj_api.ResponseError "NotFoundCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /contact_photos/retrievefile/{name} [get]
func (p *PhotoHandler) RetrieveFile(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	content, err := p.photoService.RetrieveFile(r.Context(), userID, chi.URLParam(r, "name"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeFile(w, content)
}

// @Summary delete file
// @Description delete a file the caller uploaded that is not attached to a contact
// @Tags contact photos
// @Security ApiKeyAuth
// @Param name path string true "stored file name"
// @Success 200 "removed"
// @Failure 400 {object} rj_api.ResponseError "BadRequestCode"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 404 {object} rj_api.ResponseError "NotFoundCode"
// @Failure 409 {object} rj_api.ResponseError "ConflictCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /contact_photos/deletefile/{name} [delete]
func (p *PhotoHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	removed, err := p.photoService.DeleteFile(r.Context(), userID, chi.URLParam(r, "name"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !removed {
		writeServiceError(w, r, er.New(er.NotFoundCode, "File not found."))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
