package handler

import (
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/phonebook/internal/api/dto"
	"github.com/RoyceAzure/lab/phonebook/internal/model"
	"github.com/RoyceAzure/lab/phonebook/internal/service"
	api "github.com/RoyceAzure/lab/phonebook/internal/util/rj_api"
	er "github.com/RoyceAzure/lab/phonebook/internal/util/rj_error"
)

type ContactHandler struct {
	contactService service.IContactService
}

func NewContactHandler(contactService service.IContactService) *ContactHandler {
	if contactService == nil {
		panic("contactService cannot be nil")
	}
	return &ContactHandler{
		contactService: contactService,
	}
}

// @Summary list contacts
// @Description all contacts of the current user
// @Tags contacts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.ContactDTO "success"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /contacts [get]
func (c *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	contacts, err := c.contactService.ListContacts(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.SuccessJSON(w, http.StatusOK, convertContactModelsToDTO(contacts))
}

// @Summary search contacts
// @Description case-insensitive name search, blank term returns an empty list
// @Tags contacts
// @Produce json
// @Security ApiKeyAuth
// @Param searchTerm query string false "part of the name"
// @Param limit query int false "max results, default 10, max 100"
// @Success 200 {array} dto.ContactDTO "success"
// @Failure 400 {object} rj_api.ResponseError "BadRequestCode"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /contacts/search [get]
func (c *ContactHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	query := r.URL.Query()
	limit := 0
	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			writeServiceError(w, r, er.New(er.BadRequestCode, "Invalid limit."))
			return
		}
	}

	contacts, err := c.contactService.SearchContacts(r.Context(), userID, query.Get("searchTerm"), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.SuccessJSON(w, http.StatusOK, convertContactModelsToDTO(contacts))
}

// @Summary get contact
// @Tags contacts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "contact id"
// @Success 200 {object} dto.ContactDTO "success"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 404 {object} rj_api.ResponseError "NotFoundCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /contacts/{id} [get]
func (c *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, contactID, err := userAndContactID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	contact, err := c.contactService.GetContact(r.Context(), userID, contactID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.SuccessJSON(w, http.StatusOK, convertContactModelToDTO(contact))
}

// @Summary create contact
// @Tags contacts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param contact body dto.CreateContactDTO true "name, optional address and at least one phone number"
// @Success 201 {object} dto.ContactDTO "created"
// @Failure 400 {object} rj_api.ResponseError "BadRequestCode"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 409 {object} rj_api.ResponseError "ConflictCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /contacts [post]
func (c *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := getUserID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var createDTO dto.CreateContactDTO
	if err := decodeJSON(r, &createDTO); err != nil {
		writeServiceError(w, r, err)
		return
	}

	contact, err := c.contactService.AddContact(r.Context(), userID, &model.ContactInput{
		Name:         createDTO.Name,
		Address:      createDTO.Address,
		PhoneNumbers: phoneInputsToNumbers(createDTO.PhoneNumbers),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.SuccessJSON(w, http.StatusCreated, convertContactModelToDTO(contact))
}

// @Summary update contact
// @Description partial update, omitted fields stay unchanged
// @Tags contacts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "contact id"
// @Param contact body dto.UpdateContactDTO true "fields to change"
// @Success 200 {object} dto.ContactDTO "success"
// @Failure 400 {object} rj_api.ResponseError "BadRequestCode"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 404 {object} rj_api.ResponseError "NotFoundCode"
// @Failure 409 {object} rj_api.ResponseError "ConflictCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /contacts/{id} [put]
func (c *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, contactID, err := userAndContactID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var updateDTO dto.UpdateContactDTO
	if err := decodeJSON(r, &updateDTO); err != nil {
		writeServiceError(w, r, err)
		return
	}

	patch := &model.ContactPatch{
		Name:    updateDTO.Name,
		Address: updateDTO.Address,
	}
	if updateDTO.PhoneNumbers != nil {
		numbers := phoneInputsToNumbers(*updateDTO.PhoneNumbers)
		patch.PhoneNumbers = &numbers
	}

	contact, err := c.contactService.UpdateContact(r.Context(), userID, contactID, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.SuccessJSON(w, http.StatusOK, convertContactModelToDTO(contact))
}

// @Summary delete contact
// @Description deletes phones and photo too, returns the removed contact
// @Tags contacts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "contact id"
// @Success 200 {object} dto.ContactDTO "removed"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 404 {object} rj_api.ResponseError "NotFoundCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /contacts/{id} [delete]
func (c *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, contactID, err := userAndContactID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	contact, err := c.contactService.DeleteContact(r.Context(), userID, contactID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.SuccessJSON(w, http.StatusOK, convertContactModelToDTO(contact))
}

// @Summary add phone number
// @Tags phone numbers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "contact id"
// @Param phone body dto.PhoneNumberInputDTO true "number"
// @Success 201 {object} dto.PhoneNumberDTO "created"
// @Failure 400 {object} rj_api.ResponseError "BadRequestCode"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 404 {object} rj_api.ResponseError "NotFoundCode"
// @Failure 409 {object} rj_api.ResponseError "ConflictCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /contacts/{id}/phonenumbers [post]
func (c *ContactHandler) AddPhoneNumber(w http.ResponseWriter, r *http.Request) {
	userID, contactID, err := userAndContactID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var phoneDTO dto.PhoneNumberInputDTO
	if err := decodeJSON(r, &phoneDTO); err != nil {
		writeServiceError(w, r, err)
		return
	}

	phone, err := c.contactService.AddPhoneNumber(r.Context(), userID, contactID, phoneDTO.Number)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.SuccessJSON(w, http.StatusCreated, convertPhoneModelToDTO(phone))
}

// @Summary update phone number
// @Tags phone numbers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "contact id"
// @Param phoneId path int true "phone number id"
// @Param phone body dto.PhoneNumberInputDTO true "new number"
// @Success 200 {object} dto.PhoneNumberDTO "success"
// @Failure 400 {object} rj_api.ResponseError "BadRequestCode"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 404 {object} rj_api.ResponseError "NotFoundCode"
// @Failure 409 {object} rj_api.ResponseError "ConflictCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /contacts/{id}/phonenumbers/{phoneId} [put]
func (c *ContactHandler) UpdatePhoneNumber(w http.ResponseWriter, r *http.Request) {
	userID, contactID, err := userAndContactID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	phoneID, err := parseIDParam(r, "phoneId")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var phoneDTO dto.PhoneNumberInputDTO
	if err := decodeJSON(r, &phoneDTO); err != nil {
		writeServiceError(w, r, err)
		return
	}

	phone, err := c.contactService.UpdatePhoneNumber(r.Context(), userID, contactID, phoneID, phoneDTO.Number)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.SuccessJSON(w, http.StatusOK, convertPhoneModelToDTO(phone))
}

// @Summary delete phone number
// @Tags phone numbers
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "contact id"
// @Param phoneId path int true "phone number id"
// @Success 200 {object} dto.PhoneNumberDTO "removed"
// @Failure 400 {object} rj_api.ResponseError "BadRequestCode"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 404 {object} rj_api.ResponseError "NotFoundCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /contacts/{id}/phonenumbers/{phoneId} [delete]
func (c *ContactHandler) DeletePhoneNumber(w http.ResponseWriter, r *http.Request) {
	userID, contactID, err := userAndContactID(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	phoneID, err := parseIDParam(r, "phoneId")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	phone, err := c.contactService.DeletePhoneNumber(r.Context(), userID, contactID, phoneID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.SuccessJSON(w, http.StatusOK, convertPhoneModelToDTO(phone))
}

func userAndContactID(r *http.Request) (int64, int64, error) {
	userID, err := getUserID(r)
	if err != nil {
		return 0, 0, err
	}
	contactID, err := parseIDParam(r, "id")
	if err != nil {
		return 0, 0, err
	}
	return userID, contactID, nil
}
