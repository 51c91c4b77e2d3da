package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/phonebook/internal/api/dto"
	"github.com/RoyceAzure/lab/phonebook/internal/service"
	api "github.com/RoyceAzure/lab/phonebook/internal/util/rj_api"
)

type UserHandler struct {
	userService service.IUserService
}

func NewUserHandler(userService service.IUserService) *UserHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &UserHandler{
		userService: userService,
	}
}

// @Summary register
// @Description create a new account
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.RegisterDTO true "username, email and password"
// @Success 201 {object} dto.UserDTO "created"
// @Failure 400 {object} rj_api.ResponseError "BadRequestCode"
// @Failure 409 {object} rj_api.ResponseError "ConflictCode"
// @Failure 429 {object} rj_api.ResponseError "TooManyRequestsCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /users/register [post]
func (u *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var registerDTO dto.RegisterDTO
	if err := decodeJSON(r, &registerDTO); err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := u.userService.Register(r.Context(), registerDTO.Username, registerDTO.Email, registerDTO.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	api.SuccessJSON(w, http.StatusCreated, convertUserModelToDTO(user))
}
