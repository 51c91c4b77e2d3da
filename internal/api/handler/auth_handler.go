package handler

import (
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/phonebook/internal/api/dto"
	"github.com/RoyceAzure/lab/phonebook/internal/service"
	api "github.com/RoyceAzure/lab/phonebook/internal/util/rj_api"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
	}
}

// @Summary username and password login
// @Description use username and password to get a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginInfo body dto.LoginDTO true "username and password"
// @Success 200 {object} dto.LoginResponse "success"
// @Failure 400 {object} rj_api.ResponseError "BadRequestCode"
// @Failure 401 {object} rj_api.ResponseError "UnauthenticatedCode"
// @Failure 429 {object} rj_api.ResponseError "TooManyRequestsCode"
// @Failure 500 {object} rj_api.ResponseError "Internal server error"
// @Router /auth/login [post]
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginDTO dto.LoginDTO
	if err := decodeJSON(r, &loginDTO); err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := a.authService.Login(r.Context(), loginDTO.Username, loginDTO.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	api.SuccessJSON(w, http.StatusOK, dto.LoginResponse{
		Token:     res.AccessToken,
		ExpiresIn: int(time.Until(res.ExpiredAt).Round(time.Second).Seconds()),
	})
}
