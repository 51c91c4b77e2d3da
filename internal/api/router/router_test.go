package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/phonebook/internal/api"
	"github.com/RoyceAzure/lab/phonebook/internal/api/dto"
	"github.com/RoyceAzure/lab/phonebook/internal/api/handler"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/auth/token"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/storage"
	"github.com/RoyceAzure/lab/phonebook/internal/service"
	rj_api "github.com/RoyceAzure/lab/phonebook/internal/util/rj_api"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RouterTestSuite struct {
	suite.Suite
	router    *chi.Mux
	store     *db.UnifiedDBImpl
	staticDir string
}

func (s *RouterTestSuite) SetupTest() {
	t := s.T()
	conn, err := db.GetSqliteConn(filepath.Join(t.TempDir(), "router_test.db"))
	require.NoError(t, err)
	s.store = db.NewUnifiedDB(conn)
	require.NoError(t, s.store.InitMigrate())
	t.Cleanup(func() { s.store.Close() })

	photoStore, err := storage.NewLocalStore(filepath.Join(t.TempDir(), "Uploads"))
	require.NoError(t, err)

	maker, err := token.NewJWTMaker("01234567890123456789012345678901", "phonebook", "phonebook-spa")
	require.NoError(t, err)

	s.staticDir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(s.staticDir, "index.html"), []byte("<html>spa</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(s.staticDir, "app.js"), []byte("console.log(1)"), 0o644))

	limiter, err := ratelimit.NewLimiter(ratelimit.FixedWindow, ratelimit.LimiterConfig{Capacity: 20, RefillRate: time.Hour}, nil)
	require.NoError(t, err)
	t.Cleanup(limiter.Stop)

	server := api.NewServer(
		handler.NewAuthHandler(service.NewAuthService(s.store, maker, time.Hour)),
		handler.NewUserHandler(service.NewUserService(s.store)),
		handler.NewContactHandler(service.NewContactService(s.store, photoStore)),
		handler.NewPhotoHandler(service.NewPhotoService(s.store, photoStore)),
	)
	logger := zerolog.Nop()
	s.router = SetupRouter(server, maker, &logger, Options{
		AllowedOrigins: []string{"http://localhost:5173"},
		StaticDir:      s.staticDir,
		AuthLimiter:    limiter,
	})
}

func (s *RouterTestSuite) do(method, path, accessToken string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) upload(path, accessToken, fileName string, data []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	require.NoError(s.T(), err)
	_, err = part.Write(data)
	require.NoError(s.T(), err)
	require.NoError(s.T(), mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *RouterTestSuite) registerAndLogin(username string) string {
	rec := s.do(http.MethodPost, "/api/users/register", "", dto.RegisterDTO{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret1",
	})
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/auth/login", "", dto.LoginDTO{Username: username, Password: "secret1"})
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
	login := decode[dto.LoginResponse](s.T(), rec)
	require.NotEmpty(s.T(), login.Token)
	require.InDelta(s.T(), 3600, login.ExpiresIn, 2)
	return login.Token
}

func (s *RouterTestSuite) TestContactScenario() {
	t := s.T()
	rec := s.do(http.MethodPost, "/api/users/register", "", dto.RegisterDTO{Username: "admin", Email: "admin@example.com", Password: "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	user := decode[dto.UserDTO](t, rec)
	require.Equal(t, "admin", user.Username)
	require.NotZero(t, user.ID)

	rec = s.do(http.MethodPost, "/api/users/register", "", dto.RegisterDTO{Username: "admin2", Email: "admin@example.com", Password: "secret1"})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "Email already exists!", decode[rj_api.ResponseError](t, rec).Message)

	rec = s.do(http.MethodPost, "/api/auth/login", "", dto.LoginDTO{Username: "admin", Password: "wrong!"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/login", "", dto.LoginDTO{Username: "admin", Password: "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	accessToken := decode[dto.LoginResponse](t, rec).Token

	rec = s.do(http.MethodPost, "/api/contacts", accessToken, dto.CreateContactDTO{
		Name:         "Ivan Ivanov",
		PhoneNumbers: []dto.PhoneNumberInputDTO{{Number: "0888123456"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[dto.ContactDTO](t, rec)
	require.NotZero(t, created.ID)

	contactPath := fmt.Sprintf("/api/contacts/%d", created.ID)
	rec = s.do(http.MethodGet, contactPath, accessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[dto.ContactDTO](t, rec)
	require.Equal(t, "Ivan Ivanov", got.Name)
	require.Len(t, got.PhoneNumbers, 1)
	require.Equal(t, "0888123456", got.PhoneNumbers[0].Number)
	require.Empty(t, got.PhotoURL)

	rec = s.do(http.MethodDelete, contactPath, accessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, created.ID, decode[dto.ContactDTO](t, rec).ID)

	rec = s.do(http.MethodGet, contactPath, accessToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[rj_api.ResponseError](t, rec)
	require.Equal(t, http.StatusNotFound, body.Code)
}

func (s *RouterTestSuite) TestRequiresToken() {
	rec := s.do(http.MethodGet, "/api/contacts", "", nil)
	require.Equal(s.T(), http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/contacts", "not-a-token", nil)
	require.Equal(s.T(), http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/contact_photos/retrievefile/a.png", "", nil)
	require.Equal(s.T(), http.StatusUnauthorized, rec.Code)
}

func (s *RouterTestSuite) TestContactsAreScopedToUser() {
	t := s.T()
	u1 := s.registerAndLogin("alice")
	u2 := s.registerAndLogin("bobby")

	rec := s.do(http.MethodPost, "/api/contacts", u1, dto.CreateContactDTO{
		Name:         "Dragan Ivanov",
		PhoneNumbers: []dto.PhoneNumberInputDTO{{Number: "0888000000"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[dto.ContactDTO](t, rec)

	rec = s.do(http.MethodGet, "/api/contacts", u2, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[[]dto.ContactDTO](t, rec))

	rec = s.do(http.MethodGet, "/api/contacts/search?searchTerm=dragan", u2, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[[]dto.ContactDTO](t, rec))

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/contacts/%d", created.ID), u2, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/contacts/search?searchTerm=dragan", u1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]dto.ContactDTO](t, rec), 1)

	rec = s.do(http.MethodGet, "/api/contacts/search?searchTerm=%20%20", u1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())

	rec = s.do(http.MethodGet, "/api/contacts/search?searchTerm=a&limit=abc", u1, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// 號碼全域唯一
	rec = s.do(http.MethodPost, "/api/contacts", u2, dto.CreateContactDTO{
		Name:         "Copy",
		PhoneNumbers: []dto.PhoneNumberInputDTO{{Number: "0888000000"}},
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func (s *RouterTestSuite) TestUpdateAndPhoneRoutes() {
	t := s.T()
	accessToken := s.registerAndLogin("carol")

	rec := s.do(http.MethodPost, "/api/contacts", accessToken, dto.CreateContactDTO{
		Name:         "Maria",
		PhoneNumbers: []dto.PhoneNumberInputDTO{{Number: "0888123456"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[dto.ContactDTO](t, rec)
	base := fmt.Sprintf("/api/contacts/%d", created.ID)

	rec = s.do(http.MethodPost, "/api/contacts", accessToken, dto.CreateContactDTO{Name: " "})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	address := "Varna"
	rec = s.do(http.MethodPut, base, accessToken, dto.UpdateContactDTO{Address: &address})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[dto.ContactDTO](t, rec)
	require.Equal(t, "Maria", updated.Name)
	require.Equal(t, "Varna", *updated.Address)

	rec = s.do(http.MethodPost, base+"/phonenumbers", accessToken, dto.PhoneNumberInputDTO{Number: "0899123456"})
	require.Equal(t, http.StatusCreated, rec.Code)
	phone := decode[dto.PhoneNumberDTO](t, rec)

	phonePath := fmt.Sprintf("%s/phonenumbers/%d", base, phone.ID)
	rec = s.do(http.MethodPatch, phonePath, accessToken, dto.PhoneNumberInputDTO{Number: "0877123456"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "0877123456", decode[dto.PhoneNumberDTO](t, rec).Number)

	rec = s.do(http.MethodPut, phonePath, accessToken, dto.PhoneNumberInputDTO{Number: "bad"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, phonePath, accessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, phonePath, accessToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/contacts/abc", accessToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestPhotoRoutes() {
	t := s.T()
	accessToken := s.registerAndLogin("dave1")

	rec := s.do(http.MethodPost, "/api/contacts", accessToken, dto.CreateContactDTO{
		Name:         "Ivan",
		PhoneNumbers: []dto.PhoneNumberInputDTO{{Number: "0888123456"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[dto.ContactDTO](t, rec)
	photoPath := fmt.Sprintf("/api/contacts/%d/photo", created.ID)

	rec = s.upload(photoPath, accessToken, "virus.exe", []byte("MZ"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Extension not allowed (.jpg,.jpeg,.png)", decode[rj_api.ResponseError](t, rec).Message)

	img := []byte("\x89PNG fake image")
	rec = s.upload(photoPath, accessToken, "me.png", img)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	photo := decode[dto.PhotoDTO](t, rec)
	require.Equal(t, photoPath, photo.URL)

	rec = s.do(http.MethodGet, photoPath, accessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.Equal(t, img, rec.Body.Bytes())

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/contacts/%d", created.ID), accessToken, nil)
	require.Equal(t, photoPath, decode[dto.ContactDTO](t, rec).PhotoURL)

	// 先上傳再綁定
	rec = s.upload("/api/contact_photos/uploadfile", accessToken, "second.jpg", []byte("jpeg"))
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decode[dto.FileNameDTO](t, rec)
	require.Equal(t, ".jpg", filepath.Ext(stored.FileName))

	rec = s.do(http.MethodGet, "/api/contact_photos/retrievefile/"+stored.FileName, accessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))

	rec = s.do(http.MethodPost, photoPath, accessToken, dto.FileNameDTO{FileName: stored.FileName})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// 舊照片已刪除
	rec = s.do(http.MethodGet, "/api/contact_photos/retrievefile/"+photo.FileName, accessToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/api/contact_photos/deletefile/"+stored.FileName, accessToken, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodDelete, photoPath, accessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, photoPath, accessToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/api/contact_photos/deletefile/"+stored.FileName, accessToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.upload("/api/contact_photos/uploadfile", accessToken, "temp.png", []byte("png"))
	require.Equal(t, http.StatusOK, rec.Code)
	temp := decode[dto.FileNameDTO](t, rec)
	rec = s.do(http.MethodDelete, "/api/contact_photos/deletefile/"+temp.FileName, accessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func (s *RouterTestSuite) TestUploadSizeLimits() {
	t := s.T()
	accessToken := s.registerAndLogin("erin1")
	const mb = 1024 * 1024

	rec := s.upload("/api/contact_photos/uploadfile", accessToken, "big.png", bytes.Repeat([]byte{1}, 6*mb))
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = s.upload("/api/contact_photos/uploadfile", accessToken, "limit.png", bytes.Repeat([]byte{2}, 5*mb))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, ".png", filepath.Ext(decode[dto.FileNameDTO](t, rec).FileName))

	img := bytes.Repeat([]byte{0xFF, 0xD8, 0x03}, 2*mb/3)
	rec = s.upload("/api/contact_photos/uploadfile", accessToken, "photo.jpg", img)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stored := decode[dto.FileNameDTO](t, rec)
	require.Equal(t, ".jpg", filepath.Ext(stored.FileName))

	rec = s.do(http.MethodGet, "/api/contact_photos/retrievefile/"+stored.FileName, accessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	require.Equal(t, img, rec.Body.Bytes())

	// 未綁定的檔案只有上傳者看得到
	otherToken := s.registerAndLogin("frank1")
	rec = s.do(http.MethodGet, "/api/contact_photos/retrievefile/"+stored.FileName, otherToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodDelete, "/api/contact_photos/deletefile/"+stored.FileName, otherToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestHealthSwaggerAndStatic() {
	t := s.T()
	rec := s.do(http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/swagger", "", nil)
	require.Equal(t, http.StatusMovedPermanently, rec.Code)

	rec = s.do(http.MethodGet, "/app.js", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "console.log(1)", rec.Body.String())

	rec = s.do(http.MethodGet, "/contacts/42", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "spa")

	rec = s.do(http.MethodGet, "/api/unknown", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/contacts", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(s.T(), "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
