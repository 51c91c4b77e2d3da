package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db"
	dbmodel "github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/storage"
	"github.com/RoyceAzure/lab/phonebook/internal/model"
	er "github.com/RoyceAzure/lab/phonebook/internal/util/rj_error"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ContactServiceTestSuite struct {
	suite.Suite
	store      *db.UnifiedDBImpl
	photoStore *storage.LocalStore
	photoDir   string
	svc        IContactService
	photos     IPhotoService
	ctx        context.Context
	u1         *dbmodel.User
	u2         *dbmodel.User
}

func (suite *ContactServiceTestSuite) SetupTest() {
	t := suite.T()
	suite.store = newTestDB(t)
	suite.photoDir = filepath.Join(t.TempDir(), "Uploads")
	ps, err := storage.NewLocalStore(suite.photoDir)
	require.NoError(t, err)
	suite.photoStore = ps
	suite.svc = NewContactService(suite.store, suite.photoStore)
	suite.photos = NewPhotoService(suite.store, suite.photoStore)
	suite.ctx = context.Background()
	suite.u1 = createTestUser(t, suite.store, "u1")
	suite.u2 = createTestUser(t, suite.store, "u2")
}

func (suite *ContactServiceTestSuite) add(userID int64, name string, numbers ...string) *model.ContactModel {
	c, err := suite.svc.AddContact(suite.ctx, userID, &model.ContactInput{Name: name, PhoneNumbers: numbers})
	require.NoError(suite.T(), err)
	return c
}

func (suite *ContactServiceTestSuite) requireCode(err error, code er.ErrorCode) {
	require.Error(suite.T(), err)
	require.Equal(suite.T(), code, er.CodeOf(err), err.Error())
}

func (suite *ContactServiceTestSuite) TestAddAndGet() {
	c, err := suite.svc.AddContact(suite.ctx, suite.u1.ID, &model.ContactInput{
		Name:         "  Ivan Ivanov ",
		Address:      strPtr("dr Ivan Straski"),
		PhoneNumbers: []string{"0888123456", "0899123456"},
	})
	require.NoError(suite.T(), err)
	require.NotZero(suite.T(), c.ID)
	require.Equal(suite.T(), "Ivan Ivanov", c.Name)
	require.Len(suite.T(), c.PhoneNumbers, 2)

	got, err := suite.svc.GetContact(suite.ctx, suite.u1.ID, c.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "Ivan Ivanov", got.Name)
	require.Equal(suite.T(), "dr Ivan Straski", *got.Address)
	require.Equal(suite.T(), "0888123456", got.PhoneNumbers[0].Number)
	require.Nil(suite.T(), got.Photo)
}

func (suite *ContactServiceTestSuite) TestAddValidation() {
	_, err := suite.svc.AddContact(suite.ctx, suite.u1.ID, &model.ContactInput{Name: " ", PhoneNumbers: []string{"0888123456"}})
	suite.requireCode(err, er.BadRequestCode)
	require.Contains(suite.T(), err.(*er.AnaError).Message, "Name field cannot be empty")

	_, err = suite.svc.AddContact(suite.ctx, suite.u1.ID, &model.ContactInput{Name: "A"})
	suite.requireCode(err, er.BadRequestCode)
	require.Contains(suite.T(), err.(*er.AnaError).Message, "Phone number field cannot be empty")

	_, err = suite.svc.AddContact(suite.ctx, suite.u1.ID, &model.ContactInput{Name: "A", PhoneNumbers: []string{"abc"}})
	suite.requireCode(err, er.BadRequestCode)

	_, err = suite.svc.AddContact(suite.ctx, suite.u1.ID, &model.ContactInput{Name: "A", PhoneNumbers: []string{"112", "112"}})
	suite.requireCode(err, er.BadRequestCode)

	_, err = suite.svc.AddContact(suite.ctx, suite.u1.ID, nil)
	suite.requireCode(err, er.BadRequestCode)

	list, err := suite.svc.ListContacts(suite.ctx, suite.u1.ID)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), list)
}

func (suite *ContactServiceTestSuite) TestAddConflicts() {
	suite.add(suite.u1.ID, "Ivan", "0888123456")

	_, err := suite.svc.AddContact(suite.ctx, suite.u1.ID, &model.ContactInput{Name: "Ivan", PhoneNumbers: []string{"0888000000"}})
	suite.requireCode(err, er.ConflictCode)

	// 號碼全域唯一, 其他用戶也不能使用
	_, err = suite.svc.AddContact(suite.ctx, suite.u2.ID, &model.ContactInput{Name: "Other", PhoneNumbers: []string{"0888123456"}})
	suite.requireCode(err, er.ConflictCode)

	// 同名但不同用戶可以
	suite.add(suite.u2.ID, "Ivan", "0888000000")
}

func (suite *ContactServiceTestSuite) TestTenantIsolation() {
	c := suite.add(suite.u1.ID, "Ivan Ivanov", "0888123456")

	_, err := suite.svc.GetContact(suite.ctx, suite.u2.ID, c.ID)
	suite.requireCode(err, er.NotFoundCode)

	list, err := suite.svc.ListContacts(suite.ctx, suite.u2.ID)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), list)

	res, err := suite.svc.SearchContacts(suite.ctx, suite.u2.ID, "Ivan", 10)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), res)

	_, err = suite.svc.AddPhoneNumber(suite.ctx, suite.u2.ID, c.ID, "0888000000")
	suite.requireCode(err, er.NotFoundCode)

	_, err = suite.svc.UpdateContact(suite.ctx, suite.u2.ID, c.ID, &model.ContactPatch{Name: strPtr("x")})
	suite.requireCode(err, er.NotFoundCode)

	_, err = suite.svc.DeleteContact(suite.ctx, suite.u2.ID, c.ID)
	suite.requireCode(err, er.NotFoundCode)

	_, err = suite.svc.GetContact(suite.ctx, suite.u1.ID, c.ID)
	require.NoError(suite.T(), err)
}

func (suite *ContactServiceTestSuite) TestSearch() {
	suite.add(suite.u1.ID, "Ivan Ivanov", "0888123456")
	suite.add(suite.u1.ID, "Dragan Ivanov", "0888000000")

	res, err := suite.svc.SearchContacts(suite.ctx, suite.u1.ID, "   ", 10)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), res)
	require.Empty(suite.T(), res)

	res, err = suite.svc.SearchContacts(suite.ctx, suite.u1.ID, "Dragan Ivanov", 10)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), res, 1)
	require.Len(suite.T(), res[0].PhoneNumbers, 1)

	res, err = suite.svc.SearchContacts(suite.ctx, suite.u1.ID, "ivanov", 0)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), res, 2)

	res, err = suite.svc.SearchContacts(suite.ctx, suite.u1.ID, "ivanov", 1)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), res, 1)
}

func (suite *ContactServiceTestSuite) TestPhoneOperations() {
	c := suite.add(suite.u1.ID, "A", "0888123456")
	other := suite.add(suite.u1.ID, "B", "0888000000")

	phone, err := suite.svc.AddPhoneNumber(suite.ctx, suite.u1.ID, c.ID, " 0899123456 ")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "0899123456", phone.Number)

	_, err = suite.svc.AddPhoneNumber(suite.ctx, suite.u1.ID, c.ID, "0888000000")
	suite.requireCode(err, er.ConflictCode)

	_, err = suite.svc.AddPhoneNumber(suite.ctx, suite.u1.ID, c.ID, "12-34")
	suite.requireCode(err, er.BadRequestCode)

	_, err = suite.svc.AddPhoneNumber(suite.ctx, suite.u1.ID, 9999, "0899000000")
	suite.requireCode(err, er.NotFoundCode)

	updated, err := suite.svc.UpdatePhoneNumber(suite.ctx, suite.u1.ID, c.ID, phone.ID, "0877123456")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "0877123456", updated.Number)

	_, err = suite.svc.UpdatePhoneNumber(suite.ctx, suite.u1.ID, c.ID, phone.ID, "0888000000")
	suite.requireCode(err, er.ConflictCode)

	_, err = suite.svc.UpdatePhoneNumber(suite.ctx, suite.u1.ID, other.ID, phone.ID, "0877000000")
	suite.requireCode(err, er.BadRequestCode)

	_, err = suite.svc.UpdatePhoneNumber(suite.ctx, suite.u1.ID, c.ID, 9999, "0877000000")
	suite.requireCode(err, er.NotFoundCode)

	_, err = suite.svc.DeletePhoneNumber(suite.ctx, suite.u1.ID, other.ID, phone.ID)
	suite.requireCode(err, er.BadRequestCode)

	removed, err := suite.svc.DeletePhoneNumber(suite.ctx, suite.u1.ID, c.ID, phone.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "0877123456", removed.Number)

	got, err := suite.svc.GetContact(suite.ctx, suite.u1.ID, c.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), got.PhoneNumbers, 1)
}

func (suite *ContactServiceTestSuite) TestUpdateContact() {
	c := suite.add(suite.u1.ID, "A", "0888123456", "0899123456")
	suite.add(suite.u1.ID, "B", "0888000000")
	originalPhoneIDs := []int64{c.PhoneNumbers[0].ID, c.PhoneNumbers[1].ID}

	// 只改地址, 名稱與電話不變
	got, err := suite.svc.UpdateContact(suite.ctx, suite.u1.ID, c.ID, &model.ContactPatch{Address: strPtr("Varna")})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "A", got.Name)
	require.Equal(suite.T(), "Varna", *got.Address)
	require.Len(suite.T(), got.PhoneNumbers, 2)
	require.False(suite.T(), got.UpdatedAt.Before(c.UpdatedAt))

	// 同一組號碼不同順序, 不替換
	same := []string{"0899123456", "0888123456"}
	got, err = suite.svc.UpdateContact(suite.ctx, suite.u1.ID, c.ID, &model.ContactPatch{PhoneNumbers: &same})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), originalPhoneIDs, []int64{got.PhoneNumbers[0].ID, got.PhoneNumbers[1].ID})

	replaced := []string{"0888123456", "0877000000"}
	got, err = suite.svc.UpdateContact(suite.ctx, suite.u1.ID, c.ID, &model.ContactPatch{PhoneNumbers: &replaced})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), got.PhoneNumbers, 2)
	numbers := []string{got.PhoneNumbers[0].Number, got.PhoneNumbers[1].Number}
	require.ElementsMatch(suite.T(), replaced, numbers)

	_, err = suite.svc.UpdateContact(suite.ctx, suite.u1.ID, c.ID, &model.ContactPatch{Name: strPtr("B")})
	suite.requireCode(err, er.ConflictCode)

	_, err = suite.svc.UpdateContact(suite.ctx, suite.u1.ID, c.ID, &model.ContactPatch{Name: strPtr("")})
	suite.requireCode(err, er.BadRequestCode)

	empty := []string{}
	_, err = suite.svc.UpdateContact(suite.ctx, suite.u1.ID, c.ID, &model.ContactPatch{PhoneNumbers: &empty})
	suite.requireCode(err, er.BadRequestCode)

	taken := []string{"0888000000"}
	_, err = suite.svc.UpdateContact(suite.ctx, suite.u1.ID, c.ID, &model.ContactPatch{PhoneNumbers: &taken})
	suite.requireCode(err, er.ConflictCode)

	got, err = suite.svc.UpdateContact(suite.ctx, suite.u1.ID, c.ID, &model.ContactPatch{Name: strPtr("Renamed"), Address: strPtr("")})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "Renamed", got.Name)
	require.Nil(suite.T(), got.Address)
}

func (suite *ContactServiceTestSuite) TestDeleteContactRemovesPhoto() {
	c := suite.add(suite.u1.ID, "Ivan Ivanov", "0888123456")
	photo, err := suite.photos.UploadContactPhoto(suite.ctx, suite.u1.ID, c.ID, []byte("jpeg-bytes"), "me.jpg")
	require.NoError(suite.T(), err)
	_, err = os.Stat(filepath.Join(suite.photoDir, photo.FileName))
	require.NoError(suite.T(), err)

	removed, err := suite.svc.DeleteContact(suite.ctx, suite.u1.ID, c.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), c.ID, removed.ID)
	require.NotNil(suite.T(), removed.Photo)

	_, err = os.Stat(filepath.Join(suite.photoDir, photo.FileName))
	require.True(suite.T(), os.IsNotExist(err))

	_, err = suite.photos.GetContactPhoto(suite.ctx, suite.u1.ID, c.ID)
	suite.requireCode(err, er.NotFoundCode)

	_, err = suite.svc.GetContact(suite.ctx, suite.u1.ID, c.ID)
	suite.requireCode(err, er.NotFoundCode)

	// 號碼釋放後可以再使用
	suite.add(suite.u2.ID, "Reuse", "0888123456")
}

func TestContactServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ContactServiceTestSuite))
}

func TestAddContactWritesNoErrorLogs(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	ctx := context.Background()
	store := newTestDB(t)
	users := NewUserService(store)
	contacts := NewContactService(store, newTestPhotoStore(t))

	user, err := users.Register(ctx, "logcheck", "logcheck@example.com", "secret1")
	require.NoError(t, err)
	_, err = contacts.AddContact(ctx, user.ID, &model.ContactInput{Name: "Ivan", PhoneNumbers: []string{"0888123456"}})
	require.NoError(t, err)

	require.NotContains(t, buf.String(), `"level":"error"`)
	require.NotContains(t, buf.String(), "record not found")
}
