package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/RoyceAzure/lab/phonebook/internal/constants"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db"
	dbmodel "github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/storage"
	"github.com/RoyceAzure/lab/phonebook/internal/model"
	"github.com/RoyceAzure/lab/phonebook/internal/util"
	er "github.com/RoyceAzure/lab/phonebook/internal/util/rj_error"
	"github.com/rs/zerolog/log"
)

// IContactService 聯絡人聚合操作, 所有方法都以 userID 限定範圍
// 其他用戶的聯絡人一律視為不存在 (404)
type IContactService interface {
	ListContacts(ctx context.Context, userID int64) ([]*model.ContactModel, error)
	GetContact(ctx context.Context, userID, contactID int64) (*model.ContactModel, error)
	// SearchContacts 名稱不分大小寫包含 term, 空白 term 回傳空陣列
	SearchContacts(ctx context.Context, userID int64, term string, limit int) ([]*model.ContactModel, error)
	// AddContact 新增聯絡人與電話
	// 錯誤:
	//   - er.BadRequestCode 400: 名稱為空, 電話為空或格式錯誤
	//   - er.ConflictCode 409: 同名聯絡人已存在, 電話已被使用
	//   - er.InternalErrorCode 500: 內部處理錯誤
	AddContact(ctx context.Context, userID int64, input *model.ContactInput) (*model.ContactModel, error)
	// AddPhoneNumber 錯誤:
	//   - er.NotFoundCode 404: 聯絡人不存在
	//   - er.BadRequestCode 400: 格式錯誤
	//   - er.ConflictCode 409: 電話已被使用
	AddPhoneNumber(ctx context.Context, userID, contactID int64, number string) (*model.PhoneNumberModel, error)
	// UpdatePhoneNumber 錯誤:
	//   - er.NotFoundCode 404: 聯絡人或電話不存在
	//   - er.BadRequestCode 400: 電話不屬於此聯絡人, 格式錯誤
	//   - er.ConflictCode 409: 電話已被使用
	UpdatePhoneNumber(ctx context.Context, userID, contactID, phoneID int64, number string) (*model.PhoneNumberModel, error)
	DeletePhoneNumber(ctx context.Context, userID, contactID, phoneID int64) (*model.PhoneNumberModel, error)
	// UpdateContact 部分更新, patch 內 nil 欄位不變
	// 電話清單只有在號碼集合不同時才整批替換
	UpdateContact(ctx context.Context, userID, contactID int64, patch *model.ContactPatch) (*model.ContactModel, error)
	// DeleteContact 刪除聯絡人, 電話與照片, commit 後再刪照片檔
	DeleteContact(ctx context.Context, userID, contactID int64) (*model.ContactModel, error)
}

type ContactService struct {
	dbDao      db.UnifiedDB
	photoStore storage.PhotoStore
}

func NewContactService(dbDao db.UnifiedDB, photoStore storage.PhotoStore) IContactService {
	if dbDao == nil {
		panic("dbDao cannot be nil")
	}
	if photoStore == nil {
		panic("photoStore cannot be nil")
	}
	return &ContactService{
		dbDao:      dbDao,
		photoStore: photoStore,
	}
}

func (c *ContactService) ListContacts(ctx context.Context, userID int64) ([]*model.ContactModel, error) {
	contacts, err := c.dbDao.ListContactsByUserID(ctx, userID)
	if err != nil {
		return nil, er.Wrap(er.InternalErrorCode, err)
	}
	return loadContactAggregates(ctx, c.dbDao, contacts)
}

func (c *ContactService) GetContact(ctx context.Context, userID, contactID int64) (*model.ContactModel, error) {
	contact, err := getOwnedContact(ctx, c.dbDao, userID, contactID)
	if err != nil {
		return nil, err
	}
	res, err := loadContactAggregates(ctx, c.dbDao, []dbmodel.Contact{*contact})
	if err != nil {
		return nil, err
	}
	return res[0], nil
}

func (c *ContactService) SearchContacts(ctx context.Context, userID int64, term string, limit int) ([]*model.ContactModel, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []*model.ContactModel{}, nil
	}
	if limit <= 0 {
		limit = constants.DefaultSearchLimit
	}
	if limit > constants.MaxSearchLimit {
		limit = constants.MaxSearchLimit
	}

	contacts, err := c.dbDao.SearchContactsByName(ctx, userID, term, limit)
	if err != nil {
		return nil, er.Wrap(er.InternalErrorCode, err)
	}
	return loadContactAggregates(ctx, c.dbDao, contacts)
}

func (c *ContactService) AddContact(ctx context.Context, userID int64, input *model.ContactInput) (*model.ContactModel, error) {
	if input == nil {
		return nil, er.New(er.BadRequestCode, "Contact cannot be empty!")
	}
	name, err := validateContactName(input.Name)
	if err != nil {
		return nil, err
	}
	numbers, err := validatePhoneList(input.PhoneNumbers)
	if err != nil {
		return nil, err
	}
	address, err := normalizeAddress(input.Address)
	if err != nil {
		return nil, err
	}

	if _, err := c.dbDao.GetContactByName(ctx, userID, name); err == nil {
		return nil, er.Newf(er.ConflictCode, "Cannot have contact with same name %s.", name)
	} else if !db.IsNotFound(err) {
		return nil, er.Wrap(er.InternalErrorCode, err)
	}
	if err := ensurePhonesAvailable(ctx, c.dbDao, numbers, 0); err != nil {
		return nil, err
	}

	contact := &dbmodel.Contact{
		UserID:  userID,
		Name:    name,
		Address: address,
	}
	var phones []dbmodel.PhoneNumber
	err = c.dbDao.ExecTx(ctx, func(tx db.UnifiedDB) error {
		if err := tx.CreateContact(ctx, contact); err != nil {
			return err
		}
		phones = buildPhoneEntities(contact.ID, numbers)
		return tx.CreatePhoneNumbers(ctx, phones)
	})
	if err != nil {
		return nil, mapWriteError(err, "Contact name or phone number already exists!")
	}

	return convertRepoContactToModel(contact, phones, nil), nil
}

func (c *ContactService) AddPhoneNumber(ctx context.Context, userID, contactID int64, number string) (*model.PhoneNumberModel, error) {
	if _, err := getOwnedContact(ctx, c.dbDao, userID, contactID); err != nil {
		return nil, err
	}
	number, err := validatePhoneNumber(number)
	if err != nil {
		return nil, err
	}
	if err := ensurePhonesAvailable(ctx, c.dbDao, []string{number}, 0); err != nil {
		return nil, err
	}

	phone := &dbmodel.PhoneNumber{
		Number:    number,
		ContactID: contactID,
	}
	if err := c.dbDao.CreatePhoneNumber(ctx, phone); err != nil {
		return nil, mapWriteError(err, "Phone number "+number+" already exists!")
	}
	return convertRepoPhoneToModel(phone), nil
}

func (c *ContactService) UpdatePhoneNumber(ctx context.Context, userID, contactID, phoneID int64, number string) (*model.PhoneNumberModel, error) {
	phone, err := c.getContactPhone(ctx, userID, contactID, phoneID)
	if err != nil {
		return nil, err
	}
	number, err = validatePhoneNumber(number)
	if err != nil {
		return nil, err
	}
	if number == phone.Number {
		return convertRepoPhoneToModel(phone), nil
	}
	if err := ensurePhonesAvailable(ctx, c.dbDao, []string{number}, 0); err != nil {
		return nil, err
	}

	if err := c.dbDao.UpdatePhoneNumber(ctx, phoneID, number); err != nil {
		return nil, mapWriteError(err, "Phone number "+number+" already exists!")
	}
	phone.Number = number
	return convertRepoPhoneToModel(phone), nil
}

func (c *ContactService) DeletePhoneNumber(ctx context.Context, userID, contactID, phoneID int64) (*model.PhoneNumberModel, error) {
	phone, err := c.getContactPhone(ctx, userID, contactID, phoneID)
	if err != nil {
		return nil, err
	}
	if err := c.dbDao.DeletePhoneNumber(ctx, phoneID); err != nil {
		return nil, er.Wrap(er.InternalErrorCode, err)
	}
	return convertRepoPhoneToModel(phone), nil
}

func (c *ContactService) UpdateContact(ctx context.Context, userID, contactID int64, patch *model.ContactPatch) (*model.ContactModel, error) {
	contact, err := getOwnedContact(ctx, c.dbDao, userID, contactID)
	if err != nil {
		return nil, err
	}
	if patch == nil {
		patch = &model.ContactPatch{}
	}

	if patch.Name != nil {
		name, err := validateContactName(*patch.Name)
		if err != nil {
			return nil, err
		}
		if name != contact.Name {
			if _, err := c.dbDao.GetContactByName(ctx, userID, name); err == nil {
				return nil, er.Newf(er.ConflictCode, "Cannot have contact with same name %s.", name)
			} else if !db.IsNotFound(err) {
				return nil, er.Wrap(er.InternalErrorCode, err)
			}
		}
		contact.Name = name
	}

	if patch.Address != nil {
		address, err := normalizeAddress(patch.Address)
		if err != nil {
			return nil, err
		}
		contact.Address = address
	}

	var newNumbers []string
	replacePhones := false
	if patch.PhoneNumbers != nil {
		newNumbers, err = validatePhoneList(*patch.PhoneNumbers)
		if err != nil {
			return nil, err
		}
		current, err := c.dbDao.ListPhoneNumbersByContactIDs(ctx, []int64{contactID})
		if err != nil {
			return nil, er.Wrap(er.InternalErrorCode, err)
		}
		currentNumbers := make([]string, 0, len(current))
		for _, p := range current {
			currentNumbers = append(currentNumbers, p.Number)
		}
		if !sameNumberSet(currentNumbers, newNumbers) {
			if err := ensurePhonesAvailable(ctx, c.dbDao, newNumbers, contactID); err != nil {
				return nil, err
			}
			replacePhones = true
		}
	}

	err = c.dbDao.ExecTx(ctx, func(tx db.UnifiedDB) error {
		if err := tx.UpdateContact(ctx, contact); err != nil {
			return err
		}
		if !replacePhones {
			return nil
		}
		if err := tx.DeletePhoneNumbersByContactID(ctx, contactID); err != nil {
			return err
		}
		return tx.CreatePhoneNumbers(ctx, buildPhoneEntities(contactID, newNumbers))
	})
	if err != nil {
		return nil, mapWriteError(err, "Contact name or phone number already exists!")
	}

	return c.GetContact(ctx, userID, contactID)
}

func (c *ContactService) DeleteContact(ctx context.Context, userID, contactID int64) (*model.ContactModel, error) {
	removed, err := c.GetContact(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	err = c.dbDao.ExecTx(ctx, func(tx db.UnifiedDB) error {
		if err := tx.DeletePhotoByContactID(ctx, contactID); err != nil {
			return err
		}
		if err := tx.DeletePhoneNumbersByContactID(ctx, contactID); err != nil {
			return err
		}
		return tx.DeleteContact(ctx, userID, contactID)
	})
	if err != nil {
		return nil, er.Wrap(er.InternalErrorCode, err)
	}

	if removed.Photo != nil {
		removeStoredFile(ctx, c.photoStore, removed.Photo.FileName)
	}
	return removed, nil
}

// getContactPhone 確認聯絡人屬於 user, 電話屬於聯絡人
func (c *ContactService) getContactPhone(ctx context.Context, userID, contactID, phoneID int64) (*dbmodel.PhoneNumber, error) {
	if _, err := getOwnedContact(ctx, c.dbDao, userID, contactID); err != nil {
		return nil, err
	}
	phone, err := c.dbDao.GetPhoneNumberByID(ctx, phoneID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, er.Newf(er.NotFoundCode, "Phone number with id %d was not found!", phoneID)
		}
		return nil, er.Wrap(er.InternalErrorCode, err)
	}
	if phone.ContactID != contactID {
		return nil, er.Newf(er.BadRequestCode, "Phone number with id %d does not belong to contact with id %d.", phoneID, contactID)
	}
	return phone, nil
}

func getOwnedContact(ctx context.Context, q db.UnifiedDB, userID, contactID int64) (*dbmodel.Contact, error) {
	contact, err := q.GetContactByID(ctx, userID, contactID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, er.Newf(er.NotFoundCode, "Contact with id %d was not found!", contactID)
		}
		return nil, er.Wrap(er.InternalErrorCode, err)
	}
	return contact, nil
}

// loadContactAggregates 依 contact id 批次取回電話與照片
func loadContactAggregates(ctx context.Context, q db.UnifiedDB, contacts []dbmodel.Contact) ([]*model.ContactModel, error) {
	res := make([]*model.ContactModel, 0, len(contacts))
	if len(contacts) == 0 {
		return res, nil
	}

	ids := make([]int64, 0, len(contacts))
	for _, c := range contacts {
		ids = append(ids, c.ID)
	}

	phones, err := q.ListPhoneNumbersByContactIDs(ctx, ids)
	if err != nil {
		return nil, er.Wrap(er.InternalErrorCode, err)
	}
	photos, err := q.ListPhotosByContactIDs(ctx, ids)
	if err != nil {
		return nil, er.Wrap(er.InternalErrorCode, err)
	}

	phonesByContact := make(map[int64][]dbmodel.PhoneNumber, len(contacts))
	for _, p := range phones {
		phonesByContact[p.ContactID] = append(phonesByContact[p.ContactID], p)
	}
	photoByContact := make(map[int64]*dbmodel.Photo, len(photos))
	for i := range photos {
		photoByContact[photos[i].ContactID] = &photos[i]
	}

	for i := range contacts {
		c := &contacts[i]
		res = append(res, convertRepoContactToModel(c, phonesByContact[c.ID], photoByContact[c.ID]))
	}
	return res, nil
}

// ensurePhonesAvailable 號碼全域唯一, ownerContactID 自己的號碼不算衝突
func ensurePhonesAvailable(ctx context.Context, q db.UnifiedDB, numbers []string, ownerContactID int64) error {
	existing, err := q.ListPhoneNumbersByNumbers(ctx, numbers)
	if err != nil {
		return er.Wrap(er.InternalErrorCode, err)
	}
	for _, p := range existing {
		if p.ContactID != ownerContactID {
			return er.Newf(er.ConflictCode, "Phone number %s already exists!", p.Number)
		}
	}
	return nil
}

func validateContactName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", er.New(er.BadRequestCode, "Name field cannot be empty!")
	}
	if len([]rune(name)) > constants.MaxContactNameLength {
		return "", er.Newf(er.BadRequestCode, "Name cannot exceed %d characters.", constants.MaxContactNameLength)
	}
	return name, nil
}

func normalizeAddress(address *string) (*string, error) {
	if address == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*address)
	if trimmed == "" {
		return nil, nil
	}
	if len([]rune(trimmed)) > constants.MaxAddressLength {
		return nil, er.Newf(er.BadRequestCode, "Address cannot exceed %d characters.", constants.MaxAddressLength)
	}
	return &trimmed, nil
}

func validatePhoneNumber(number string) (string, error) {
	number = util.NormalizePhoneNumber(number)
	if number == "" {
		return "", er.New(er.BadRequestCode, "Phone number field cannot be empty!")
	}
	if !util.IsValidPhoneNumber(number) {
		return "", er.Newf(er.BadRequestCode, "Phone number %s is not valid.", number)
	}
	return number, nil
}

// validatePhoneList 至少一個號碼, 不可重複
func validatePhoneList(numbers []string) ([]string, error) {
	if len(numbers) == 0 {
		return nil, er.New(er.BadRequestCode, "Phone number field cannot be empty!")
	}
	res := make([]string, 0, len(numbers))
	seen := make(map[string]struct{}, len(numbers))
	for _, n := range numbers {
		number, err := validatePhoneNumber(n)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[number]; ok {
			return nil, er.Newf(er.BadRequestCode, "Phone number %s is duplicated.", number)
		}
		seen[number] = struct{}{}
		res = append(res, number)
	}
	return res, nil
}

func sameNumberSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

func buildPhoneEntities(contactID int64, numbers []string) []dbmodel.PhoneNumber {
	phones := make([]dbmodel.PhoneNumber, 0, len(numbers))
	for _, n := range numbers {
		phones = append(phones, dbmodel.PhoneNumber{Number: n, ContactID: contactID})
	}
	return phones
}

// mapWriteError 寫入錯誤轉換, 唯一索引衝突視為 409
func mapWriteError(err error, conflictMsg string) error {
	var anaErr *er.AnaError
	if errors.As(err, &anaErr) {
		return anaErr
	}
	if db.IsUniqueViolation(err) {
		return er.New(er.ConflictCode, conflictMsg)
	}
	return er.Wrap(er.InternalErrorCode, err)
}

// removeStoredFile commit 後刪檔, 失敗只記錄
func removeStoredFile(ctx context.Context, store storage.PhotoStore, name string) {
	if _, err := store.Remove(ctx, name); err != nil {
		log.Warn().Err(err).Str("file", name).Msg("failed to remove photo file")
	}
}

func convertRepoPhoneToModel(p *dbmodel.PhoneNumber) *model.PhoneNumberModel {
	return &model.PhoneNumberModel{
		ID:        p.ID,
		Number:    p.Number,
		ContactID: p.ContactID,
	}
}

func convertRepoPhotoToModel(p *dbmodel.Photo) *model.PhotoModel {
	if p == nil {
		return nil
	}
	return &model.PhotoModel{
		ID:        p.ID,
		ContactID: p.ContactID,
		FileName:  p.FilePath,
		CreatedAt: p.CreatedAt,
	}
}

// 將 repository 模型轉換為服務層模型
func convertRepoContactToModel(c *dbmodel.Contact, phones []dbmodel.PhoneNumber, photo *dbmodel.Photo) *model.ContactModel {
	phoneModels := make([]model.PhoneNumberModel, 0, len(phones))
	for i := range phones {
		phoneModels = append(phoneModels, *convertRepoPhoneToModel(&phones[i]))
	}
	return &model.ContactModel{
		ID:           c.ID,
		UserID:       c.UserID,
		Name:         c.Name,
		Address:      c.Address,
		PhoneNumbers: phoneModels,
		Photo:        convertRepoPhotoToModel(photo),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
