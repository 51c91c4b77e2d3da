package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db"
	dbmodel "github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/phonebook/internal/infra/storage"
	"github.com/RoyceAzure/lab/phonebook/internal/model"
	er "github.com/RoyceAzure/lab/phonebook/internal/util/rj_error"
	"github.com/rs/zerolog/log"
)

type IPhotoService interface {
	// UploadFile 寫入存放區並記錄上傳者, 回傳檔名
	// 錯誤:
	//   - er.BadRequestCode 400: 副檔名不允許, 空檔, 超過 5 MB
	UploadFile(ctx context.Context, userID int64, data []byte, originalName string) (string, error)
	// RetrieveFile 只能讀取自己上傳或綁定在自己聯絡人上的檔案, 其餘視為不存在
	RetrieveFile(ctx context.Context, userID int64, name string) (*model.PhotoContent, error)
	// DeleteFile 刪除自己上傳且未綁定的檔案, 回傳 false 表示存放區內已無此檔
	// 錯誤:
	//   - er.NotFoundCode 404: 沒有上傳紀錄或屬於其他用戶
	//   - er.ConflictCode 409: 檔案仍綁定在自己的聯絡人上
	DeleteFile(ctx context.Context, userID int64, name string) (bool, error)
	// AttachPhoto 綁定自己上傳的檔案, 取代舊照片
	// 錯誤:
	//   - er.NotFoundCode 404: 聯絡人或檔案不存在
	AttachPhoto(ctx context.Context, userID, contactID int64, storedFileName string) (*model.PhotoModel, error)
	// UploadContactPhoto 上傳並綁定, 綁定失敗會刪除新檔
	UploadContactPhoto(ctx context.Context, userID, contactID int64, data []byte, originalName string) (*model.PhotoModel, error)
	GetContactPhoto(ctx context.Context, userID, contactID int64) (*model.PhotoContent, error)
	RemovePhoto(ctx context.Context, userID, contactID int64) error
}

type PhotoService struct {
	dbDao      db.UnifiedDB
	photoStore storage.PhotoStore
}

func NewPhotoService(dbDao db.UnifiedDB, photoStore storage.PhotoStore) IPhotoService {
	if dbDao == nil {
		panic("dbDao cannot be nil")
	}
	if photoStore == nil {
		panic("photoStore cannot be nil")
	}
	return &PhotoService{
		dbDao:      dbDao,
		photoStore: photoStore,
	}
}

func (p *PhotoService) UploadFile(ctx context.Context, userID int64, data []byte, originalName string) (string, error) {
	name, err := p.photoStore.Store(ctx, data, originalName)
	if err != nil {
		return "", mapStoreError(err)
	}

	err = p.dbDao.CreateUploadedFile(ctx, &dbmodel.UploadedFile{
		UserID:    userID,
		FileName:  name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		removeStoredFile(context.WithoutCancel(ctx), p.photoStore, name)
		return "", er.Wrap(er.InternalErrorCode, err)
	}
	return name, nil
}

func (p *PhotoService) RetrieveFile(ctx context.Context, userID int64, name string) (*model.PhotoContent, error) {
	if err := storage.ValidateFileName(name); err != nil {
		return nil, mapStoreError(err)
	}
	if _, err := p.fileContact(ctx, userID, name); err != nil {
		return nil, err
	}
	return p.retrieve(ctx, name)
}

func (p *PhotoService) DeleteFile(ctx context.Context, userID int64, name string) (bool, error) {
	if err := storage.ValidateFileName(name); err != nil {
		return false, mapStoreError(err)
	}
	contactID, err := p.fileContact(ctx, userID, name)
	if err != nil {
		return false, err
	}
	if contactID != 0 {
		return false, er.Newf(er.ConflictCode, "File is attached to contact with id %d, remove the photo instead.", contactID)
	}

	removed, err := p.photoStore.Remove(ctx, name)
	if err != nil {
		return false, er.Wrap(er.InternalErrorCode, err)
	}
	if err := p.dbDao.DeleteUploadedFileByName(ctx, name); err != nil {
		return false, er.Wrap(er.InternalErrorCode, err)
	}
	return removed, nil
}

func (p *PhotoService) AttachPhoto(ctx context.Context, userID, contactID int64, storedFileName string) (*model.PhotoModel, error) {
	if err := storage.ValidateFileName(storedFileName); err != nil {
		return nil, mapStoreError(err)
	}
	if _, err := getOwnedContact(ctx, p.dbDao, userID, contactID); err != nil {
		return nil, err
	}
	owner, err := p.fileContact(ctx, userID, storedFileName)
	if err != nil {
		return nil, err
	}
	if owner != 0 && owner != contactID {
		return nil, er.Newf(er.ConflictCode, "File is attached to contact with id %d.", owner)
	}
	exists, err := p.photoStore.Exists(ctx, storedFileName)
	if err != nil {
		return nil, er.Wrap(er.InternalErrorCode, err)
	}
	if !exists {
		return nil, er.Newf(er.NotFoundCode, "File %s was not found!", storedFileName)
	}

	return p.attach(ctx, contactID, storedFileName)
}

func (p *PhotoService) UploadContactPhoto(ctx context.Context, userID, contactID int64, data []byte, originalName string) (*model.PhotoModel, error) {
	if _, err := getOwnedContact(ctx, p.dbDao, userID, contactID); err != nil {
		return nil, err
	}

	name, err := p.photoStore.Store(ctx, data, originalName)
	if err != nil {
		return nil, mapStoreError(err)
	}

	photo, err := p.attach(ctx, contactID, name)
	if err != nil {
		// transaction 失敗, 移除剛寫入的檔案
		removeStoredFile(context.WithoutCancel(ctx), p.photoStore, name)
		return nil, err
	}
	return photo, nil
}

func (p *PhotoService) GetContactPhoto(ctx context.Context, userID, contactID int64) (*model.PhotoContent, error) {
	if _, err := getOwnedContact(ctx, p.dbDao, userID, contactID); err != nil {
		return nil, err
	}
	photo, err := p.dbDao.GetPhotoByContactID(ctx, contactID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, er.Newf(er.NotFoundCode, "Contact with id %d has no photo.", contactID)
		}
		return nil, er.Wrap(er.InternalErrorCode, err)
	}
	content, err := p.retrieve(ctx, photo.FilePath)
	if er.IsCode(err, er.NotFoundCode) {
		log.Warn().Int64("contact_id", contactID).Str("file", photo.FilePath).Msg("photo row points to a missing file")
	}
	return content, err
}

func (p *PhotoService) RemovePhoto(ctx context.Context, userID, contactID int64) error {
	if _, err := getOwnedContact(ctx, p.dbDao, userID, contactID); err != nil {
		return err
	}
	photo, err := p.dbDao.GetPhotoByContactID(ctx, contactID)
	if err != nil {
		if db.IsNotFound(err) {
			return er.Newf(er.NotFoundCode, "Contact with id %d has no photo.", contactID)
		}
		return er.Wrap(er.InternalErrorCode, err)
	}

	if err := p.dbDao.DeletePhotoByContactID(ctx, contactID); err != nil {
		return er.Wrap(er.InternalErrorCode, err)
	}
	removeStoredFile(ctx, p.photoStore, photo.FilePath)
	return nil
}

// attach 取代 photo row 並移除上傳紀錄, commit 後才刪除舊檔
func (p *PhotoService) attach(ctx context.Context, contactID int64, name string) (*model.PhotoModel, error) {
	var old *dbmodel.Photo
	photo := &dbmodel.Photo{
		ContactID: contactID,
		FilePath:  name,
		CreatedAt: time.Now().UTC(),
	}

	err := p.dbDao.ExecTx(ctx, func(tx db.UnifiedDB) error {
		existing, err := tx.GetPhotoByContactID(ctx, contactID)
		if err != nil && !db.IsNotFound(err) {
			return err
		}
		if existing != nil {
			old = existing
			if err := tx.DeletePhotoByContactID(ctx, contactID); err != nil {
				return err
			}
		}
		if err := tx.CreatePhoto(ctx, photo); err != nil {
			return err
		}
		return tx.DeleteUploadedFileByName(ctx, name)
	})
	if err != nil {
		return nil, mapWriteError(err, "Contact already has a photo.")
	}

	if old != nil && old.FilePath != name {
		removeStoredFile(ctx, p.photoStore, old.FilePath)
	}
	return convertRepoPhotoToModel(photo), nil
}

// fileContact 回傳綁定此檔案的聯絡人 id, 未綁定回傳 0
// 綁定在其他用戶的聯絡人, 或未綁定且不是自己上傳的, 回傳 404
func (p *PhotoService) fileContact(ctx context.Context, userID int64, name string) (int64, error) {
	photo, err := p.dbDao.GetPhotoByFilePath(ctx, name)
	if err == nil {
		if _, err := p.dbDao.GetContactByID(ctx, userID, photo.ContactID); err != nil {
			if db.IsNotFound(err) {
				return 0, er.New(er.NotFoundCode, "File not found.")
			}
			return 0, er.Wrap(er.InternalErrorCode, err)
		}
		return photo.ContactID, nil
	}
	if !db.IsNotFound(err) {
		return 0, er.Wrap(er.InternalErrorCode, err)
	}

	upload, err := p.dbDao.GetUploadedFileByName(ctx, name)
	if err != nil {
		if db.IsNotFound(err) {
			return 0, er.New(er.NotFoundCode, "File not found.")
		}
		return 0, er.Wrap(er.InternalErrorCode, err)
	}
	if upload.UserID != userID {
		return 0, er.New(er.NotFoundCode, "File not found.")
	}
	return 0, nil
}

func (p *PhotoService) retrieve(ctx context.Context, name string) (*model.PhotoContent, error) {
	data, err := p.photoStore.Retrieve(ctx, name)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &model.PhotoContent{
		FileName:    name,
		ContentType: storage.ContentType(name),
		Data:        data,
	}, nil
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, storage.ErrExtensionNotAllowed):
		return er.New(er.BadRequestCode, "Extension not allowed (.jpg,.jpeg,.png)")
	case errors.Is(err, storage.ErrFileTooLarge):
		return er.New(er.BadRequestCode, "File size exceeds the limit of 5 MB.")
	case errors.Is(err, storage.ErrEmptyFile):
		return er.New(er.BadRequestCode, "No file uploaded.")
	case errors.Is(err, storage.ErrInvalidFileName):
		return er.New(er.BadRequestCode, "Invalid file name.")
	case errors.Is(err, storage.ErrFileNotFound):
		return er.New(er.NotFoundCode, "File not found.")
	default:
		return er.Wrap(er.InternalErrorCode, err)
	}
}
