package db

import (
	"context"

	"github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db/model"
)

type PhotoRepo struct {
	dbDao *DbDao
}

func NewPhotoRepo(dbDao *DbDao) *PhotoRepo {
	return &PhotoRepo{dbDao: dbDao}
}

func (s *PhotoRepo) CreatePhoto(ctx context.Context, photo *model.Photo) error {
	return s.dbDao.WithContext(ctx).Create(photo).Error
}

func (s *PhotoRepo) GetPhotoByContactID(ctx context.Context, contactID int64) (*model.Photo, error) {
	var photo model.Photo
	err := s.dbDao.WithContext(ctx).Where("contact_id = ?", contactID).First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (s *PhotoRepo) GetPhotoByFilePath(ctx context.Context, filePath string) (*model.Photo, error) {
	var photo model.Photo
	err := s.dbDao.WithContext(ctx).Where("file_path = ?", filePath).First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (s *PhotoRepo) ListPhotosByContactIDs(ctx context.Context, contactIDs []int64) ([]model.Photo, error) {
	var photos []model.Photo
	if len(contactIDs) == 0 {
		return photos, nil
	}
	err := s.dbDao.WithContext(ctx).Where("contact_id IN ?", contactIDs).Find(&photos).Error
	return photos, err
}

func (s *PhotoRepo) DeletePhotoByContactID(ctx context.Context, contactID int64) error {
	return s.dbDao.WithContext(ctx).Delete(&model.Photo{}, "contact_id = ?", contactID).Error
}
