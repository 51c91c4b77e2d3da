package db

import (
	"context"

	"github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db/model"
)

type UploadedFileRepo struct {
	dbDao *DbDao
}

func NewUploadedFileRepo(dbDao *DbDao) *UploadedFileRepo {
	return &UploadedFileRepo{dbDao: dbDao}
}

func (s *UploadedFileRepo) CreateUploadedFile(ctx context.Context, file *model.UploadedFile) error {
	return s.dbDao.WithContext(ctx).Create(file).Error
}

func (s *UploadedFileRepo) GetUploadedFileByName(ctx context.Context, fileName string) (*model.UploadedFile, error) {
	var file model.UploadedFile
	err := s.dbDao.WithContext(ctx).Where("file_name = ?", fileName).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// 不存在時不回傳錯誤
func (s *UploadedFileRepo) DeleteUploadedFileByName(ctx context.Context, fileName string) error {
	return s.dbDao.WithContext(ctx).Delete(&model.UploadedFile{}, "file_name = ?", fileName).Error
}
