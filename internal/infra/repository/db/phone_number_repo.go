package db

import (
	"context"

	"github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db/model"
)

type PhoneNumberRepo struct {
	dbDao *DbDao
}

func NewPhoneNumberRepo(dbDao *DbDao) *PhoneNumberRepo {
	return &PhoneNumberRepo{dbDao: dbDao}
}

func (s *PhoneNumberRepo) CreatePhoneNumber(ctx context.Context, phone *model.PhoneNumber) error {
	return s.dbDao.WithContext(ctx).Create(phone).Error
}

func (s *PhoneNumberRepo) CreatePhoneNumbers(ctx context.Context, phones []model.PhoneNumber) error {
	if len(phones) == 0 {
		return nil
	}
	return s.dbDao.WithContext(ctx).Create(&phones).Error
}

func (s *PhoneNumberRepo) GetPhoneNumberByID(ctx context.Context, id int64) (*model.PhoneNumber, error) {
	var phone model.PhoneNumber
	err := s.dbDao.WithContext(ctx).First(&phone, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &phone, nil
}

func (s *PhoneNumberRepo) GetPhoneNumberByNumber(ctx context.Context, number string) (*model.PhoneNumber, error) {
	var phone model.PhoneNumber
	err := s.dbDao.WithContext(ctx).Where("number = ?", number).First(&phone).Error
	if err != nil {
		return nil, err
	}
	return &phone, nil
}

// ListPhoneNumbersByNumbers 跨所有用戶查詢, 號碼全域唯一
func (s *PhoneNumberRepo) ListPhoneNumbersByNumbers(ctx context.Context, numbers []string) ([]model.PhoneNumber, error) {
	var phones []model.PhoneNumber
	if len(numbers) == 0 {
		return phones, nil
	}
	err := s.dbDao.WithContext(ctx).Where("number IN ?", numbers).Find(&phones).Error
	return phones, err
}

func (s *PhoneNumberRepo) ListPhoneNumbersByContactIDs(ctx context.Context, contactIDs []int64) ([]model.PhoneNumber, error) {
	var phones []model.PhoneNumber
	if len(contactIDs) == 0 {
		return phones, nil
	}
	err := s.dbDao.WithContext(ctx).
		Where("contact_id IN ?", contactIDs).
		Order("id").
		Find(&phones).Error
	return phones, err
}

func (s *PhoneNumberRepo) UpdatePhoneNumber(ctx context.Context, id int64, number string) error {
	return s.dbDao.WithContext(ctx).
		Model(&model.PhoneNumber{}).
		Where("id = ?", id).
		Update("number", number).Error
}

func (s *PhoneNumberRepo) DeletePhoneNumber(ctx context.Context, id int64) error {
	return s.dbDao.WithContext(ctx).Delete(&model.PhoneNumber{}, "id = ?", id).Error
}

func (s *PhoneNumberRepo) DeletePhoneNumbersByContactID(ctx context.Context, contactID int64) error {
	return s.dbDao.WithContext(ctx).Delete(&model.PhoneNumber{}, "contact_id = ?", contactID).Error
}
