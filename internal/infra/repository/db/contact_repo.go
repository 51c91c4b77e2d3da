package db

import (
	"context"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/phonebook/internal/infra/repository/db/model"
)

// 所有查詢都帶 user_id, 不同用戶的聯絡人互不可見
type ContactRepo struct {
	dbDao *DbDao
}

func NewContactRepo(dbDao *DbDao) *ContactRepo {
	return &ContactRepo{dbDao: dbDao}
}

func (s *ContactRepo) CreateContact(ctx context.Context, contact *model.Contact) error {
	return s.dbDao.WithContext(ctx).Create(contact).Error
}

func (s *ContactRepo) GetContactByID(ctx context.Context, userID, id int64) (*model.Contact, error) {
	var contact model.Contact
	err := s.dbDao.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *ContactRepo) GetContactByName(ctx context.Context, userID int64, name string) (*model.Contact, error) {
	var contact model.Contact
	err := s.dbDao.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *ContactRepo) ListContactsByUserID(ctx context.Context, userID int64) ([]model.Contact, error) {
	var contacts []model.Contact
	err := s.dbDao.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").Order("id").
		Find(&contacts).Error
	return contacts, err
}

// SearchContactsByName 名稱不分大小寫包含 term
// '!' 作為跳脫字元, postgres/mysql/sqlite 皆支援
func (s *ContactRepo) SearchContactsByName(ctx context.Context, userID int64, term string, limit int) ([]model.Contact, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

	var contacts []model.Contact
	err := s.dbDao.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) LIKE ? ESCAPE '!'", userID, pattern).
		Order("name").Order("id").
		Limit(limit).
		Find(&contacts).Error
	return contacts, err
}

// UpdateContact 寫入 name, address, updated_at
func (s *ContactRepo) UpdateContact(ctx context.Context, contact *model.Contact) error {
	contact.UpdatedAt = time.Now().UTC()
	return s.dbDao.WithContext(ctx).
		Model(&model.Contact{}).
		Where("id = ? AND user_id = ?", contact.ID, contact.UserID).
		Updates(map[string]any{
			"name":       contact.Name,
			"address":    contact.Address,
			"updated_at": contact.UpdatedAt,
		}).Error
}

func (s *ContactRepo) DeleteContact(ctx context.Context, userID, id int64) error {
	return s.dbDao.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Contact{}).Error
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
