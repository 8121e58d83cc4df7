package people

import (
	"context"
	"time"

	types "github.com/yungbote/people-notes-backend/internal/domain"
	"github.com/yungbote/people-notes-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type PersonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, people []*types.Person) ([]*types.Person, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Person, error)
	GetByLNames(ctx context.Context, tx *gorm.DB, lnames []string) ([]*types.Person, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Person, error)
	LNameExists(ctx context.Context, tx *gorm.DB, lname string) (bool, error)
	UpdateFirstName(ctx context.Context, tx *gorm.DB, id uint, fname string, at time.Time) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error
}

type personRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonRepo(db *gorm.DB, baseLog *logger.Logger) PersonRepo {
	repoLog := baseLog.With("repo", "PersonRepo")
	return &personRepo{db: db, log: repoLog}
}

func (r *personRepo) Create(ctx context.Context, tx *gorm.DB, people []*types.Person) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(people) == 0 {
		return []*types.Person{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

func (r *personRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Person
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *personRepo) GetByLNames(ctx context.Context, tx *gorm.DB, lnames []string) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Person
	if len(lnames) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("lname IN ?", lnames).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *personRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Person
	if err := transaction.WithContext(ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *personRepo) LNameExists(ctx context.Context, tx *gorm.DB, lname string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Person{}).
		Where("lname = ?", lname).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *personRepo) UpdateFirstName(ctx context.Context, tx *gorm.DB, id uint, fname string, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Person{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"fname":     fname,
			"timestamp": at,
		}).Error
}

func (r *personRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Person{}).Error
}
