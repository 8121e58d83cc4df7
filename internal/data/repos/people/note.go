package people

import (
	"context"
	"time"

	types "github.com/yungbote/people-notes-backend/internal/domain"
	"github.com/yungbote/people-notes-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type NoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Note, error)
	// GetByPersonIDs returns notes newest first (timestamp DESC, id DESC).
	GetByPersonIDs(ctx context.Context, tx *gorm.DB, personIDs []uint) ([]*types.Note, error)
	// List returns every note, newest first.
	List(ctx context.Context, tx *gorm.DB) ([]*types.Note, error)
	UpdateContent(ctx context.Context, tx *gorm.DB, id uint, content string, at time.Time) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error
	DeleteByPersonIDs(ctx context.Context, tx *gorm.DB, personIDs []uint) (int64, error)
}

type noteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	repoLog := baseLog.With("repo", "NoteRepo")
	return &noteRepo{db: db, log: repoLog}
}

func (r *noteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(notes) == 0 {
		return []*types.Note{}, nil
	}

	if err := transaction.WithContext(ctx).
		Omit("Person").
		Create(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Note
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *noteRepo) GetByPersonIDs(ctx context.Context, tx *gorm.DB, personIDs []uint) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Note
	if len(personIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("person_id IN ?", personIDs).
		Order("timestamp DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *noteRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Note
	if err := transaction.WithContext(ctx).
		Order("timestamp DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *noteRepo) UpdateContent(ctx context.Context, tx *gorm.DB, id uint, content string, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Note{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"content":   content,
			"timestamp": at,
		}).Error
}

func (r *noteRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Note{}).Error
}

func (r *noteRepo) DeleteByPersonIDs(ctx context.Context, tx *gorm.DB, personIDs []uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(personIDs) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Where("person_id IN ?", personIDs).
		Delete(&types.Note{})
	return res.RowsAffected, res.Error
}
