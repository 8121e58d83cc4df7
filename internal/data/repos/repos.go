package repos

import (
	"github.com/yungbote/people-notes-backend/internal/data/repos/people"
	"github.com/yungbote/people-notes-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type PersonRepo = people.PersonRepo
type NoteRepo = people.NoteRepo

func NewPersonRepo(db *gorm.DB, baseLog *logger.Logger) PersonRepo {
	return people.NewPersonRepo(db, baseLog)
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	return people.NewNoteRepo(db, baseLog)
}
