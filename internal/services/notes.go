package services

import (
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/yungbote/people-notes-backend/internal/data/repos"
	types "github.com/yungbote/people-notes-backend/internal/domain"
	"github.com/yungbote/people-notes-backend/internal/platform/apierr"
	"github.com/yungbote/people-notes-backend/internal/platform/dbctx"
	"github.com/yungbote/people-notes-backend/internal/platform/logger"
)

type NoteService interface {
	Create(dbc dbctx.Context, in NoteInput) (*types.NoteView, error)
	ReadOne(dbc dbctx.Context, noteID uint) (*types.NoteView, error)
	// Update changes the content only; person_id in the input is ignored.
	Update(dbc dbctx.Context, noteID uint, in NoteInput) (*types.NoteView, error)
	Delete(dbc dbctx.Context, noteID uint) error
}

type noteService struct {
	db         *gorm.DB
	log        *logger.Logger
	personRepo repos.PersonRepo
	noteRepo   repos.NoteRepo
	now        func() time.Time
}

func NewNoteService(db *gorm.DB, log *logger.Logger, personRepo repos.PersonRepo, noteRepo repos.NoteRepo) NoteService {
	serviceLog := log.With("service", "NoteService")
	return &noteService{
		db:         db,
		log:        serviceLog,
		personRepo: personRepo,
		noteRepo:   noteRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *noteService) Create(dbc dbctx.Context, in NoteInput) (view *types.NoteView, err error) {
	dbc, span := startSpan(dbc, "NoteService.Create")
	defer func() { endSpan(span, err) }()

	in, err = validateNewNote(in)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("note.person_id", int64(in.PersonID)))

	err = inTx(s.db, dbc, func(inner dbctx.Context) error {
		owners, err := s.personRepo.GetByIDs(inner.Ctx, inner.Tx, []uint{in.PersonID})
		if err != nil {
			return fmt.Errorf("lookup person: %w", err)
		}
		if len(owners) == 0 {
			return ownerNotFound(in.PersonID)
		}
		created, err := s.noteRepo.Create(inner.Ctx, inner.Tx, []*types.Note{{
			PersonID:  in.PersonID,
			Content:   in.Content,
			Timestamp: s.now(),
		}})
		if err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return ownerNotFound(in.PersonID)
			}
			return fmt.Errorf("create note: %w", err)
		}
		v := types.NewNoteView(created[0])
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("note created", "note_id", view.ID, "person_id", view.PersonID)
	return view, nil
}

func (s *noteService) ReadOne(dbc dbctx.Context, noteID uint) (view *types.NoteView, err error) {
	dbc, span := startSpan(dbc, "NoteService.ReadOne")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Int64("note.id", int64(noteID)))

	err = inTx(s.db, dbc, func(inner dbctx.Context) error {
		n, err := s.find(inner, noteID)
		if err != nil {
			return err
		}
		v := types.NewNoteView(n)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *noteService) Update(dbc dbctx.Context, noteID uint, in NoteInput) (view *types.NoteView, err error) {
	dbc, span := startSpan(dbc, "NoteService.Update")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Int64("note.id", int64(noteID)))

	content, err := validateContent(in.Content)
	if err != nil {
		return nil, err
	}

	err = inTx(s.db, dbc, func(inner dbctx.Context) error {
		n, err := s.find(inner, noteID)
		if err != nil {
			return err
		}
		at := s.now()
		if err := s.noteRepo.UpdateContent(inner.Ctx, inner.Tx, n.ID, content, at); err != nil {
			return fmt.Errorf("update note: %w", err)
		}
		n.Content = content
		n.Timestamp = at
		v := types.NewNoteView(n)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("note updated", "note_id", view.ID, "person_id", view.PersonID)
	return view, nil
}

func (s *noteService) Delete(dbc dbctx.Context, noteID uint) (err error) {
	dbc, span := startSpan(dbc, "NoteService.Delete")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Int64("note.id", int64(noteID)))

	err = inTx(s.db, dbc, func(inner dbctx.Context) error {
		n, err := s.find(inner, noteID)
		if err != nil {
			return err
		}
		if err := s.noteRepo.DeleteByIDs(inner.Ctx, inner.Tx, []uint{n.ID}); err != nil {
			return fmt.Errorf("delete note %d: %w", n.ID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("note deleted", "note_id", noteID)
	return nil
}

func (s *noteService) find(dbc dbctx.Context, noteID uint) (*types.Note, error) {
	if noteID == 0 {
		return nil, noteNotFound(noteID)
	}
	found, err := s.noteRepo.GetByIDs(dbc.Ctx, dbc.Tx, []uint{noteID})
	if err != nil {
		return nil, fmt.Errorf("lookup note: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, noteNotFound(noteID)
	}
	return found[0], nil
}

func noteNotFound(id uint) error {
	return apierr.NotFound("Note with ID %d not found", id)
}

func ownerNotFound(personID uint) error {
	return apierr.NotFound("Person with ID %d not found", personID)
}
