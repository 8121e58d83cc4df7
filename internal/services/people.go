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

type PeopleService interface {
	Create(dbc dbctx.Context, in PersonInput) (*types.PersonView, error)
	ReadAll(dbc dbctx.Context) ([]types.PersonView, error)
	ReadOne(dbc dbctx.Context, lname string) (*types.PersonView, error)
	// Update changes the first name only; lname in the input is ignored.
	Update(dbc dbctx.Context, lname string, in PersonInput) (*types.PersonView, error)
	// Delete removes the person and every note they own.
	Delete(dbc dbctx.Context, lname string) error
}

type peopleService struct {
	db         *gorm.DB
	log        *logger.Logger
	personRepo repos.PersonRepo
	noteRepo   repos.NoteRepo
	now        func() time.Time
}

func NewPeopleService(db *gorm.DB, log *logger.Logger, personRepo repos.PersonRepo, noteRepo repos.NoteRepo) PeopleService {
	serviceLog := log.With("service", "PeopleService")
	return &peopleService{
		db:         db,
		log:        serviceLog,
		personRepo: personRepo,
		noteRepo:   noteRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *peopleService) Create(dbc dbctx.Context, in PersonInput) (view *types.PersonView, err error) {
	dbc, span := startSpan(dbc, "PeopleService.Create")
	defer func() { endSpan(span, err) }()

	in, err = validateNewPerson(in)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("person.lname", in.LName))

	err = inTx(s.db, dbc, func(inner dbctx.Context) error {
		exists, err := s.personRepo.LNameExists(inner.Ctx, inner.Tx, in.LName)
		if err != nil {
			return fmt.Errorf("check lname: %w", err)
		}
		if exists {
			return alreadyExists(in.LName)
		}
		created, err := s.personRepo.Create(inner.Ctx, inner.Tx, []*types.Person{{
			LName:     in.LName,
			FName:     in.FName,
			Timestamp: s.now(),
		}})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return alreadyExists(in.LName)
			}
			return fmt.Errorf("create person: %w", err)
		}
		v := types.NewPersonView(created[0], nil)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("person created", "person_id", view.ID, "lname", view.LName)
	return view, nil
}

func (s *peopleService) ReadAll(dbc dbctx.Context) (views []types.PersonView, err error) {
	dbc, span := startSpan(dbc, "PeopleService.ReadAll")
	defer func() { endSpan(span, err) }()

	err = inTx(s.db, dbc, func(inner dbctx.Context) error {
		people, err := s.personRepo.List(inner.Ctx, inner.Tx)
		if err != nil {
			return fmt.Errorf("list people: %w", err)
		}
		// All notes in one ordered query; an IN list of every person id
		// would hit the driver's bound parameter limit.
		notes, err := s.noteRepo.List(inner.Ctx, inner.Tx)
		if err != nil {
			return fmt.Errorf("list notes: %w", err)
		}
		byPerson := make(map[uint][]*types.Note, len(people))
		for _, n := range notes {
			byPerson[n.PersonID] = append(byPerson[n.PersonID], n)
		}
		views = make([]types.PersonView, 0, len(people))
		for _, p := range people {
			views = append(views, types.NewPersonView(p, byPerson[p.ID]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (s *peopleService) ReadOne(dbc dbctx.Context, lname string) (view *types.PersonView, err error) {
	dbc, span := startSpan(dbc, "PeopleService.ReadOne")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("person.lname", lname))

	err = inTx(s.db, dbc, func(inner dbctx.Context) error {
		p, err := s.findByLName(inner, lname)
		if err != nil {
			return err
		}
		v, err := s.load(inner, p)
		if err != nil {
			return err
		}
		view = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *peopleService) Update(dbc dbctx.Context, lname string, in PersonInput) (view *types.PersonView, err error) {
	dbc, span := startSpan(dbc, "PeopleService.Update")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("person.lname", lname))

	fname, err := validateFName(in.FName)
	if err != nil {
		return nil, err
	}

	err = inTx(s.db, dbc, func(inner dbctx.Context) error {
		p, err := s.findByLName(inner, lname)
		if err != nil {
			return err
		}
		at := s.now()
		if err := s.personRepo.UpdateFirstName(inner.Ctx, inner.Tx, p.ID, fname, at); err != nil {
			return fmt.Errorf("update person: %w", err)
		}
		p.FName = fname
		p.Timestamp = at
		v, err := s.load(inner, p)
		if err != nil {
			return err
		}
		view = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("person updated", "person_id", view.ID, "lname", view.LName)
	return view, nil
}

func (s *peopleService) Delete(dbc dbctx.Context, lname string) (err error) {
	dbc, span := startSpan(dbc, "PeopleService.Delete")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("person.lname", lname))

	var (
		personID uint
		removed  int64
	)
	err = inTx(s.db, dbc, func(inner dbctx.Context) error {
		p, err := s.findByLName(inner, lname)
		if err != nil {
			return err
		}
		personID = p.ID
		// Children first so the foreign key never dangles.
		removed, err = s.noteRepo.DeleteByPersonIDs(inner.Ctx, inner.Tx, []uint{p.ID})
		if err != nil {
			return fmt.Errorf("delete notes of person %d: %w", p.ID, err)
		}
		if err := s.personRepo.DeleteByIDs(inner.Ctx, inner.Tx, []uint{p.ID}); err != nil {
			return fmt.Errorf("delete person %d: %w", p.ID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("person deleted", "person_id", personID, "lname", lname, "notes_deleted", removed)
	return nil
}

func (s *peopleService) findByLName(dbc dbctx.Context, lname string) (*types.Person, error) {
	if lname == "" {
		return nil, personNotFound(lname)
	}
	found, err := s.personRepo.GetByLNames(dbc.Ctx, dbc.Tx, []string{lname})
	if err != nil {
		return nil, fmt.Errorf("lookup person: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, personNotFound(lname)
	}
	return found[0], nil
}

func (s *peopleService) load(dbc dbctx.Context, p *types.Person) (*types.PersonView, error) {
	notes, err := s.noteRepo.GetByPersonIDs(dbc.Ctx, dbc.Tx, []uint{p.ID})
	if err != nil {
		return nil, fmt.Errorf("load notes of person %d: %w", p.ID, err)
	}
	v := types.NewPersonView(p, notes)
	return &v, nil
}

func personNotFound(lname string) error {
	return apierr.NotFound("Person with last name %s not found", lname)
}

func alreadyExists(lname string) error {
	return apierr.AlreadyExists("Person with last name %s already exists", lname)
}
