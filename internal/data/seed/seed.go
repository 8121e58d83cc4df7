package seed

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	dbpkg "github.com/yungbote/people-notes-backend/internal/data/db"
	"github.com/yungbote/people-notes-backend/internal/data/repos"
	types "github.com/yungbote/people-notes-backend/internal/domain"
	"github.com/yungbote/people-notes-backend/internal/platform/logger"
)

const timestampLayout = "2006-01-02 15:04:05"

type NoteSeed struct {
	Content   string
	Timestamp string
}

type PersonSeed struct {
	LName string
	FName string
	Notes []NoteSeed
}

var Sample = []PersonSeed{
	{
		LName: "Fairy",
		FName: "Tooth",
		Notes: []NoteSeed{
			{"I brush my teeth after each meal.", "2022-01-06 17:10:24"},
			{"The other day a friend said, I have big teeth.", "2022-03-05 22:17:54"},
			{"Do you pay per gram?", "2022-03-05 22:18:10"},
		},
	},
	{
		LName: "Ruprecht",
		FName: "Knecht",
		Notes: []NoteSeed{
			{"I swear, I'll do better this year.", "2022-01-01 09:15:03"},
			{"Really! Only good deeds from now on!", "2022-02-06 13:09:21"},
		},
	},
	{
		LName: "Bunny",
		FName: "Easter",
		Notes: []NoteSeed{
			{"Please keep the current inflation rate in mind!", "2022-01-07 22:47:54"},
			{"No need to hide the eggs this time.", "2022-04-06 13:03:17"},
		},
	},
}

type Seeder struct {
	db         *gorm.DB
	log        *logger.Logger
	personRepo repos.PersonRepo
	noteRepo   repos.NoteRepo
	now        func() time.Time
}

func NewSeeder(db *gorm.DB, baseLog *logger.Logger) *Seeder {
	return &Seeder{
		db:         db,
		log:        baseLog.With("component", "Seeder"),
		personRepo: repos.NewPersonRepo(db, baseLog),
		noteRepo:   repos.NewNoteRepo(db, baseLog),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Reset drops and recreates the schema, then loads data in one transaction.
// Person timestamps are the load time; note timestamps come from the seed.
func (s *Seeder) Reset(ctx context.Context, data []PersonSeed) error {
	s.log.Info("Resetting database...")
	if err := dbpkg.ResetSchema(s.db.WithContext(ctx)); err != nil {
		return err
	}
	s.log.Info("Seeding database...", "people", len(data))
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ps := range data {
			created, err := s.personRepo.Create(ctx, tx, []*types.Person{{
				LName:     ps.LName,
				FName:     ps.FName,
				Timestamp: s.now(),
			}})
			if err != nil {
				return fmt.Errorf("seed person %s: %w", ps.LName, err)
			}
			if len(ps.Notes) == 0 {
				continue
			}
			notes := make([]*types.Note, 0, len(ps.Notes))
			for _, ns := range ps.Notes {
				at, err := time.ParseInLocation(timestampLayout, ns.Timestamp, time.UTC)
				if err != nil {
					return fmt.Errorf("seed note timestamp %q: %w", ns.Timestamp, err)
				}
				notes = append(notes, &types.Note{
					PersonID:  created[0].ID,
					Content:   ns.Content,
					Timestamp: at,
				})
			}
			if _, err := s.noteRepo.Create(ctx, tx, notes); err != nil {
				return fmt.Errorf("seed notes for %s: %w", ps.LName, err)
			}
		}
		return nil
	})
}
