package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/people-notes-backend/internal/data/repos"
	"github.com/yungbote/people-notes-backend/internal/data/repos/testutil"
)

func TestResetLoadsSample(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	testutil.SeedPerson(t, ctx, db, "Stale", "Row")

	s := NewSeeder(db, log)
	require.NoError(t, s.Reset(ctx, Sample))
	// Running twice must not trip the unique lname index.
	require.NoError(t, s.Reset(ctx, Sample))

	personRepo := repos.NewPersonRepo(db, log)
	noteRepo := repos.NewNoteRepo(db, log)

	people, err := personRepo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, "Fairy", people[0].LName)
	assert.Equal(t, "Bunny", people[2].LName)

	notes, err := noteRepo.GetByPersonIDs(ctx, nil, []uint{people[2].ID})
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "No need to hide the eggs this time.", notes[0].Content)
	assert.Equal(t, "2022-04-06 13:03:17", notes[0].Timestamp.UTC().Format(timestampLayout))

	var total int64
	for _, p := range people {
		total += testutil.CountNotes(t, ctx, db, p.ID)
	}
	assert.Equal(t, int64(7), total)
}
