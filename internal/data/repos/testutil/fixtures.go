package testutil

import (
	"context"
	"testing"
	"time"

	types "github.com/yungbote/people-notes-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedPerson(tb testing.TB, ctx context.Context, tx *gorm.DB, lname, fname string) *types.Person {
	tb.Helper()
	p := &types.Person{
		LName:     lname,
		FName:     fname,
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed person: %v", err)
	}
	return p
}

func SeedNote(tb testing.TB, ctx context.Context, tx *gorm.DB, personID uint, content string, at time.Time) *types.Note {
	tb.Helper()
	n := &types.Note{
		PersonID:  personID,
		Content:   content,
		Timestamp: at.UTC(),
	}
	if err := tx.WithContext(ctx).Omit("Person").Create(n).Error; err != nil {
		tb.Fatalf("seed note: %v", err)
	}
	return n
}

func CountNotes(tb testing.TB, ctx context.Context, tx *gorm.DB, personID uint) int64 {
	tb.Helper()
	var count int64
	if err := tx.WithContext(ctx).Model(&types.Note{}).Where("person_id = ?", personID).Count(&count).Error; err != nil {
		tb.Fatalf("count notes: %v", err)
	}
	return count
}
