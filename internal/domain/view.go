package domain

import (
	"sort"
	"time"
)

type NoteView struct {
	ID        uint      `json:"id"`
	PersonID  uint      `json:"person_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type PersonView struct {
	ID        uint       `json:"id"`
	LName     string     `json:"lname"`
	FName     string     `json:"fname"`
	Timestamp time.Time  `json:"timestamp"`
	Notes     []NoteView `json:"notes"`
}

func NewNoteView(n *Note) NoteView {
	return NoteView{
		ID:        n.ID,
		PersonID:  n.PersonID,
		Content:   n.Content,
		Timestamp: n.Timestamp.UTC(),
	}
}

// NewPersonView nests notes newest first. Notes owned by other people are skipped.
func NewPersonView(p *Person, notes []*Note) PersonView {
	out := PersonView{
		ID:        p.ID,
		LName:     p.LName,
		FName:     p.FName,
		Timestamp: p.Timestamp.UTC(),
		Notes:     make([]NoteView, 0, len(notes)),
	}
	for _, n := range notes {
		if n == nil || n.PersonID != p.ID {
			continue
		}
		out.Notes = append(out.Notes, NewNoteView(n))
	}
	SortNotesNewestFirst(out.Notes)
	return out
}

// SortNotesNewestFirst orders by timestamp descending, then id descending.
func SortNotesNewestFirst(notes []NoteView) {
	sort.SliceStable(notes, func(i, j int) bool {
		if !notes[i].Timestamp.Equal(notes[j].Timestamp) {
			return notes[i].Timestamp.After(notes[j].Timestamp)
		}
		return notes[i].ID > notes[j].ID
	})
}
