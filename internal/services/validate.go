package services

import (
	"strings"
	"unicode/utf8"

	types "github.com/yungbote/people-notes-backend/internal/domain"
	"github.com/yungbote/people-notes-backend/internal/platform/apierr"
)

type PersonInput struct {
	LName string `json:"lname"`
	FName string `json:"fname"`
}

type NoteInput struct {
	PersonID uint   `json:"person_id"`
	Content  string `json:"content"`
}

func validateLName(lname string) (string, error) {
	lname = strings.TrimSpace(lname)
	if lname == "" {
		return "", apierr.InvalidArgument("lname is required")
	}
	if utf8.RuneCountInString(lname) > types.MaxLastNameLen {
		return "", apierr.InvalidArgument("lname must be at most %d characters", types.MaxLastNameLen)
	}
	return lname, nil
}

func validateFName(fname string) (string, error) {
	fname = strings.TrimSpace(fname)
	if utf8.RuneCountInString(fname) > types.MaxFirstNameLen {
		return "", apierr.InvalidArgument("fname must be at most %d characters", types.MaxFirstNameLen)
	}
	return fname, nil
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apierr.InvalidArgument("content is required")
	}
	return content, nil
}

func validatePersonID(id uint) error {
	if id == 0 {
		return apierr.InvalidArgument("person_id is required")
	}
	return nil
}

func validateNewPerson(in PersonInput) (PersonInput, error) {
	lname, err := validateLName(in.LName)
	if err != nil {
		return in, err
	}
	fname, err := validateFName(in.FName)
	if err != nil {
		return in, err
	}
	return PersonInput{LName: lname, FName: fname}, nil
}

func validateNewNote(in NoteInput) (NoteInput, error) {
	if err := validatePersonID(in.PersonID); err != nil {
		return in, err
	}
	content, err := validateContent(in.Content)
	if err != nil {
		return in, err
	}
	return NoteInput{PersonID: in.PersonID, Content: content}, nil
}
