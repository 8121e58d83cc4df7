package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
		code   string
		msg    string
	}{
		{NotFound("Person with last name %s not found", "Bunny"), http.StatusNotFound, CodeNotFound, "Person with last name Bunny not found"},
		{AlreadyExists("Person with last name %s already exists", "Bunny"), http.StatusNotAcceptable, CodeAlreadyExists, "Person with last name Bunny already exists"},
		{InvalidArgument("lname is required"), http.StatusBadRequest, CodeInvalidArgument, "lname is required"},
	}
	for _, tc := range cases {
		if tc.err.Status != tc.status || tc.err.Code != tc.code || tc.err.Error() != tc.msg {
			t.Fatalf("unexpected error: %+v (%q)", tc.err, tc.err.Error())
		}
	}
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NotFound("Note with ID %d not found", 7))
	ae, ok := As(wrapped)
	if !ok || ae.Status != http.StatusNotFound {
		t.Fatalf("As(wrapped) = %+v, %v", ae, ok)
	}
	if !IsCode(wrapped, CodeNotFound) {
		t.Fatal("IsCode(wrapped, not_found) = false")
	}
	if IsCode(errors.New("plain"), CodeNotFound) {
		t.Fatal("IsCode(plain) = true")
	}
	if _, ok := As(nil); ok {
		t.Fatal("As(nil) = true")
	}
}
