package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/people-notes-backend/internal/data/repos"
	"github.com/yungbote/people-notes-backend/internal/data/repos/testutil"
	types "github.com/yungbote/people-notes-backend/internal/domain"
	httpH "github.com/yungbote/people-notes-backend/internal/http/handlers"
	"github.com/yungbote/people-notes-backend/internal/http/response"
	"github.com/yungbote/people-notes-backend/internal/observability"
	"github.com/yungbote/people-notes-backend/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)
	personRepo := repos.NewPersonRepo(db, log)
	noteRepo := repos.NewNoteRepo(db, log)
	return NewRouter(RouterConfig{
		HomeHandler:   httpH.NewHomeHandler(),
		HealthHandler: httpH.NewHealthHandler(nil),
		PeopleHandler: httpH.NewPeopleHandler(services.NewPeopleService(db, log, personRepo, noteRepo)),
		NoteHandler:   httpH.NewNoteHandler(services.NewNoteService(db, log, personRepo, noteRepo)),
		Log:           log,
		Metrics:       observability.New(true),
	})
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestPeopleLifecycle(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, nethttp.MethodPost, "/api/people", map[string]string{"lname": "Bunny", "fname": "Easter"})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	bunny := decode[types.PersonView](t, rec)
	assert.Equal(t, "Bunny", bunny.LName)
	assert.Equal(t, "Easter", bunny.FName)
	assert.NotNil(t, bunny.Notes)

	rec = do(t, r, nethttp.MethodPost, "/api/people", map[string]string{"lname": "Bunny", "fname": "Other"})
	require.Equal(t, nethttp.StatusNotAcceptable, rec.Code)
	env := decode[response.ErrorEnvelope](t, rec)
	assert.Equal(t, "already_exists", env.Error.Code)
	assert.Equal(t, "Person with last name Bunny already exists", env.Error.Message)

	rec = do(t, r, nethttp.MethodPut, "/api/people/Bunny", map[string]string{"fname": "Spring"})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Spring", decode[types.PersonView](t, rec).FName)

	rec = do(t, r, nethttp.MethodGet, "/api/people", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	all := decode[[]types.PersonView](t, rec)
	require.Len(t, all, 1)
	assert.Equal(t, "Spring", all[0].FName)

	rec = do(t, r, nethttp.MethodDelete, "/api/people/Bunny", nil)
	require.Equal(t, nethttp.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, r, nethttp.MethodGet, "/api/people/Bunny", nil)
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
	assert.Equal(t, "Person with last name Bunny not found", decode[response.ErrorEnvelope](t, rec).Error.Message)

	rec = do(t, r, nethttp.MethodPut, "/api/people/Bunny", map[string]string{"fname": "x"})
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	rec = do(t, r, nethttp.MethodDelete, "/api/people/Bunny", nil)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestNotesLifecycleAndCascade(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, nethttp.MethodPost, "/api/people", map[string]string{"lname": "Bunny", "fname": "Easter"})
	require.Equal(t, nethttp.StatusCreated, rec.Code)
	bunny := decode[types.PersonView](t, rec)

	rec = do(t, r, nethttp.MethodPost, "/api/notes", map[string]any{"person_id": bunny.ID, "content": "Hide eggs"})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	note := decode[types.NoteView](t, rec)
	assert.Equal(t, bunny.ID, note.PersonID)
	assert.Equal(t, "Hide eggs", note.Content)

	notePath := fmt.Sprintf("/api/notes/%d", note.ID)
	rec = do(t, r, nethttp.MethodPut, notePath, map[string]any{"content": "Paint eggs", "person_id": bunny.ID + 99})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	updated := decode[types.NoteView](t, rec)
	assert.Equal(t, "Paint eggs", updated.Content)
	assert.Equal(t, bunny.ID, updated.PersonID)

	rec = do(t, r, nethttp.MethodGet, "/api/people/Bunny", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	withNotes := decode[types.PersonView](t, rec)
	require.Len(t, withNotes.Notes, 1)
	assert.Equal(t, "Paint eggs", withNotes.Notes[0].Content)

	rec = do(t, r, nethttp.MethodDelete, "/api/people/Bunny", nil)
	require.Equal(t, nethttp.StatusNoContent, rec.Code)

	rec = do(t, r, nethttp.MethodGet, notePath, nil)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	assert.Equal(t, fmt.Sprintf("Note with ID %d not found", note.ID), decode[response.ErrorEnvelope](t, rec).Error.Message)
}

func TestNotesErrors(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, nethttp.MethodPost, "/api/notes", map[string]any{"person_id": 42, "content": "orphan"})
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
	assert.Equal(t, "Person with ID 42 not found", decode[response.ErrorEnvelope](t, rec).Error.Message)

	rec = do(t, r, nethttp.MethodGet, "/api/notes/abc", nil)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_argument", decode[response.ErrorEnvelope](t, rec).Error.Code)

	rec = do(t, r, nethttp.MethodPut, "/api/notes/7", map[string]any{"content": "x"})
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)

	rec = do(t, r, nethttp.MethodDelete, "/api/notes/7", nil)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestCreatePersonValidation(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name string
		body any
	}{
		{name: "missing lname", body: map[string]string{"fname": "Easter"}},
		{name: "lname too long", body: map[string]string{"lname": "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefg", "fname": "x"}},
		{name: "wrong type", body: map[string]any{"lname": 12, "fname": "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, r, nethttp.MethodPost, "/api/people", tc.body)
			assert.Equal(t, nethttp.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, "invalid_argument", decode[response.ErrorEnvelope](t, rec).Error.Code)
		})
	}

	rec := do(t, r, nethttp.MethodGet, "/api/people", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Empty(t, decode[[]types.PersonView](t, rec))
}

func TestAmbientRoutes(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, nethttp.MethodGet, "/", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	rec = do(t, r, nethttp.MethodGet, "/healthcheck", nil)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	rec = do(t, r, nethttp.MethodGet, "/readyz", nil)
	assert.Equal(t, nethttp.StatusOK, rec.Code)

	do(t, r, nethttp.MethodGet, "/api/people", nil)
	rec = do(t, r, nethttp.MethodGet, "/metrics", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `pn_api_requests_total{method="GET",route="/api/people",status="200"} 1`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
