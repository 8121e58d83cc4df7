package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/people-notes-backend/internal/platform/apierr"
)

func TestRespondAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", apierr.NotFound("Note with ID %d not found", 3), http.StatusNotFound, apierr.CodeNotFound, "Note with ID 3 not found"},
		{"exists", apierr.AlreadyExists("dup"), http.StatusNotAcceptable, apierr.CodeAlreadyExists, "dup"},
		{"storage", errors.New("disk I/O error"), http.StatusInternalServerError, apierr.CodeInternal, "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondAPIError(c, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			var env ErrorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(t, tc.code, env.Error.Code)
			assert.Equal(t, tc.message, env.Error.Message)
		})
	}
}
