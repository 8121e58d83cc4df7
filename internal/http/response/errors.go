package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/people-notes-backend/internal/platform/apierr"
)

var errInternal = errors.New("internal error")

// RespondAPIError writes err using its *apierr.Error status and code. Anything
// else becomes a 500 whose detail is attached to the gin context for the
// request logger instead of the response body.
func RespondAPIError(c *gin.Context, err error) {
	if ae, ok := apierr.As(err); ok {
		status := ae.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		RespondError(c, status, ae.Code, ae)
		return
	}
	_ = c.Error(err)
	RespondError(c, http.StatusInternalServerError, apierr.CodeInternal, errInternal)
}
