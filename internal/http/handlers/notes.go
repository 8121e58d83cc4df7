package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/people-notes-backend/internal/http/response"
	"github.com/yungbote/people-notes-backend/internal/platform/apierr"
	"github.com/yungbote/people-notes-backend/internal/platform/dbctx"
	"github.com/yungbote/people-notes-backend/internal/services"
)

type NoteHandler struct {
	notes services.NoteService
}

func NewNoteHandler(notes services.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// POST /notes
// body: { "person_id": 1, "content": "..." }
func (h *NoteHandler) Create(c *gin.Context) {
	var req services.NoteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.InvalidArgument("invalid request body: %v", err))
		return
	}
	note, err := h.notes.Create(dbctx.Context{Ctx: c.Request.Context()}, req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, note)
}

// GET /notes/:note_id
func (h *NoteHandler) ReadOne(c *gin.Context) {
	id, ok := noteIDParam(c)
	if !ok {
		return
	}
	note, err := h.notes.ReadOne(dbctx.Context{Ctx: c.Request.Context()}, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, note)
}

// PUT /notes/:note_id
// body: { "content": "..." }
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := noteIDParam(c)
	if !ok {
		return
	}
	var req services.NoteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.InvalidArgument("invalid request body: %v", err))
		return
	}
	note, err := h.notes.Update(dbctx.Context{Ctx: c.Request.Context()}, id, req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, note)
}

// DELETE /notes/:note_id
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := noteIDParam(c)
	if !ok {
		return
	}
	if err := h.notes.Delete(dbctx.Context{Ctx: c.Request.Context()}, id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func noteIDParam(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("note_id"))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.RespondAPIError(c, apierr.InvalidArgument("note_id must be a positive integer, got %q", raw))
		return 0, false
	}
	return uint(id), true
}
