package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/people-notes-backend/internal/http/response"
	"github.com/yungbote/people-notes-backend/internal/platform/apierr"
	"github.com/yungbote/people-notes-backend/internal/platform/dbctx"
	"github.com/yungbote/people-notes-backend/internal/services"
)

type PeopleHandler struct {
	people services.PeopleService
}

func NewPeopleHandler(people services.PeopleService) *PeopleHandler {
	return &PeopleHandler{people: people}
}

// GET /people
func (h *PeopleHandler) ReadAll(c *gin.Context) {
	people, err := h.people.ReadAll(dbctx.Context{Ctx: c.Request.Context()})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, people)
}

// GET /people/:lname
func (h *PeopleHandler) ReadOne(c *gin.Context) {
	person, err := h.people.ReadOne(dbctx.Context{Ctx: c.Request.Context()}, c.Param("lname"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, person)
}

// POST /people
// body: { "lname": "...", "fname": "..." }
func (h *PeopleHandler) Create(c *gin.Context) {
	var req services.PersonInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.InvalidArgument("invalid request body: %v", err))
		return
	}
	person, err := h.people.Create(dbctx.Context{Ctx: c.Request.Context()}, req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, person)
}

// PUT /people/:lname
// body: { "fname": "..." }
func (h *PeopleHandler) Update(c *gin.Context) {
	var req services.PersonInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.InvalidArgument("invalid request body: %v", err))
		return
	}
	person, err := h.people.Update(dbctx.Context{Ctx: c.Request.Context()}, c.Param("lname"), req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, person)
}

// DELETE /people/:lname
func (h *PeopleHandler) Delete(c *gin.Context) {
	if err := h.people.Delete(dbctx.Context{Ctx: c.Request.Context()}, c.Param("lname")); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}
