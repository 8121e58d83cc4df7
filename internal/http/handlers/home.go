package handlers

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/home.html
var homePage []byte

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler { return &HomeHandler{} }

// GET /
func (h *HomeHandler) Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", homePage)
}
