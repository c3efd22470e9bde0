package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"qa-forum/pkg/flash"
	"qa-forum/pkg/middleware"

	"github.com/gin-gonic/gin"
)

const (
	LoginPath = "/login/"
	HomePath  = "/"
)

// render fills in the data every page shares: the signed-in user and any
// pending notices.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Username"] = middleware.CurrentUsername(c)
	data["UserID"] = middleware.CurrentUserID(c)
	data["Messages"] = flash.Pop(c)
	c.HTML(status, name, data)
}

// NotFound renders the 404 page; it doubles as the router's NoRoute handler.
func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", gin.H{"Title": "Not found"})
}

func serverError(c *gin.Context) {
	render(c, http.StatusInternalServerError, "500.html", gin.H{"Title": "Error"})
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func questionPath(id uint) string {
	return "/question/" + strconv.FormatUint(uint64(id), 10) + "/"
}

// safeNext returns next when it is a path on this site, otherwise the home page.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return HomePath
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return HomePath
	}
	return next
}
