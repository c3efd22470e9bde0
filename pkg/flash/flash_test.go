package flash

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/act", func(c *gin.Context) {
		Add(c, Success, "You liked the answer.")
		Add(c, Warning, "Careful.")
		c.Redirect(http.StatusFound, "/page")
	})
	r.GET("/page", func(c *gin.Context) {
		c.JSON(http.StatusOK, Pop(c))
	})
	return r
}

func lastCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == CookieName {
			found = ck
		}
	}
	require.NotNil(t, found, "flash cookie not set")
	return found
}

func TestFlash_SurvivesRedirect(t *testing.T) {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/act", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)

	ck := lastCookie(t, w)
	assert.True(t, ck.HttpOnly)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/page", nil)
	req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	router.ServeHTTP(w, req)

	var msgs []Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msgs))
	assert.Equal(t, []Message{
		{Level: Success, Text: "You liked the answer."},
		{Level: Warning, Text: "Careful."},
	}, msgs)

	cleared := lastCookie(t, w)
	assert.True(t, cleared.MaxAge < 0)
}

func TestFlash_EmptyWithoutCookie(t *testing.T) {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/page", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, "null", w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestFlash_IgnoresTamperedCookie(t *testing.T) {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/page", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "%%%not-base64"})
	router.ServeHTTP(w, req)

	assert.Equal(t, "null", w.Body.String())
}

func TestFlash_AddThenPopInSameRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/degraded", func(c *gin.Context) {
		Add(c, Error, "Error loading questions.")
		c.JSON(http.StatusOK, Pop(c))
	})
	router.GET("/page", func(c *gin.Context) {
		c.JSON(http.StatusOK, Pop(c))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/degraded", nil)
	router.ServeHTTP(w, req)

	var msgs []Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msgs))
	assert.Equal(t, []Message{{Level: Error, Text: "Error loading questions."}}, msgs)

	ck := lastCookie(t, w)
	assert.True(t, ck.MaxAge < 0)
	assert.Empty(t, ck.Value)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/page", nil)
	req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	router.ServeHTTP(w, req)

	assert.Equal(t, "null", w.Body.String())
}
