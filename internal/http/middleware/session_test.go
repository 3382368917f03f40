package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albinolog/contracts/internal/session"
)

func newEngine(manager *session.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(manager, false))
	r.GET("/whoami", func(c *gin.Context) {
		profileID, ok := MustProfile(c)
		if !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.String(http.StatusOK, profileID)
	})
	return r
}

func TestSession_IssuesAndReusesCookie(t *testing.T) {
	r := newEngine(session.NewManager("secret", time.Hour))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	first := rec.Body.String()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, first, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestSession_ReplacesInvalidCookie(t *testing.T) {
	r := newEngine(session.NewManager("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
	assert.Len(t, rec.Result().Cookies(), 1)
}
