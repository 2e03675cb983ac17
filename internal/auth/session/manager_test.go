package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/clinicdesk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = req
	return c, rec
}

func TestReadTokenPrefersCookie(t *testing.T) {
	m := NewManager(config.Config{})
	req := httptest.NewRequest(http.MethodGet, "/api/bills", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")

	c, _ := newContext(req)
	token, ok := m.ReadToken(c)
	require.True(t, ok)
	assert.Equal(t, "cookie-token", token)
}

func TestReadTokenBearer(t *testing.T) {
	m := NewManager(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/bills", nil)
	req.Header.Set("Authorization", "bearer  abc ")
	c, _ := newContext(req)
	token, ok := m.ReadToken(c)
	require.True(t, ok)
	assert.Equal(t, "abc", token)

	req = httptest.NewRequest(http.MethodGet, "/api/bills", nil)
	req.Header.Set("Authorization", "Basic abc")
	c, _ = newContext(req)
	_, ok = m.ReadToken(c)
	assert.False(t, ok)
}

func TestSetAndClearCookie(t *testing.T) {
	m := NewManager(config.Config{Auth: config.AuthConfig{CookieSecure: true}})

	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	m.Set(c, "tok", time.Now().Add(time.Hour))
	cookie := rec.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, DefaultCookieName+"=tok")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "Secure")

	c, rec = newContext(httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	m.Clear(c)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}
