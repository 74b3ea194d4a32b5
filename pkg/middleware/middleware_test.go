package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taskmanager/pkg/constant"
	"github.com/taskmanager/pkg/dtos"
	"github.com/taskmanager/pkg/state"
	"github.com/taskmanager/pkg/token"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

type seen struct {
	called   bool
	identity state.Identity
	fromReq  state.Identity
}

func protectedRouter(verifier TokenVerifier, s *seen) *gin.Engine {
	r := gin.New()
	r.GET("/me", CheckAuth(verifier), func(c *gin.Context) {
		s.called = true
		s.identity = state.CurrentUser(c)
		s.fromReq = state.CurrentUser(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func TestCheckAuth_AcceptsTokenSources(t *testing.T) {
	tokens := token.NewService(testSecret, time.Hour)
	tok, err := tokens.Issue("a@x.com", 7)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		value  string
	}{
		{"raw token header", "token", tok},
		{"bearer", "Authorization", "Bearer " + tok},
		{"bearer lowercase", "Authorization", "bearer " + tok},
		{"raw authorization", "Authorization", tok},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &seen{}
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set(tt.header, tt.value)
			rec := httptest.NewRecorder()

			protectedRouter(tokens, s).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, s.called)
			assert.Equal(t, state.Identity{ID: 7, Email: "a@x.com"}, s.identity)
			assert.Equal(t, s.identity, s.fromReq)
		})
	}
}

func TestCheckAuth_TokenHeaderWinsOverAuthorization(t *testing.T) {
	tokens := token.NewService(testSecret, time.Hour)
	tok, err := tokens.Issue("a@x.com", 7)
	require.NoError(t, err)

	s := &seen{}
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("token", tok)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	protectedRouter(tokens, s).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckAuth_Rejects(t *testing.T) {
	tokens := token.NewService(testSecret, time.Hour)
	expired := token.NewService(testSecret, -time.Minute)
	stale, err := expired.Issue("a@x.com", 7)
	require.NoError(t, err)
	foreign, err := token.NewService([]byte("ffffffffffffffffffffffffffffffff"), time.Hour).Issue("a@x.com", 7)
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
	}{
		{"missing", ""},
		{"garbage", "Bearer nope"},
		{"expired", "Bearer " + stale},
		{"wrong secret", "Bearer " + foreign},
		{"basic scheme", "Basic dXNlcjpwYXNz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &seen{}
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.value != "" {
				req.Header.Set("Authorization", tt.value)
			}
			rec := httptest.NewRecorder()

			protectedRouter(tokens, s).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, s.called)

			var body dtos.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, constant.STATUS_FAIL, body.Status)
			assert.Equal(t, constant.UNAUTHORIZED, body.Message)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var fromCtx any
	r.GET("/", func(c *gin.Context) {
		fromCtx = c.Request.Context().Value(state.RequestID)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, fromCtx)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
}

func TestClaimIp(t *testing.T) {
	r := gin.New()
	r.Use(ClaimIp())
	var ip string
	r.GET("/", func(c *gin.Context) {
		ip = c.GetString(state.CurrentUserIP)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "10.1.2.3", ip)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/api/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/docs/index.html", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/x", nil))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestRateLimiter_FixedWindow(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "limits are per client")

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("a"), "a new window starts after the old one elapses")
}

func TestRateLimiter_SweepsExpiredWindows(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, time.Minute)
	rl.lastSweep = now
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	rl.Allow("b")
	require.Len(t, rl.visitors, 2)

	now = now.Add(2 * time.Minute)
	rl.Allow("c")
	assert.Len(t, rl.visitors, 1)
}

func TestRateLimiter_Middleware(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(1, time.Hour).Limit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), TOO_MANY_REQUESTS)
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("much too large")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	// undeclared length is still capped while reading
	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader("much too large")))
	req.ContentLength = -1
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
