package routes_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/craftmarket/api/config"
	"github.com/craftmarket/api/httperr"
	"github.com/craftmarket/api/middleware"
	"github.com/craftmarket/api/routes"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := config.Config{Log: config.LogConfig{Level: "info"}}
	return routes.SetupRouter(cfg, nil, zap.NewNop())
}

type envelope struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
}

func doRequest(t *testing.T, r *gin.Engine, method, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestUnknownRouteEnvelope(t *testing.T) {
	r := testRouter(t)

	w, env := doRequest(t, r, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, env.ErrorCode)
	assert.Equal(t, http.StatusText(http.StatusNotFound), env.Message)
}

func TestDomainErrorKeepsStatusAndMessage(t *testing.T) {
	r := testRouter(t)
	r.GET("/conflict", func(c *gin.Context) {
		c.Error(httperr.Conflict("favorite already exists"))
	})

	w, env := doRequest(t, r, http.MethodGet, "/conflict")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, http.StatusConflict, env.ErrorCode)
	assert.Equal(t, "favorite already exists", env.Message)
}

func TestUnexpectedErrorIsGeneric(t *testing.T) {
	r := testRouter(t)
	r.GET("/broken", func(c *gin.Context) {
		c.Error(errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	})

	w, env := doRequest(t, r, http.MethodGet, "/broken")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), env.Message)
	assert.NotContains(t, w.Body.String(), "10.0.0.5", "internal details must not leak")
}

func TestPanicBecomesGeneric500(t *testing.T) {
	r := testRouter(t)
	r.GET("/panic", func(c *gin.Context) {
		panic("secret database password")
	})

	w, env := doRequest(t, r, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, http.StatusInternalServerError, env.ErrorCode)
	assert.NotContains(t, w.Body.String(), "secret", "panic values must not leak")
}

func TestErrorAfterResponseWriteKeepsBody(t *testing.T) {
	r := testRouter(t)
	r.GET("/late", func(c *gin.Context) {
		c.String(http.StatusOK, "partial payload")
		c.Error(httperr.Conflict("too late"))
	})
	r.GET("/late-panic", func(c *gin.Context) {
		c.String(http.StatusOK, "partial payload")
		panic("after write")
	})

	// an error attached after the body went out must not append a second one
	for _, path := range []string{"/late", "/late-panic"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, "partial payload", w.Body.String(), path)
		assert.NotContains(t, w.Body.String(), "error_code", path)
	}
}

func TestRequestIDIssuedAndEchoed(t *testing.T) {
	r := testRouter(t)
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	r.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	r := testRouter(t)
	r.POST("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ok", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}
