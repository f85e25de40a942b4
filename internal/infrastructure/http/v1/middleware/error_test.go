package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devinventory/internal/core/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	r := gin.New()
	r.Use(Recovery(), Trace(), ErrorHandler())
	r.GET("/x", handler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func TestErrorHandler_AppError(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		_ = c.Error(apperror.NewSequenceExhausted("07-24", 999))
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperror.CodeSequenceExhausted, body["code"])
	assert.Equal(t, "07-24", body["details"].(map[string]any)["bucket"])
}

func TestErrorHandler_HidesInternalCause(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		_ = c.Error(errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.CodeInternal, body["code"])
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
	assert.NotEmpty(t, body["details"].(map[string]any)["request_id"])
}

func TestRecovery_WritesJSON(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		panic("boom")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.CodeInternal, body["code"])
	assert.NotContains(t, w.Body.String(), "boom")
}
