package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-hbnb/pkg/apperrors"
)

func TestStatusOf(t *testing.T) {
	cases := map[error]int{
		apperrors.NewValidation("price", "must be positive"): http.StatusBadRequest,
		apperrors.NewNotFound("place", "p1"):                 http.StatusNotFound,
		apperrors.NewForbidden("no"):                         http.StatusForbidden,
		apperrors.NewConflict("taken"):                       http.StatusConflict,
		apperrors.NewUnauthorized("who"):                     http.StatusUnauthorized,
		apperrors.NewInternal("boom", errors.New("x")):       http.StatusInternalServerError,
		errors.New("unclassified"):                           http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, StatusOf(err), err.Error())
	}
}

func render(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	writeError(c, logger, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestWriteErrorValidationDetails(t *testing.T) {
	w, body := render(t, apperrors.NewValidation("latitude", "must be between -90 and 90"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "must be between -90 and 90", body["message"])
	assert.Equal(t, map[string]any{"latitude": "must be between -90 and 90"}, body["error"])
	assert.Equal(t, false, body["success"])
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	w, body := render(t, apperrors.NewInternal("store failed", errors.New("dial tcp: refused")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", body["message"])
	assert.NotContains(t, w.Body.String(), "refused")
}
