package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hbnb/pkg/apperrors"
	"github.com/oksasatya/go-hbnb/pkg/helpers"
	"github.com/oksasatya/go-hbnb/pkg/response"
	"github.com/oksasatya/go-hbnb/pkg/validation"
)

var statusByKind = map[apperrors.Kind]int{
	apperrors.KindValidation:   http.StatusBadRequest,
	apperrors.KindNotFound:     http.StatusNotFound,
	apperrors.KindForbidden:    http.StatusForbidden,
	apperrors.KindConflict:     http.StatusConflict,
	apperrors.KindUnauthorized: http.StatusUnauthorized,
	apperrors.KindInternal:     http.StatusInternalServerError,
}

// StatusOf maps an application error onto an HTTP status.
func StatusOf(err error) int {
	if s, ok := statusByKind[apperrors.KindOf(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// writeError renders err in the response envelope. Internal failures are
// logged and their detail withheld from the client.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		})
		response.Error[any](c, status, "internal server error", nil)
		return
	}

	var details any
	if field := apperrors.FieldOf(err); field != "" {
		details = map[string]string{field: messageOf(err)}
	}
	response.Error[any](c, status, messageOf(err), details)
}

func messageOf(err error) string {
	var ae *apperrors.Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}

// bindError renders a malformed request body as a validation failure.
func bindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
