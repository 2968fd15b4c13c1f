package helpers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"conferencecentral/internal/domain"
)

var errorKinds = []struct {
	kind   error
	status int
	code   string
}{
	{domain.ErrUnauthorized, http.StatusUnauthorized, ErrCodeUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden, ErrCodeForbidden},
	{domain.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
	{domain.ErrInvalidInput, http.StatusBadRequest, ErrCodeBadRequest},
	{domain.ErrConflict, http.StatusConflict, ErrCodeConflict},
}

// WriteServiceError maps err to its status by domain kind. Anything else is
// logged and answered with 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	for _, k := range errorKinds {
		if errors.Is(err, k.kind) {
			WriteJSONError(w, k.status, k.code, clientMessage(err, k.kind))
			return
		}
	}
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}

// clientMessage drops the wrapping chain up to the kind so the message reads
// "no seats available" rather than "register: conflict: no seats available".
func clientMessage(err, kind error) string {
	msg := err.Error()
	prefix := kind.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return kind.Error()
}
