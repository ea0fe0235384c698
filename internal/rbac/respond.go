package rbac

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/full-stack-rbac/full-stack-rbac/internal/platform/httpx"
)

// RespondError maps service errors to the wire envelope. Conflicts are 400,
// missing references are 404; everything else is an infrastructure failure.
func RespondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var conflict *AlreadyExistsError
	var notFound *NotFoundError
	switch {
	case errors.As(err, &conflict):
		httpx.Error(w, http.StatusBadRequest, conflict.Error(), conflict.Detail)
	case errors.As(err, &notFound):
		httpx.Error(w, http.StatusNotFound, notFound.Error(), notFound.Detail)
	default:
		if logger != nil {
			logger.Error("request failed", slog.Any("error", err))
		}
		httpx.Error(w, http.StatusInternalServerError, "internal server error", "")
	}
}

// ParseID parses a uuid path parameter, writing the 400 envelope on failure.
func ParseID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid id", err.Error())
		return uuid.Nil, false
	}
	return id, true
}
