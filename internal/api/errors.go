package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wizqo2024/wizqo-sub002/shared/logging"
	"github.com/wizqo2024/wizqo-sub002/shared/storage"
)

// apiError carries the HTTP status and machine-readable code for a failure.
type apiError struct {
	status int
	code   string
	err    error
}

func (e *apiError) Error() string { return e.err.Error() }
func (e *apiError) Unwrap() error { return e.err }

func badRequest(msg string) error {
	return &apiError{status: http.StatusBadRequest, code: "bad_request", err: errors.New(msg)}
}

func forbidden(msg string) error {
	return &apiError{status: http.StatusForbidden, code: "forbidden", err: errors.New(msg)}
}

// respondError writes the JSON error envelope. Unknown errors are logged and
// reported as 500 without leaking details.
func respondError(c *gin.Context, log *logging.Logger, err error) {
	var apiErr *apiError
	switch {
	case errors.As(err, &apiErr):
		c.AbortWithStatusJSON(apiErr.status, gin.H{"error": apiErr.err.Error(), "code": apiErr.code})
	case errors.Is(err, storage.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found", "code": "not_found"})
	default:
		log.Error("request failed", "path", c.Request.URL.Path, "request_id", c.GetString(requestIDKey), "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "code": "internal"})
	}
}
