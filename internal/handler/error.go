package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
)

// HTTPError is a handler failure that carries the status to render.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func errAuthorNotFound(err error) *HTTPError {
	return &HTTPError{Status: http.StatusNotFound, Message: "Author not found", Err: err}
}

// fail hands err to ErrorHandler and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler renders the error page for the last error attached to the
// context, unless the handler already wrote a response. With verbose set the
// underlying error text is shown on the page.
func ErrorHandler(log zerolog.Logger, verbose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := http.StatusInternalServerError
		message := http.StatusText(status)

		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Status
			message = httpErr.Message
		}

		evt := log.Error()
		if status < http.StatusInternalServerError {
			evt = log.Warn()
		}
		evt.Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Int("status", status).
			Msg("request failed")

		data := gin.H{
			"title":   "Error",
			"status":  status,
			"message": message,
		}
		if verbose {
			data["detail"] = err.Error()
		}

		c.HTML(status, "error", data)
	}
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}
