package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/szuwgh/hanword/pkg/analysis"
	"github.com/szuwgh/hanword/pkg/server"
)

type ErrResult struct {
	Status    int    `json:"status"`
	Des       string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

var errBodyTooLarge = errors.New("request body too large")

// requestError is a malformed request.
type requestError struct {
	msg string
}

func (e *requestError) Error() string {
	return e.msg
}

func badRequest(format string, args ...interface{}) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

// bindError classifies a body read or decode failure.
func bindError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return errors.Wrapf(errBodyTooLarge, "limit %d bytes", mbe.Limit)
	}
	return badRequest("invalid request body: %v", err)
}

func statusOf(err error) int {
	var re *requestError
	switch {
	case errors.Is(err, analysis.ErrEmptyInput), errors.As(err, &re):
		return http.StatusBadRequest
	case errors.Is(err, server.ErrBatchTooLarge), errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func toErrResult(c *gin.Context, err error) *ErrResult {
	return &ErrResult{
		Status:    statusOf(err),
		Des:       err.Error(),
		RequestID: c.GetString(requestIDKey),
	}
}

func writeErr(c *gin.Context, err error) {
	res := toErrResult(c, err)
	c.AbortWithStatusJSON(res.Status, res)
}
