package httpd

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cwbudde/traffic-vmd/flow/ingest"
	"github.com/cwbudde/traffic-vmd/internal/demo"
	"github.com/cwbudde/traffic-vmd/vmd"
)

// Response is the JSON envelope of every API reply.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

func failStatus(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Code: status, Message: message})
}

func badRequest(c *gin.Context, message string) {
	failStatus(c, http.StatusBadRequest, message)
}

// fail maps pipeline errors onto HTTP statuses: absent data is 404,
// bad selections and parameters are 400, the rest is 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ingest.ErrMissingSourceFile),
		errors.Is(err, ingest.ErrNoSiteColumn):
		failStatus(c, http.StatusNotFound, err.Error())
	case errors.Is(err, demo.ErrUnknownDate),
		errors.Is(err, demo.ErrDateRange),
		errors.Is(err, demo.ErrRecombination),
		errors.Is(err, vmd.ErrShortSignal),
		errors.Is(err, vmd.ErrNonFinite):
		badRequest(c, err.Error())
	default:
		failStatus(c, http.StatusInternalServerError, err.Error())
	}
}
