package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/shop-backend/internal/pkg/ctxutil"
	"github.com/yungbote/shop-backend/internal/platform/apierr"
)

type APIError struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	var reqID string
	if c.Request != nil {
		reqID = ctxutil.RequestID(c.Request.Context())
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message:   msg,
			Code:      code,
			RequestID: reqID,
		},
	})
}

// RespondServiceError maps err through apierr; fallback names the failure
// when err carries no code of its own.
func RespondServiceError(c *gin.Context, fallback string, err error) {
	ae := apierr.FromError(err, fallback)
	if ae == nil {
		ae = apierr.New(http.StatusInternalServerError, fallback, nil)
	}
	RespondError(c, ae.Status, ae.Code, ae.Err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
