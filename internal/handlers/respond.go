package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/errs"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
)

// currentUser pulls the user the session middleware loaded into the
// request context.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("user")
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func statusForCode(code errs.Code) int {
	switch code {
	case errs.CodeInvalid:
		return http.StatusBadRequest
	case errs.CodeUnauthorized:
		return http.StatusUnauthorized
	case errs.CodeForbidden:
		return http.StatusForbidden
	case errs.CodeNotFound:
		return http.StatusNotFound
	case errs.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a coded error to its HTTP status; anything uncoded is a
// store/infrastructure failure and stays opaque to the client.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	if e, ok := errs.As(err); ok {
		c.JSON(statusForCode(e.Code), gin.H{"error": e.Message})
		return
	}
	log.Error("Unhandled error", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
