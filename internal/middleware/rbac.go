package middleware

import (
	"errors"
	"net/http"

	"github.com/examdesk/examdesk-backend/internal/access"
	"github.com/examdesk/examdesk-backend/internal/response"
	"github.com/gin-gonic/gin"
)

// RequireAccess evaluates check against the authenticated user.
// Must be mounted after RequireAuth.
func RequireAccess(check access.Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := check(GetUser(c)); err != nil {
			AbortAccessError(c, err)
			return
		}
		c.Next()
	}
}

// AbortAccessError maps an access error onto 401 or 403.
func AbortAccessError(c *gin.Context, err error) {
	if errors.Is(err, access.ErrAuthenticationRequired) {
		response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
}
