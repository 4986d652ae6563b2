package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/zoezi/core"
	"github.com/trezcool/zoezi/core/student"
)

var contextStudentKey = "studentID"

// bearerAuthMiddleware authenticates the "Authorization: Bearer <token>"
// header. A missing or non-bearer header is a 401; a presented token that
// fails verification is a 403 and gets logged with the caller's IP.
func bearerAuthMiddleware(logger core.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, ok := bearerCredentials(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return errUnauthorized
			}
			id, err := student.VerifyToken(token)
			if err != nil {
				logger.Warn("rejected bearer token: "+err.Error(), map[string]interface{}{"ip": ctx.RealIP()})
				return errHttpForbidden
			}
			ctx.Set(contextStudentKey, id)
			return next(ctx)
		}
	}
}

func bearerCredentials(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "bearer") {
		return "", false
	}
	return fields[1], true
}

// contextStudentID returns the authenticated student ID set by
// bearerAuthMiddleware.
func contextStudentID(ctx echo.Context) int {
	id, _ := ctx.Get(contextStudentKey).(int)
	return id
}
