package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core"
	"github.com/trezcool/zoezi/core/student"
)

type studentApi struct {
	svc    *student.Service
	logger core.Logger
}

func registerStudentAPI(g *echo.Group, auth echo.MiddlewareFunc, svc *student.Service, logger core.Logger) {
	api := studentApi{svc: svc, logger: logger}

	// un-authed endpoints
	// TODO: rate limit `/log-in`
	g.POST("/log-in", api.logIn, middleware.BodyLimit("1K"))

	// authed endpoints
	g.GET("/students/me", api.me, auth)
}

// Handlers

func (api *studentApi) logIn(ctx echo.Context) error {
	var data LogInRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LogInRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	_, token, err := api.svc.Authenticate(ctx.Request().Context(), data.Username, data.Password)
	if err != nil {
		if errors.Cause(err) == student.ErrAuthenticationFailed {
			api.logger.Warn("failed log-in attempt for "+data.Username, map[string]interface{}{"ip": ctx.RealIP()})
			return errAuthenticationFailed
		}
		return errors.Wrap(err, "authenticating")
	}

	// the token is the whole response, as a bare JSON string
	return ctx.JSON(http.StatusOK, token)
}

func (api *studentApi) me(ctx echo.Context) error {
	s, err := api.svc.GetByID(ctx.Request().Context(), contextStudentID(ctx))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			// valid signature for a student that no longer exists
			return errUnauthorized
		}
		return errors.Wrap(err, "finding student by ID")
	}
	return ctx.JSON(http.StatusOK, s)
}

type LogInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (lr *LogInRequest) Validate() error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	return core.Validate.Struct(lr)
}
