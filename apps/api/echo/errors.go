package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core"
	"github.com/trezcool/zoezi/core/correction"
	"github.com/trezcool/zoezi/core/student"
	"github.com/trezcool/zoezi/core/unit"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusUnauthorized, "authentication failed")
	errHttpForbidden        = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
func newAppHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			code = statusForErr(origErr)
			if code == http.StatusInternalServerError { // any other error is a server error
				msg := http.StatusText(code)
				message = msg
				logger.Error(msg, errors.Wrap(err, msg), map[string]interface{}{"ip": ctx.RealIP()})
			} else {
				message = origErr.Error()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// statusForErr maps domain errors to their HTTP status.
func statusForErr(err error) int {
	switch err {
	case student.ErrAuthenticationFailed:
		return http.StatusUnauthorized
	case unit.ErrUnitNotFound, unit.ErrExerciseNotFound:
		return http.StatusNotFound
	case unit.ErrInvalidState, correction.ErrUndecodable, correction.ErrImageTooLarge:
		return http.StatusBadRequest
	case correction.ErrEncodedTooLarge:
		return http.StatusRequestEntityTooLarge
	case correction.ErrAlreadyExists:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
