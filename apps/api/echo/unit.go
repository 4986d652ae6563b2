package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/student"
	"github.com/trezcool/zoezi/core/unit"
)

type unitApi struct {
	svc        *unit.Service
	studentSvc *student.Service
}

func registerUnitAPI(g *echo.Group, svc *unit.Service, studentSvc *student.Service) {
	api := unitApi{svc: svc, studentSvc: studentSvc}

	g.GET("", api.query)
	g.GET("/:unitID/exercises", api.queryExercises)
	g.POST("/:unitID/exercises/:exercise/state", api.setState)
	g.POST("/:unitID/exercises/:exercise/blocked", api.setBlocked)
	g.POST("/:unitID/exercises/:exercise/corrected", api.setCorrected)
}

// Handlers

func (api *unitApi) query(ctx echo.Context) error {
	units, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying units")
	}
	return ctx.JSON(http.StatusOK, units)
}

func (api *unitApi) queryExercises(ctx echo.Context) error {
	unitID, err := pathUnitID(ctx)
	if err != nil {
		return err
	}
	exercises, err := api.svc.ExercisesByUnit(ctx.Request().Context(), unitID)
	if err != nil {
		return errors.Wrap(err, "querying exercises")
	}
	return ctx.JSON(http.StatusOK, exercises)
}

func (api *unitApi) setState(ctx echo.Context) error {
	unitID, exercise, err := pathCoords(ctx)
	if err != nil {
		return err
	}

	var state string
	if err = bindJSON(ctx, &state); err != nil {
		return err
	}
	data := unit.StateChange{State: state}
	if err = data.Validate(); err != nil {
		return err
	}

	if err = api.svc.SetStudentState(ctx.Request().Context(), contextStudentID(ctx), unitID, exercise, data.State); err != nil {
		return errors.Wrap(err, "setting exercise state")
	}
	return ctx.JSON(http.StatusOK, nil)
}

func (api *unitApi) setBlocked(ctx echo.Context) error {
	unitID, exercise, err := pathCoords(ctx)
	if err != nil {
		return err
	}

	var blocked bool
	if err = bindJSON(ctx, &blocked); err != nil {
		return err
	}

	if err = api.svc.SetBlocked(ctx.Request().Context(), unitID, exercise, blocked); err != nil {
		return errors.Wrap(err, "setting exercise blocked")
	}
	return ctx.JSON(http.StatusOK, nil)
}

// setCorrected flags the exercise as corrected for the caller's class half.
func (api *unitApi) setCorrected(ctx echo.Context) error {
	unitID, exercise, err := pathCoords(ctx)
	if err != nil {
		return err
	}

	var corrected bool
	if err = bindJSON(ctx, &corrected); err != nil {
		return err
	}

	s, err := api.studentSvc.GetByID(ctx.Request().Context(), contextStudentID(ctx))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errUnauthorized
		}
		return errors.Wrap(err, "finding student by ID")
	}

	if err = api.svc.SetCorrected(ctx.Request().Context(), unitID, exercise, s.InGroupEven, corrected); err != nil {
		return errors.Wrap(err, "setting exercise corrected")
	}
	return ctx.JSON(http.StatusOK, nil)
}
