package echoapi

import (
	"io/ioutil"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/correction"
)

type correctionApi struct {
	svc *correction.Service
}

func registerCorrectionAPI(g *echo.Group, svc *correction.Service) {
	api := correctionApi{svc: svc}

	g.POST("", api.submit, middleware.BodyLimit("5M"))
	g.DELETE("/:digest", api.destroy)
}

// Handlers

func (api *correctionApi) submit(ctx echo.Context) error {
	unitID, exercise, err := pathCoords(ctx)
	if err != nil {
		return err
	}

	picture, err := ioutil.ReadAll(ctx.Request().Body)
	if err != nil {
		return errors.Wrap(err, "reading picture body")
	}

	corr, err := api.svc.Submit(
		ctx.Request().Context(),
		unitID, exercise, contextStudentID(ctx),
		picture, ctx.Request().Header.Get(echo.HeaderContentType),
	)
	if err != nil {
		return errors.Wrap(err, "submitting correction")
	}
	return ctx.JSON(http.StatusCreated, CorrectionResponse{Digest: corr.Digest})
}

func (api *correctionApi) destroy(ctx echo.Context) error {
	unitID, exercise, err := pathCoords(ctx)
	if err != nil {
		return err
	}

	// deleting an absent correction is a no-op, not an error
	if err = api.svc.Delete(ctx.Request().Context(), unitID, exercise, ctx.Param("digest")); err != nil {
		return errors.Wrap(err, "deleting correction")
	}
	return ctx.JSON(http.StatusOK, nil)
}

type CorrectionResponse struct {
	Digest string `json:"digest"`
}
