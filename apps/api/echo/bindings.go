package echoapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// bindJSON decodes a bare JSON value from the request body. echo's Bind only
// handles JSON objects, and the state/blocked/corrected endpoints take a bare
// string or bool.
func bindJSON(ctx echo.Context, v interface{}) error {
	if err := json.NewDecoder(ctx.Request().Body).Decode(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body").SetInternal(err)
	}
	return nil
}

// pathCoords parses the :unitID and :exercise path params. Non-numeric params
// cannot name an existing resource, hence 404.
func pathCoords(ctx echo.Context) (unitID, exercise int, err error) {
	if unitID, err = strconv.Atoi(ctx.Param("unitID")); err != nil {
		return 0, 0, errHttpNotFound
	}
	if exercise, err = strconv.Atoi(ctx.Param("exercise")); err != nil {
		return 0, 0, errHttpNotFound
	}
	return unitID, exercise, nil
}

func pathUnitID(ctx echo.Context) (int, error) {
	unitID, err := strconv.Atoi(ctx.Param("unitID"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return unitID, nil
}
