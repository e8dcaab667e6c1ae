package handlers

import (
	"errors"
	"net/http"

	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/services"
	"github.com/bluenote/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const internalErrorMessage = "internal server error"

var kindStatus = map[services.Kind]int{
	services.KindValidation:   http.StatusBadRequest,
	services.KindMissingToken: http.StatusBadRequest,
	services.KindAuth:         http.StatusUnauthorized,
	services.KindConflict:     http.StatusUnauthorized,
	services.KindOwnership:    http.StatusUnauthorized,
	services.KindNotFound:     http.StatusNotFound,
}

// toHTTPError maps domain and validation errors onto HTTP errors. Anything
// unrecognised becomes a 500 whose detail is kept for logging only.
func toHTTPError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	var se *services.Error
	if errors.As(err, &se) {
		if status, ok := kindStatus[se.Kind]; ok {
			return echo.NewHTTPError(status, se.Message)
		}
	}

	var ve *validators.ValidationError
	if errors.As(err, &ve) {
		return echo.NewHTTPError(http.StatusBadRequest, ve.Message)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage).SetInternal(err)
}

// ErrorHandler renders every failure as {success:false, error}
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		he := toHTTPError(err)
		message, ok := he.Message.(string)
		if !ok {
			message = http.StatusText(he.Code)
		}
		if he.Code >= http.StatusInternalServerError {
			log.Error().Err(he.Internal).
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Msg("request failed")
			message = internalErrorMessage
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, models.APIResponse{Success: false, Error: message})
		}
		if err != nil {
			log.Error().Err(err).Msg("failed to write error response")
		}
	}
}

// bind decodes the request body into req and validates it
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return c.Validate(req)
}

func success(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, models.APIResponse{Success: true, Data: data})
}

func message(c echo.Context, status int, msg string) error {
	return success(c, status, models.MessageData{Message: msg})
}
