package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/anonto42/socialgraph/backend/internal/middleware"
	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/services"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// detail is the body of message-only responses.
func detail(msg string) echo.Map {
	return echo.Map{"detail": msg}
}

// bind decodes the request body into req and validates it. Write handlers
// run the request-level policy first so a missing identity wins over a bad body.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errorx.New(errorx.Validation, "Invalid request payload")
	}
	return c.Validate(req)
}

func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errorx.New(errorx.NotFound, "Not found.")
	}
	return uint(id), nil
}

// writeID runs the request rules of p before the path id is parsed, so an
// anonymous write is refused with 401 even when the id is malformed.
func writeID(c echo.Context, p services.Policy, name string) (uint, error) {
	if err := p.Check(caller(c), services.OpWrite); err != nil {
		return 0, err
	}
	return idParam(c, name)
}

// queryUint reads an optional positive integer query parameter; 0 when absent.
func queryUint(c echo.Context, name string) (uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errorx.NewValidation(map[string]string{name: "A valid integer is required."})
	}
	return uint(v), nil
}

// pageParams reads the optional limit/offset window. Values past MaxInt32
// are capped so they survive the conversion to int.
func pageParams(c echo.Context) (models.Page, error) {
	limit, err := queryUint(c, "limit")
	if err != nil {
		return models.Page{}, err
	}
	offset, err := queryUint(c, "offset")
	if err != nil {
		return models.Page{}, err
	}
	return models.Page{Limit: capInt(limit), Offset: capInt(offset)}, nil
}

func capInt(v uint) int {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

func caller(c echo.Context) *models.Identity {
	return middleware.Caller(c)
}

// ErrorHandler renders errorx errors as {"detail": ...} with their mapped
// status, plus one entry per invalid field. Unknown errors are logged and
// rendered as 500.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			status int
			body   = echo.Map{}
			xerr   errorx.Error
			herr   *echo.HTTPError
		)
		switch {
		case errors.As(err, &xerr) && xerr.Kind != errorx.Internal:
			status = xerr.Kind.StatusCode()
			body["detail"] = xerr.Message
			for field, msg := range xerr.Fields {
				body[field] = []string{msg}
			}
		case errors.As(err, &herr):
			status = herr.Code
			body["detail"] = fmt.Sprint(herr.Message)
		default:
			log.Error("unhandled error",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
			status = http.StatusInternalServerError
			body["detail"] = "Internal server error"
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Error("failed to write error response", zap.Error(err))
		}
	}
}
