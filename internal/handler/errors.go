package handler

import (
    "database/sql"
    "errors"
    "net/http"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-booking/internal/booking"
    "github.com/iliyamo/hotel-booking/internal/logger"
    "github.com/iliyamo/hotel-booking/internal/repository"
)

// ErrorHandler maps errors returned by handlers to JSON responses.
// Repository kinds decide the status (not found 404, invalid state 400,
// conflict 409), validation failures list the offending fields, and
// anything unknown is a 500 whose message is only exposed when
// development is true.
func ErrorHandler(development bool) echo.HTTPErrorHandler {
    return func(err error, c echo.Context) {
        if c.Response().Committed {
            return
        }
        status, body := errorResponse(err, development)
        if status >= http.StatusInternalServerError {
            logger.WithContext(c.Request().Context()).Error("unhandled error",
                "method", c.Request().Method, "path", c.Request().URL.Path, "error", err)
        }

        var werr error
        if c.Request().Method == http.MethodHead {
            werr = c.NoContent(status)
        } else {
            werr = c.JSON(status, body)
        }
        if werr != nil {
            logger.WithContext(c.Request().Context()).Error("write error response", "error", werr)
        }
    }
}

func errorResponse(err error, development bool) (int, echo.Map) {
    var (
        verrs validator.ValidationErrors
        herr  *echo.HTTPError
    )
    switch {
    case errors.As(err, &verrs):
        return http.StatusBadRequest, echo.Map{"error": "validation failed", "errors": fieldErrors(verrs)}
    case errors.As(err, &herr):
        msg := herr.Message
        if s, ok := msg.(string); ok {
            return herr.Code, echo.Map{"error": s}
        }
        if msg == nil {
            msg = http.StatusText(herr.Code)
        }
        return herr.Code, echo.Map{"error": msg}
    case errors.Is(err, booking.ErrInvalidStay), errors.Is(err, repository.ErrInvalidState):
        return http.StatusBadRequest, echo.Map{"error": err.Error()}
    case errors.Is(err, repository.ErrNotFound), errors.Is(err, sql.ErrNoRows):
        if errors.Is(err, sql.ErrNoRows) {
            return http.StatusNotFound, echo.Map{"error": "not found"}
        }
        return http.StatusNotFound, echo.Map{"error": err.Error()}
    case errors.Is(err, repository.ErrConflict), repository.IsDuplicate(err):
        if repository.IsDuplicate(err) {
            return http.StatusConflict, echo.Map{"error": "duplicate entry"}
        }
        return http.StatusConflict, echo.Map{"error": err.Error()}
    case errors.Is(err, repository.ErrForbidden):
        return http.StatusForbidden, echo.Map{"error": "forbidden"}
    }

    body := echo.Map{"error": "internal server error"}
    if development {
        body["message"] = err.Error()
    }
    return http.StatusInternalServerError, body
}

type fieldError struct {
    Field   string `json:"field"`
    Message string `json:"message"`
}

func fieldErrors(verrs validator.ValidationErrors) []fieldError {
    out := make([]fieldError, 0, len(verrs))
    for _, fe := range verrs {
        out = append(out, fieldError{Field: fe.Field(), Message: describe(fe)})
    }
    return out
}

func describe(fe validator.FieldError) string {
    switch fe.Tag() {
    case "required":
        return "is required"
    case "email":
        return "must be a valid email address"
    case "min":
        return "must be at least " + fe.Param()
    case "max":
        return "must be at most " + fe.Param()
    case "gte":
        return "must be greater than or equal to " + fe.Param()
    case "gt":
        return "must be greater than " + fe.Param()
    case "oneof":
        return "must be one of: " + fe.Param()
    case "afterdate":
        return "must be after " + fe.Param()
    default:
        return "is invalid (" + fe.Tag() + ")"
    }
}
