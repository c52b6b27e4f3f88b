package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-booking/internal/middleware"
    "github.com/iliyamo/hotel-booking/internal/policy"
    "github.com/iliyamo/hotel-booking/internal/repository"
)

var errUnauthenticated = echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")

// getUserID returns the caller id stored by JWTAuth.
func getUserID(c echo.Context) (uint64, error) {
    id, ok := middleware.UserID(c)
    if !ok {
        return 0, errUnauthenticated
    }
    return id, nil
}

// can reports whether the caller's role holds cap.
func can(c echo.Context, cap policy.Capability) bool {
    return policy.Allows(middleware.Role(c), cap)
}

// ownerOr allows the caller when they own the resource or hold cap.
func ownerOr(c echo.Context, ownerID uint64, cap policy.Capability) error {
    uid, err := getUserID(c)
    if err != nil {
        return err
    }
    if uid != ownerID && !can(c, cap) {
        return echo.NewHTTPError(http.StatusForbidden, "forbidden")
    }
    return nil
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
    }
    return id, nil
}

// bindValid binds the request into dst and runs the validator.
func bindValid(c echo.Context, dst any) error {
    if err := c.Bind(dst); err != nil {
        var he *echo.HTTPError
        if errors.As(err, &he) {
            return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
        }
        return err
    }
    return c.Validate(dst)
}

// pageParams reads ?page=&page_size= with the repository defaults.
func pageParams(c echo.Context) repository.Page {
    page, _ := strconv.Atoi(c.QueryParam("page"))
    size, _ := strconv.Atoi(c.QueryParam("page_size"))
    return repository.NewPage(page, size)
}

// boolParam returns nil when the query parameter is absent or malformed.
func boolParam(c echo.Context, name string) *bool {
    v, err := strconv.ParseBool(c.QueryParam(name))
    if err != nil {
        return nil
    }
    return &v
}

type pagedResponse struct {
    Data     any   `json:"data"`
    Total    int64 `json:"total"`
    Page     int   `json:"page"`
    PageSize int   `json:"page_size"`
}

func paged(c echo.Context, data any, total int64, p repository.Page) error {
    return c.JSON(http.StatusOK, pagedResponse{Data: data, Total: total, Page: p.Page, PageSize: p.PageSize})
}

func isNotFound(err error) bool { return errors.Is(err, repository.ErrNotFound) }
