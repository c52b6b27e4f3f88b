package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

const secret = "router-secret"

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{JWTSecret: secret, AccessTTLMin: 5}
	users, tokens := repository.NewUserRepo(db), repository.NewTokenRepo(db)
	rooms, events := repository.NewRoomRepo(db), repository.NewEventRepo(db)
	h := Handlers{
		Health:       &handler.HealthHandler{DB: db},
		Auth:         handler.NewAuthHandler(cfg, users, tokens),
		Users:        handler.NewUserHandler(cfg, users, tokens),
		Rooms:        handler.NewRoomHandler(rooms),
		Events:       handler.NewEventHandler(events),
		Inventory:    handler.NewInventoryHandler(repository.NewInventoryRepo(db)),
		Reservations: handler.NewReservationHandler(repository.NewReservationRepo(db), nil),
		Baskets:      handler.NewBasketHandler(cfg, repository.NewBasketRepo(db), rooms, events, nil),
		Metrics:      middleware.NewMetrics("hotel"),
	}

	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(false)
	Register(e, h, secret, config.RateLimitConfig{}, nil)
	return e
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, 9, "someone@example.com", role, 5)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func call(e *echo.Echo, method, path, auth string) int {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestOperationalEndpoints(t *testing.T) {
	e := newEcho(t)
	assert.Equal(t, http.StatusOK, call(e, http.MethodGet, "/healthz", ""))
	assert.Equal(t, http.StatusOK, call(e, http.MethodGet, "/metrics", ""))
}

func TestRoutesRequireToken(t *testing.T) {
	e := newEcho(t)
	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/profile"},
		{http.MethodGet, "/api/basket/my-basket"},
		{http.MethodPost, "/api/reservations"},
		{http.MethodGet, "/api/reservations"},
		{http.MethodGet, "/api/inventory"},
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/rooms"},
	} {
		assert.Equal(t, http.StatusUnauthorized, call(e, r.method, r.path, ""), r.path)
	}
}

func TestCapabilitiesGateRoutes(t *testing.T) {
	e := newEcho(t)
	guest, staff := bearer(t, model.RoleGuest), bearer(t, model.RoleStaff)

	cases := []struct {
		method, path, auth string
	}{
		{http.MethodGet, "/api/reservations", guest},
		{http.MethodGet, "/api/basket", guest},
		{http.MethodGet, "/api/inventory", guest},
		{http.MethodGet, "/api/users", staff},
		{http.MethodPost, "/api/rooms", staff},
		{http.MethodDelete, "/api/events/1", staff},
		{http.MethodPut, "/api/reservations/1", staff},
	}
	for _, tc := range cases {
		assert.Equal(t, http.StatusForbidden, call(e, tc.method, tc.path, tc.auth), tc.method+" "+tc.path)
	}
}
