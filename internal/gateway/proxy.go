// Package gateway is the edge in front of the API.  Every /api/* request
// is relayed to the backend untouched; when the backend cannot be reached
// the client gets a 503 telling it to fall back to its local copy.
package gateway

import (
	"net"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/logger"
	"github.com/iliyamo/hotel-booking/internal/middleware"
)

// FallbackMessage is the body of the 503 answered when the backend is down.
const FallbackMessage = "API endpoint not available, using local storage fallback"

// New builds the gateway server.  It holds no state of its own.
func New(cfg config.GatewayConfig) (*echo.Echo, error) {
	target, err := url.Parse(cfg.BackendURL)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "backend": cfg.BackendURL})
	})

	api := e.Group("/api")
	api.Use(echomw.ProxyWithConfig(echomw.ProxyConfig{
		Balancer: echomw.NewRoundRobinBalancer([]*echomw.ProxyTarget{{Name: "api", URL: target}}),
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: cfg.Timeout}).DialContext,
			ResponseHeaderTimeout: cfg.Timeout,
			MaxIdleConnsPerHost:   32,
		},
		ErrorHandler: fallback,
	}))
	return e, nil
}

// fallback replaces the proxy's 502 with the 503 clients key their local
// storage on.
func fallback(c echo.Context, err error) error {
	logger.WithContext(c.Request().Context()).Warn("backend unreachable",
		"method", c.Request().Method, "path", c.Request().URL.Path, "error", err)
	return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": FallbackMessage})
}
