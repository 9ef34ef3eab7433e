// Package gateway is the edge role: it checks request shape, rate limits by
// acting user, and proxies everything else to the server role verbatim.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"shareit/internal/apperr"
	"shareit/internal/config"
	"shareit/internal/metrics"
)

// HeaderUserID identifies the acting user on nearly every call.
const HeaderUserID = "X-Sharer-User-Id"

type Gateway struct {
	echo    *echo.Echo
	addr    string
	client  *Client
	limiter *userLimiter
	logger  *zerolog.Logger
}

func New(cfg config.GatewayConfig, client *Client, logger *zerolog.Logger) *Gateway {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	g := &Gateway{
		echo:    e,
		addr:    fmt.Sprintf(":%d", cfg.Port),
		client:  client,
		limiter: newUserLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		logger:  logger,
	}

	e.Use(g.requestID, g.requestLogger, g.rateLimit)
	g.registerRoutes()
	return g
}

func (g *Gateway) registerRoutes() {
	e := g.echo

	e.POST("/users", g.createUser)
	e.GET("/users", g.forwardPlain)
	e.GET("/users/:id", g.forwardPlain)
	e.PATCH("/users/:id", g.forwardPlain)
	e.DELETE("/users/:id", g.forwardPlain)

	e.POST("/items", g.createItem)
	e.GET("/items", g.forwardForUser)
	e.GET("/items/search", g.searchItems)
	e.GET("/items/:itemId", g.forwardForUser)
	e.PATCH("/items/:itemId", g.forwardForUser)
	e.POST("/items/:itemId/comment", g.addComment)

	e.POST("/bookings", g.addBooking)
	e.GET("/bookings", g.listBookings)
	e.GET("/bookings/owner", g.listBookings)
	e.GET("/bookings/:bookingId", g.forwardForUser)
	e.PATCH("/bookings/:bookingId", g.forwardForUser)

	e.POST("/requests", g.addRequest)
	e.GET("/requests", g.forwardForUser)
	e.GET("/requests/all", g.listAllRequests)
	e.GET("/requests/:requestId", g.forwardForUser)
}

func (g *Gateway) Start() error {
	g.logger.Info().Str("addr", g.addr).Msg("gateway listening")
	if err := g.echo.Start(g.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.echo.Shutdown(ctx)
}

// Handler exposes the routing tree, used by handler tests.
func (g *Gateway) Handler() http.Handler {
	return g.echo
}

// requestID tags every request so gateway and server logs can be correlated.
func (g *Gateway) requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get(echo.HeaderXRequestID) == "" {
			c.Request().Header.Set(echo.HeaderXRequestID, uuid.NewString())
		}
		return next(c)
	}
}

// rateLimit throttles per acting user. Calls without the user header (user
// management) pass through unthrottled.
func (g *Gateway) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(HeaderUserID)
		if raw == "" {
			return next(c)
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err == nil && userID > 0 && !g.limiter.Allow(userID) {
			g.logger.Warn().Int64("user_id", userID).Msg("rate limit exceeded")
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "Too many requests!"})
		}
		return next(c)
	}
}

func (g *Gateway) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		metrics.IncHTTP("gateway", c.Path())
		g.logger.Info().
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Int("status", c.Response().Status).
			Dur("duration", time.Since(start)).
			Str("request_id", c.Request().Header.Get(echo.HeaderXRequestID)).
			Msg("http request")
		return nil
	}
}

func (g *Gateway) writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperr.KindValidation:
			status = http.StatusBadRequest
		case apperr.KindNotFound:
			status = http.StatusNotFound
		case apperr.KindForbidden:
			status = http.StatusForbidden
		case apperr.KindUnsupportedState:
			status = http.StatusInternalServerError
		}
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

// relay writes the server's response back unchanged.
func (g *Gateway) relay(c echo.Context, status int, body []byte) error {
	if len(body) == 0 {
		return c.NoContent(status)
	}
	return c.Blob(status, echo.MIMEApplicationJSON, body)
}

func userIDHeader(c echo.Context) (int64, error) {
	raw := c.Request().Header.Get(HeaderUserID)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Header '%s' must contain a positive user id!", HeaderUserID)
	}
	return id, nil
}
