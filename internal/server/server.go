// Package server exposes the business operations over HTTP. The gateway is
// the intended caller; requests arrive pre-validated but every invariant is
// still enforced here.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"shareit/internal/apperr"
	"shareit/internal/config"
	"shareit/internal/metrics"
	"shareit/internal/service"
)

// HeaderUserID identifies the acting user on nearly every call.
const HeaderUserID = "X-Sharer-User-Id"

type Server struct {
	echo     *echo.Echo
	addr     string
	users    *service.UserService
	items    *service.ItemService
	bookings *service.BookingService
	requests *service.RequestService
	logger   *zerolog.Logger
}

func New(
	cfg config.ServerConfig,
	users *service.UserService,
	items *service.ItemService,
	bookings *service.BookingService,
	requests *service.RequestService,
	logger *zerolog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		addr:     fmt.Sprintf(":%d", cfg.Port),
		users:    users,
		items:    items,
		bookings: bookings,
		requests: requests,
		logger:   logger,
	}

	e.Use(requestLogger(logger))
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	e := s.echo

	e.POST("/users", s.createUser)
	e.GET("/users", s.getAllUsers)
	e.GET("/users/:id", s.getUser)
	e.PATCH("/users/:id", s.updateUser)
	e.DELETE("/users/:id", s.deleteUser)

	e.POST("/items", s.createItem)
	e.GET("/items", s.getUserItems)
	e.GET("/items/search", s.searchItems)
	e.GET("/items/:itemId", s.getItem)
	e.PATCH("/items/:itemId", s.updateItem)
	e.POST("/items/:itemId/comment", s.addComment)

	e.POST("/bookings", s.addBooking)
	e.GET("/bookings", s.getBookerBookings)
	e.GET("/bookings/owner", s.getOwnerBookings)
	e.GET("/bookings/:bookingId", s.getBooking)
	e.PATCH("/bookings/:bookingId", s.considerBooking)

	e.POST("/requests", s.addRequest)
	e.GET("/requests", s.getOwnRequests)
	e.GET("/requests/all", s.getAllRequests)
	e.GET("/requests/:requestId", s.getRequest)
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.addr).Msg("server listening")
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routing tree, used by handler tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// writeError maps the application error taxonomy onto HTTP status codes.
// Every error body is a single-field JSON object.
func (s *Server) writeError(c echo.Context, err error) error {
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
			// Preserved legacy behavior: an unknown state filter is reported
			// as a server error, not a client one.
			status = http.StatusInternalServerError
		}
	}

	s.logger.Warn().Err(err).Int("status", status).Str("path", c.Path()).Msg("request failed")
	return c.JSON(status, echo.Map{"error": err.Error()})
}

func userIDHeader(c echo.Context) (int64, error) {
	raw := c.Request().Header.Get(HeaderUserID)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Header '%s' must contain a positive user id!", HeaderUserID)
	}
	return id, nil
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Path parameter '%s' must be a positive id!", name)
	}
	return id, nil
}

// pageParams parses from/size query parameters. from defaults to 0, an
// absent size stays nil so each operation can apply its own default.
func pageParams(c echo.Context) (int, *int, error) {
	from := 0
	if raw := c.QueryParam("from"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, nil, apperr.Validation("Parameter 'from' must be a number!")
		}
		from = parsed
	}

	var size *int
	if raw := c.QueryParam("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, nil, apperr.Validation("Parameter 'size' must be a number!")
		}
		size = &parsed
	}
	return from, size, nil
}

func requestLogger(logger *zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			metrics.IncHTTP("server", c.Path())
			logger.Info().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Str("request_id", c.Request().Header.Get(echo.HeaderXRequestID)).
				Msg("http request")
			return nil
		}
	}
}
