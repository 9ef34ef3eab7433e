package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"shareit/internal/apperr"
	"shareit/internal/models"
)

type addBookingRequest struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

func (s *Server) addBooking(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req addBookingRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, apperr.Validation("Request body is not valid JSON!"))
	}

	booking, err := s.bookings.Add(c.Request().Context(), userID, req.ItemID, req.Start, req.End)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (s *Server) considerBooking(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return s.writeError(c, err)
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return s.writeError(c, err)
	}

	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return s.writeError(c, apperr.Validation("Parameter 'approved' must be true or false!"))
	}

	booking, err := s.bookings.Consider(c.Request().Context(), userID, bookingID, approved)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (s *Server) getBooking(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return s.writeError(c, err)
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return s.writeError(c, err)
	}

	booking, err := s.bookings.GetByID(c.Request().Context(), userID, bookingID)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (s *Server) getBookerBookings(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return s.writeError(c, err)
	}
	from, size, err := pageParams(c)
	if err != nil {
		return s.writeError(c, err)
	}

	bookings, err := s.bookings.GetBookerBookings(c.Request().Context(), userID, stateParam(c), from, size)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (s *Server) getOwnerBookings(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return s.writeError(c, err)
	}
	from, size, err := pageParams(c)
	if err != nil {
		return s.writeError(c, err)
	}

	bookings, err := s.bookings.GetOwnerBookings(c.Request().Context(), userID, stateParam(c), from, size)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func stateParam(c echo.Context) string {
	if state := c.QueryParam("state"); state != "" {
		return state
	}
	return models.StateAll
}
