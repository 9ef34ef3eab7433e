package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shareit/internal/apperr"
)

type addRequestRequest struct {
	Description string `json:"description"`
}

func (s *Server) addRequest(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req addRequestRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, apperr.Validation("Request body is not valid JSON!"))
	}

	request, err := s.requests.Add(c.Request().Context(), userID, req.Description)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, request)
}

func (s *Server) getOwnRequests(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return s.writeError(c, err)
	}

	requests, err := s.requests.GetOwn(c.Request().Context(), userID)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, requests)
}

func (s *Server) getAllRequests(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return s.writeError(c, err)
	}
	from, size, err := pageParams(c)
	if err != nil {
		return s.writeError(c, err)
	}

	requests, err := s.requests.GetAll(c.Request().Context(), userID, from, size)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, requests)
}

func (s *Server) getRequest(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return s.writeError(c, err)
	}
	requestID, err := pathID(c, "requestId")
	if err != nil {
		return s.writeError(c, err)
	}

	request, err := s.requests.GetByID(c.Request().Context(), userID, requestID)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, request)
}
