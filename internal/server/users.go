package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shareit/internal/apperr"
	"shareit/internal/models"
)

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) createUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, apperr.Validation("Request body is not valid JSON!"))
	}

	user, err := s.users.Create(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) getUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	user, err := s.users.Get(c.Request().Context(), id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) updateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	var patch models.UserPatch
	if err := c.Bind(&patch); err != nil {
		return s.writeError(c, apperr.Validation("Request body is not valid JSON!"))
	}

	user, err := s.users.Update(c.Request().Context(), id, patch)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) deleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	user, err := s.users.Delete(c.Request().Context(), id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) getAllUsers(c echo.Context) error {
	users, err := s.users.GetAll(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}
