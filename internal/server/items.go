package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shareit/internal/apperr"
	"shareit/internal/models"
)

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

type addCommentRequest struct {
	Text string `json:"text"`
}

func (s *Server) createItem(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, apperr.Validation("Request body is not valid JSON!"))
	}

	item, err := s.items.Add(c.Request().Context(), userID, req.Name, req.Description, req.Available, req.RequestID)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (s *Server) updateItem(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return s.writeError(c, err)
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return s.writeError(c, err)
	}

	var patch models.ItemPatch
	if err := c.Bind(&patch); err != nil {
		return s.writeError(c, apperr.Validation("Request body is not valid JSON!"))
	}

	item, err := s.items.Update(c.Request().Context(), userID, itemID, patch)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (s *Server) getItem(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return s.writeError(c, err)
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return s.writeError(c, err)
	}

	item, err := s.items.GetByID(c.Request().Context(), userID, itemID)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (s *Server) getUserItems(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return s.writeError(c, err)
	}
	from, size, err := pageParams(c)
	if err != nil {
		return s.writeError(c, err)
	}

	items, err := s.items.GetByUser(c.Request().Context(), userID, from, size)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (s *Server) searchItems(c echo.Context) error {
	from, size, err := pageParams(c)
	if err != nil {
		return s.writeError(c, err)
	}

	items, err := s.items.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (s *Server) addComment(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return s.writeError(c, err)
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return s.writeError(c, err)
	}

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, apperr.Validation("Request body is not valid JSON!"))
	}

	comment, err := s.items.AddComment(c.Request().Context(), userID, itemID, req.Text)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}
