package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"shareit/internal/apperr"
	"shareit/internal/models"
)

type userShape struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type itemShape struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

type commentShape struct {
	Text string `json:"text"`
}

type bookingShape struct {
	ItemID int64      `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

type requestShape struct {
	Description string `json:"description"`
}

// forwardPlain proxies a request that needs no shape checks. The user header
// is passed along when present.
func (g *Gateway) forwardPlain(c echo.Context) error {
	userID, _ := strconv.ParseInt(c.Request().Header.Get(HeaderUserID), 10, 64)
	return g.forward(c, userID, nil)
}

// forwardForUser proxies a request that requires a valid acting user.
func (g *Gateway) forwardForUser(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return g.writeError(c, err)
	}
	return g.forward(c, userID, nil)
}

func (g *Gateway) forward(c echo.Context, userID int64, body []byte) error {
	if body == nil && c.Request().Body != nil {
		read, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return g.writeError(c, apperr.Validation("Request body can't be read!"))
		}
		body = read
	}

	status, respBody, err := g.client.Forward(
		c.Request().Context(),
		c.Request().Method,
		c.Request().URL.Path,
		userID,
		c.Request().URL.Query(),
		body,
		c.Request().Header.Get(echo.HeaderXRequestID),
	)
	if err != nil {
		g.logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("server call failed")
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Server is unavailable!"})
	}
	return g.relay(c, status, respBody)
}

// readShape buffers the body so it can be both validated and forwarded.
func readShape(c echo.Context, shape any) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, apperr.Validation("Request body can't be read!")
	}
	if err := json.Unmarshal(body, shape); err != nil {
		return nil, apperr.Validation("Request body is not valid JSON!")
	}
	return body, nil
}

func (g *Gateway) createUser(c echo.Context) error {
	var shape userShape
	body, err := readShape(c, &shape)
	if err != nil {
		return g.writeError(c, err)
	}

	if strings.TrimSpace(shape.Name) == "" {
		return g.writeError(c, apperr.Validation("Name can't be blank!"))
	}
	if strings.TrimSpace(shape.Email) == "" {
		return g.writeError(c, apperr.Validation("Email can't be blank!"))
	}
	return g.forward(c, 0, body)
}

func (g *Gateway) createItem(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return g.writeError(c, err)
	}

	var shape itemShape
	body, err := readShape(c, &shape)
	if err != nil {
		return g.writeError(c, err)
	}

	if strings.TrimSpace(shape.Name) == "" {
		return g.writeError(c, apperr.Validation("Item name can't be blank!"))
	}
	if strings.TrimSpace(shape.Description) == "" {
		return g.writeError(c, apperr.Validation("Item description can't be blank!"))
	}
	if shape.Available == nil {
		return g.writeError(c, apperr.Validation("Item availability must be set!"))
	}
	return g.forward(c, userID, body)
}

func (g *Gateway) searchItems(c echo.Context) error {
	if err := validatePage(c); err != nil {
		return g.writeError(c, err)
	}
	return g.forwardPlain(c)
}

func (g *Gateway) addComment(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return g.writeError(c, err)
	}

	var shape commentShape
	body, err := readShape(c, &shape)
	if err != nil {
		return g.writeError(c, err)
	}

	if strings.TrimSpace(shape.Text) == "" {
		return g.writeError(c, apperr.Validation("Comment text can't be blank!"))
	}
	return g.forward(c, userID, body)
}

func (g *Gateway) addBooking(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return g.writeError(c, err)
	}

	var shape bookingShape
	body, err := readShape(c, &shape)
	if err != nil {
		return g.writeError(c, err)
	}

	if shape.ItemID <= 0 {
		return g.writeError(c, apperr.Validation("Parameter 'itemId' must be positive!"))
	}
	if shape.Start == nil {
		return g.writeError(c, apperr.Validation("Booking start date can't be empty!"))
	}
	if shape.End == nil {
		return g.writeError(c, apperr.Validation("Booking end date can't be empty!"))
	}
	return g.forward(c, userID, body)
}

func (g *Gateway) listBookings(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return g.writeError(c, err)
	}
	if err := validateState(c); err != nil {
		return g.writeError(c, err)
	}
	if err := validatePage(c); err != nil {
		return g.writeError(c, err)
	}
	return g.forward(c, userID, nil)
}

func (g *Gateway) addRequest(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return g.writeError(c, err)
	}

	var shape requestShape
	body, err := readShape(c, &shape)
	if err != nil {
		return g.writeError(c, err)
	}

	if strings.TrimSpace(shape.Description) == "" {
		return g.writeError(c, apperr.Validation("Request description can't be blank!"))
	}
	return g.forward(c, userID, body)
}

func (g *Gateway) listAllRequests(c echo.Context) error {
	userID, err := userIDHeader(c)
	if err != nil {
		return g.writeError(c, err)
	}
	if err := validatePage(c); err != nil {
		return g.writeError(c, err)
	}
	return g.forward(c, userID, nil)
}

func validatePage(c echo.Context) error {
	if raw := c.QueryParam("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil {
			return apperr.Validation("Parameter 'from' must be a number!")
		}
		if from < 0 {
			return apperr.Validation("Parameter 'from' can't be negative!")
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return apperr.Validation("Parameter 'size' must be a number!")
		}
		if size < 0 {
			return apperr.Validation("Parameter 'size' can't be negative!")
		}
	}
	return nil
}

// validateState rejects unknown state filters before the request ever reaches
// the server. Unknown values are reported as a server error, preserved legacy
// behavior.
func validateState(c echo.Context) error {
	state := c.QueryParam("state")
	if state == "" {
		return nil
	}

	switch state {
	case models.StateAll, models.StateCurrent, models.StatePast,
		models.StateFuture, models.StateWaiting, models.StateRejected:
		return nil
	default:
		return apperr.UnsupportedState("Unknown state: %s", state)
	}
}
