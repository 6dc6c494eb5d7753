// Package handler contains the HTTP layer: one handler set per
// resource, each binding a request payload, validating it against the
// entity schema and delegating a single repository operation. Error
// bodies keep the wire shape of the original service: 404 and 422
// responses carry a "detail" key, delete confirmations a "message"
// key, and the localized not-found strings are fixed per entity.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Localized response strings, preserved verbatim for compatibility.
const (
	msgUserNotFound     = "Пользователь не найден"
	msgUserDeleted      = "Пользователь удален"
	msgCarNotFound      = "Машина не найдена"
	msgCarsNotFound     = "Машины не найдены"
	msgCarDeleted       = "Машина удалена"
	msgAuctionNotFound  = "Аукцион не найден"
	msgAuctionDeleted   = "Аукцион удален"
	msgBidNotFound      = "Ставка не найдена"
	msgBidDeleted       = "Ставка удалена"
	msgFeedbackNotFound = "Отзыв не найден"
	msgFeedbackDeleted  = "Отзыв удален"
)

// fieldError is one entry of a 422 validation response.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// unprocessable renders a 422 with field-level detail.
func unprocessable(c echo.Context, errs []fieldError) error {
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": errs})
}

// badBody renders a 422 for an unparseable request body.
func badBody(c echo.Context) error {
	return unprocessable(c, []fieldError{{Field: "body", Message: "invalid request body"}})
}

// notFound renders a 404 with the entity's fixed message.
func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"detail": msg})
}

// serverError renders a plain 500. Storage failures are not retried
// or classified; they all end up here.
func serverError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal server error"})
}

// deleted renders a delete confirmation body.
func deleted(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, echo.Map{"message": msg})
}

// pathID parses the :id path parameter. Only a non-numeric id is a
// schema violation; zero and negative ids parse fine and fall through
// to the lookup, which 404s on them like any other absent row.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, unprocessable(c, []fieldError{{Field: "id", Message: "value is not a valid integer"}})
	}
	return id, nil
}
