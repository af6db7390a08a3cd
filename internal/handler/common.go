package handler // HTTP handlers for the seat reservation API

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/airline-seat-reservation/internal/service"
)

// getUserID extracts the authenticated user's ID from the request
// context.  JWT middleware stores the token subject under "user_id"; the
// claim may decode as any JSON scalar so a type switch normalises it.
func getUserID(c echo.Context) (string, error) {
    v := c.Get("user_id")
    if s, ok := v.(string); ok && s != "" {
        return s, nil
    }
    return "", errors.New("invalid user_id in context")
}

// writeError maps a service error to its HTTP response.  Service errors
// carry a kind; anything else is an internal error with a generic body
// so database details never leak to clients.
func writeError(c echo.Context, err error) error {
    var svcErr *service.Error
    if !errors.As(err, &svcErr) {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
    status := http.StatusInternalServerError
    switch svcErr.Kind {
    case service.KindNotFound:
        status = http.StatusNotFound
    case service.KindConflict:
        status = http.StatusConflict
    case service.KindUnauthorized:
        status = http.StatusForbidden
    case service.KindBadRequest:
        status = http.StatusBadRequest
    }
    if status == http.StatusInternalServerError {
        return c.JSON(status, echo.Map{"error": "internal error"})
    }
    return c.JSON(status, echo.Map{"error": svcErr.Message})
}
