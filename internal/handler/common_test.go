package handler

import (
    "errors"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/airline-seat-reservation/internal/service"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestWriteErrorStatusMapping(t *testing.T) {
    cases := []struct {
        err    error
        status int
    }{
        {service.NotFoundf("seat x not found"), http.StatusNotFound},
        {service.Conflictf("seat x is already booked"), http.StatusConflict},
        {service.Unauthorizedf("not your hold"), http.StatusForbidden},
        {service.BadRequestf("too many seats"), http.StatusBadRequest},
        {service.Internalf(errors.New("driver: bad connection"), "reading seat"), http.StatusInternalServerError},
        {errors.New("not a service error"), http.StatusInternalServerError},
    }
    for _, tc := range cases {
        c, rec := newTestContext()
        require.NoError(t, writeError(c, tc.err))
        assert.Equal(t, tc.status, rec.Code, "error: %v", tc.err)
    }
}

func TestWriteErrorMasksInternals(t *testing.T) {
    c, rec := newTestContext()
    require.NoError(t, writeError(c, service.Internalf(errors.New("dial tcp 10.0.0.5:3306: timeout"), "reading seat")))

    assert.Equal(t, http.StatusInternalServerError, rec.Code)
    assert.NotContains(t, rec.Body.String(), "10.0.0.5", "infrastructure details must not leak")
    assert.Contains(t, rec.Body.String(), "internal error")
}

func TestGetUserID(t *testing.T) {
    c, _ := newTestContext()
    _, err := getUserID(c)
    assert.Error(t, err)

    c.Set("user_id", "alice")
    id, err := getUserID(c)
    require.NoError(t, err)
    assert.Equal(t, "alice", id)

    c.Set("user_id", 42)
    _, err = getUserID(c)
    assert.Error(t, err, "non-string claims are rejected")
}

func TestHealth(t *testing.T) {
    c, rec := newTestContext()
    require.NoError(t, Health(c))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "ok", rec.Body.String())
}
