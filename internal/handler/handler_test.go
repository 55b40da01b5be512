package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking/internal/middleware"
	"github.com/iliyamo/venue-booking/internal/service"
)

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(httptest.NewRequest(method, target, nil), rec), rec
}

func TestHealthPingsDatabase(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/healthz")
	require.NoError(t, NewHealthHandler(pinger{}, zap.NewNop()).Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(http.MethodGet, "/healthz")
	require.NoError(t, NewHealthHandler(pinger{err: errors.New("down")}, zap.NewNop()).Health(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Database unavailable"}`, rec.Body.String())
}

func TestFailWith(t *testing.T) {
	cases := []struct {
		err  error
		code int
		body string
	}{
		{&service.Error{Kind: service.KindValidation, Message: "Price must be positive"}, http.StatusBadRequest, `{"success":false,"error":"Price must be positive"}`},
		{&service.Error{Kind: service.KindNotFound, Message: "Hall not found"}, http.StatusNotFound, `{"success":false,"error":"Hall not found"}`},
		{&service.Error{Kind: service.KindConflict, Message: "taken"}, http.StatusConflict, `{"success":false,"error":"taken"}`},
		{&service.Error{Kind: service.KindForbidden, Message: "no"}, http.StatusForbidden, `{"success":false,"error":"no"}`},
		{&service.Error{Kind: service.KindPersistence, Message: "Failed to create hall", Err: errors.New("dial tcp")}, http.StatusInternalServerError, `{"success":false,"error":"Failed to create hall"}`},
		{errors.New("raw"), http.StatusInternalServerError, `{"success":false,"error":"Internal server error"}`},
	}
	for _, tc := range cases {
		c, rec := newContext(http.MethodGet, "/")
		require.NoError(t, failWith(c, tc.err))
		assert.Equal(t, tc.code, rec.Code)
		assert.JSONEq(t, tc.body, rec.Body.String())
	}
}

func TestEnvelope(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/")
	require.NoError(t, ok(c, http.StatusOK, []int{}))
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())

	c, rec = newContext(http.MethodDelete, "/")
	require.NoError(t, done(c, "Theme deleted successfully"))
	assert.JSONEq(t, `{"success":true,"message":"Theme deleted successfully"}`, rec.Body.String())
}

func TestActor(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/")
	_, authed := actor(c)
	assert.False(t, authed)

	c.Set(middleware.CtxUserID, "12")
	c.Set(middleware.CtxRole, middleware.RoleAdmin)
	who, authed := actor(c)
	require.True(t, authed)
	assert.Equal(t, service.Actor{UserID: 12, Admin: true}, who)
}

func TestPathID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	for raw, want := range map[string]uint64{"5": 5, "0": 0, "-1": 0, "x": 0} {
		c.SetParamValues(raw)
		id, err := pathID(c)
		if want == 0 {
			assert.Error(t, err, raw)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}
