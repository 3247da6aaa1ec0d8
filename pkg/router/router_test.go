package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/questx-lab/vesting/config"
	"github.com/questx-lab/vesting/pkg/errorx"
	"github.com/questx-lab/vesting/pkg/logger"
	"github.com/questx-lab/vesting/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name string `json:"name" form:"name"`
}

type echoResponse struct {
	Name string `json:"name"`
}

type traceKey struct{}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	switch req.Name {
	case "bad":
		return nil, errorx.New(errorx.BadRequest, "Bad name")
	case "panic":
		return nil, errors.New("internal")
	}

	trace, _ := ctx.Value(traceKey{}).(string)
	return &echoResponse{Name: req.Name + trace}, nil
}

func do(t *testing.T, r *Router, method, target, body string) (*httptest.ResponseRecorder, response) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestRouter(t *testing.T) {
	r := New(config.Default(), logger.NewNopLogger())

	closed := []string{}
	r.AddCloser(func(ctx context.Context) {
		closed = append(closed, xcontext.HTTPRequest(ctx).URL.Path)
	})

	GET(r, "/echo", echo)
	POST(r, "/echo", echo)

	r.Before(func(ctx context.Context) (context.Context, error) {
		return context.WithValue(ctx, traceKey{}, "+before"), nil
	})
	GET(r, "/traced", echo)

	t.Run("get binds query", func(t *testing.T) {
		w, resp := do(t, r, http.MethodGet, "/echo?name=alice", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, int64(0), resp.Code)
		require.Equal(t, map[string]any{"name": "alice"}, resp.Data)
	})

	t.Run("post binds json", func(t *testing.T) {
		w, resp := do(t, r, http.MethodPost, "/echo", `{"name":"bob"}`)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, map[string]any{"name": "bob"}, resp.Data)
	})

	t.Run("post accepts empty body", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/echo", "")
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		w, resp := do(t, r, http.MethodPost, "/echo", `{"name":`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, int64(errorx.BadRequest), resp.Code)
	})

	t.Run("coded error", func(t *testing.T) {
		w, resp := do(t, r, http.MethodGet, "/echo?name=bad", "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, int64(errorx.BadRequest), resp.Code)
		require.Equal(t, "Bad name", resp.Error)
	})

	t.Run("unknown error is hidden", func(t *testing.T) {
		w, resp := do(t, r, http.MethodGet, "/echo?name=panic", "")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, int64(errorx.Unknown.Code), resp.Code)
		require.Equal(t, errorx.Unknown.Message, resp.Error)
	})

	t.Run("middleware applies to later routes", func(t *testing.T) {
		_, resp := do(t, r, http.MethodGet, "/traced?name=carol", "")
		require.Equal(t, map[string]any{"name": "carol+before"}, resp.Data)

		_, resp = do(t, r, http.MethodGet, "/echo?name=carol", "")
		require.Equal(t, map[string]any{"name": "carol"}, resp.Data)
	})

	require.Contains(t, closed, "/echo")
	require.Contains(t, closed, "/traced")
}

func TestRouter_BeforeError(t *testing.T) {
	r := New(config.Default(), logger.NewNopLogger())
	r.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "Nope")
	})

	called := false
	GET(r, "/x", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		called = true
		return &echoResponse{}, nil
	})

	w, resp := do(t, r, http.MethodGet, "/x", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, int64(errorx.Unauthenticated), resp.Code)
	require.False(t, called)
}

func TestStatusCode(t *testing.T) {
	require.Equal(t, http.StatusOK, StatusCode(nil))
	require.Equal(t, http.StatusConflict, StatusCode(errorx.New(errorx.ClaimInProgress, "")))
	require.Equal(t, http.StatusConflict, StatusCode(errorx.New(errorx.WalletNotConnected, "")))
	require.Equal(t, http.StatusUnprocessableEntity, StatusCode(errorx.New(errorx.ClaimFailed, "")))
	require.Equal(t, http.StatusServiceUnavailable, StatusCode(errorx.New(errorx.WalletUnavailable, "")))
	require.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("x")))
}
