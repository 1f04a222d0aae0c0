package middleware_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/questclash/backend/internal/middleware"
	"github.com/questclash/backend/internal/model"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/router"
	"github.com/questclash/backend/pkg/testutil"
	"github.com/questclash/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name string `json:"name"`
}

type echoResponse struct {
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

func Test_Router_MiddlewareChain(t *testing.T) {
	ctx := testutil.MockContext()

	r := router.New(ctx)
	r.AddCloser(middleware.Logger())
	r.Before(middleware.AllowCORS())
	r.Before(middleware.WithAuthentication())
	router.GET(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: req.Name, UserID: xcontext.RequestUserID(ctx)}, nil
	})

	// An anonymous request passes every before middleware, including the
	// ones which keep the current context.
	record := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/echo?name=ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.Handler().ServeHTTP(record, req)

	var resp struct {
		Code int64        `json:"code"`
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(record.Body.Bytes(), &resp))
	require.Zero(t, resp.Code)
	require.Equal(t, "ping", resp.Data.Name)
	require.Empty(t, resp.Data.UserID)

	// A bearer token attaches the user id for the handler.
	token, err := xcontext.TokenEngine(ctx).Generate(
		time.Minute, model.AccessToken{ID: "user-1"})
	require.NoError(t, err)

	record = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/echo?name=ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.Handler().ServeHTTP(record, req)

	require.NoError(t, json.Unmarshal(record.Body.Bytes(), &resp))
	require.Zero(t, resp.Code)
	require.Equal(t, "user-1", resp.Data.UserID)
}

func Test_Router_MustAuthenticate(t *testing.T) {
	ctx := testutil.MockContext()

	r := router.New(ctx)
	r.AddCloser(middleware.Logger())
	r.Before(middleware.WithAuthentication())
	r.Before(middleware.MustAuthenticate())
	router.GET(r, "/me", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{UserID: xcontext.RequestUserID(ctx)}, nil
	})

	record := httptest.NewRecorder()
	r.Handler().ServeHTTP(record, httptest.NewRequest("GET", "/me", nil))

	var resp struct {
		Code  int64  `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(record.Body.Bytes(), &resp))
	require.Equal(t, int64(errorx.Unauthenticated), resp.Code)
}
