package middleware

import (
	"context"
	"strings"

	"github.com/questclash/backend/internal/model"
	"github.com/questclash/backend/pkg/authenticator"
	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/router"
	"github.com/questclash/backend/pkg/xcontext"
)

// WithAuthentication resolves the access token from the Authorization
// header or the token cookie and attaches the user id to the context. A
// missing or invalid token leaves the request anonymous.
func WithAuthentication() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := getAccessToken(ctx)
		if token == "" {
			return nil, nil
		}

		var info model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(token, &info); err != nil {
			if authenticator.IsExpired(err) {
				return nil, errorx.New(errorx.TokenExpired, "Your access token is expired")
			}

			return nil, nil
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

// MustAuthenticate rejects anonymous requests.
func MustAuthenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return nil, nil
	}
}

func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	authorization := req.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found {
		if auth == "Bearer" {
			return token
		}
		return ""
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
