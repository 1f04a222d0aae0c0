package middleware

import (
	"context"

	"github.com/questclash/backend/pkg/router"
	"github.com/questclash/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

func AllowCORS() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		origin := xcontext.HTTPRequest(ctx).Header.Get("Origin")
		if origin == "" {
			return nil, nil
		}

		allowed := xcontext.Configs(ctx).ApiServer.AllowCORS
		if !slices.Contains(allowed, "*") && !slices.Contains(allowed, origin) {
			return nil, nil
		}

		header := xcontext.HTTPWriter(ctx).Header()
		header.Set("Access-Control-Allow-Origin", origin)
		header.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		header.Set("Access-Control-Allow-Credentials", "true")

		return nil, nil
	}
}
