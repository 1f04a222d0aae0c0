package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	"github.com/questclash/backend/pkg/errorx"
	"github.com/questclash/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	// Capture the middleware chain at registration time so later Branch
	// calls cannot change it.
	befores := slices.Clone(router.befores)
	afters := slices.Clone(router.afters)
	closers := slices.Clone(router.closers)

	run := func(ctx context.Context) context.Context {
		var err error
		// A middleware returning a nil context keeps the current one.
		for _, middleware := range befores {
			newCtx, err := middleware(ctx)
			if err != nil {
				return xcontext.WithError(ctx, err)
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		// Most handlers declare a pointer request, which starts out nil.
		var req Request
		target := any(&req)
		if rv := reflect.ValueOf(&req).Elem(); rv.Kind() == reflect.Pointer {
			rv.Set(reflect.New(rv.Type().Elem()))
			target = rv.Interface()
		}

		switch method {
		case http.MethodGet:
			err = bindQuery(xcontext.HTTPRequest(ctx), target)
		case http.MethodPost:
			err = json.NewDecoder(xcontext.HTTPRequest(ctx).Body).Decode(target)
			if errors.Is(err, io.EOF) {
				err = nil
			}
		}
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot bind the request: %v", err)
			return xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
		}

		if err := loadSessionValues(ctx, target); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot load session values: %v", err)
			return xcontext.WithError(ctx, errorx.Unknown)
		}

		resp, err := handler(ctx, req)
		if err != nil {
			return xcontext.WithError(ctx, err)
		}

		if err := saveSessionValues(ctx, resp); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot save session values: %v", err)
			return xcontext.WithError(ctx, errorx.Unknown)
		}

		ctx = xcontext.WithResponse(ctx, resp)
		for _, middleware := range afters {
			newCtx, err := middleware(ctx)
			if err != nil {
				return xcontext.WithError(ctx, err)
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		return ctx
	}

	return func(w http.ResponseWriter, httpReq *http.Request) {
		ctx := xcontext.WithHTTPRequest(router.ctx, httpReq)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		if httpReq.Method == method {
			ctx = run(ctx)
		} else {
			ctx = xcontext.WithError(ctx, errorx.New(errorx.NotFound, "Not found"))
		}

		for _, closer := range closers {
			closer(ctx)
		}
	}
}
