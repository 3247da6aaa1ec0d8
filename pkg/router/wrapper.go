package router

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questx-lab/vesting/pkg/errorx"
	"github.com/questx-lab/vesting/pkg/xcontext"
)

// NewRequestContext carries the logger, configs and request of the router in
// ctx.
func (r *Router) NewRequestContext(ctx context.Context, req *http.Request) context.Context {
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithHTTPRequest(ctx, req)
	return ctx
}

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	pattern string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	befores := router.befores
	closers := append([]CloserFunc{handleResponse()}, router.closers...)

	return func(gc *gin.Context) {
		ctx := router.NewRequestContext(gc.Request.Context(), gc.Request)
		ctx = withWriter(ctx, gc.Writer)
		ctx = xcontext.WithRoute(ctx, pattern)

		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		for _, m := range befores {
			next, err := m(ctx)
			if err != nil {
				ctx = xcontext.WithError(ctx, err)
				return
			}
			ctx = next
		}

		var err error
		req := new(Request)
		switch method {
		case http.MethodGet:
			err = gc.ShouldBindQuery(req)
		case http.MethodPost:
			err = gc.ShouldBindJSON(req)
			if errors.Is(err, io.EOF) {
				err = nil
			}
		default:
			err = errors.New("unsupported method")
		}

		if err != nil {
			ctx = xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Invalid request: %v", err))
			return
		}

		resp, err := handler(ctx, req)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			return
		}
		ctx = xcontext.WithResponse(ctx, resp)
	}
}
