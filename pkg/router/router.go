package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questx-lab/vesting/config"
	"github.com/questx-lab/vesting/pkg/logger"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after the handler. The returned context
// replaces the request context.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc always runs at the end of a request, even if a middleware or
// the handler failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine *gin.Engine
	cfg    config.Configs
	logger logger.Logger

	befores []MiddlewareFunc
	closers []CloserFunc
}

func New(cfg config.Configs, logger logger.Logger) *Router {
	if cfg.Env == config.ProdEnv {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Router{
		engine: engine,
		cfg:    cfg,
		logger: logger,
	}
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

// Engine exposes the gin engine for routes which do not follow the JSON
// envelope, such as html pages and websockets.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.GET(pattern, wrapHandler(r, http.MethodGet, pattern, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.POST(pattern, wrapHandler(r, http.MethodPost, pattern, handler))
}
