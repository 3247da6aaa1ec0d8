package middleware

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/questx-lab/vesting/internal/common"
	"github.com/questx-lab/vesting/pkg/errorx"
	"github.com/questx-lab/vesting/pkg/router"
	"github.com/questx-lab/vesting/pkg/xcontext"
)

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

// Prometheus counts requests by route pattern, http status and error code.
// Durations are not split by error code.
func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return
		}

		route := xcontext.Route(ctx)
		if route == "" {
			route = "unknown"
		}

		err := xcontext.Error(ctx)
		status := strconv.Itoa(router.StatusCode(err))

		common.PromCounters[common.HTTPRequestTotal].
			WithLabelValues(route, req.Method, status, errorCode(err)).Inc()

		if start := xcontext.StartTime(ctx); !start.IsZero() {
			common.PromHistograms[common.HTTPRequestDurationSeconds].
				WithLabelValues(route, req.Method, status).Observe(time.Since(start).Seconds())
		}
	}
}

func errorCode(err error) string {
	if err == nil {
		return "0"
	}

	var errx errorx.Error
	if errors.As(err, &errx) {
		return strconv.Itoa(int(errx.Code))
	}

	return strconv.Itoa(int(errorx.Unknown.Code))
}
