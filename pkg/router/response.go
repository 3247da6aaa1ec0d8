package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/questx-lab/vesting/pkg/errorx"
	"github.com/questx-lab/vesting/pkg/xcontext"
)

type writerKey struct{}

func withWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, writerKey{}, w)
}

func writer(ctx context.Context) http.ResponseWriter {
	w, _ := ctx.Value(writerKey{}).(http.ResponseWriter)
	return w
}

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

// StatusCode returns the http status of a request ending with err.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		return http.StatusInternalServerError
	}

	switch errx.Code {
	case errorx.BadRequest:
		return http.StatusBadRequest
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.AlreadyExists, errorx.WalletNotConnected, errorx.ClaimInProgress:
		return http.StatusConflict
	case errorx.ClaimFailed:
		return http.StatusUnprocessableEntity
	case errorx.TooManyRequests:
		return http.StatusTooManyRequests
	case errorx.NotImplemented:
		return http.StatusNotImplemented
	case errorx.Unavailable, errorx.WalletUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func handleResponse() CloserFunc {
	return func(ctx context.Context) {
		w := writer(ctx)
		if w == nil {
			return
		}

		err := func() error {
			if err := xcontext.Error(ctx); err != nil {
				return err
			}

			resp := xcontext.Response(ctx)
			if err := WriteJson(w, http.StatusOK, newResponse(resp)); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
				return errorx.New(errorx.BadResponse, "Cannot write the response")
			}

			return nil
		}()

		if err != nil {
			if err := WriteJson(w, StatusCode(err), newErrorResponse(err)); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
			}
		}
	}
}

func WriteJson(w http.ResponseWriter, status int, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}
