package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/questx-lab/vesting/api"
	"github.com/questx-lab/vesting/internal/domain"
	"github.com/questx-lab/vesting/internal/middleware"
	"github.com/questx-lab/vesting/pkg/prometheus"
	"github.com/questx-lab/vesting/pkg/router"
	"github.com/questx-lab/vesting/pkg/session"
	"github.com/questx-lab/vesting/pkg/ws"
	"github.com/questx-lab/vesting/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 5 * time.Second

func (s *srv) startServe(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	hub := ws.NewHub()
	go hub.Run(s.ctx)

	r, err := s.loadRouter(hub)
	if err != nil {
		return err
	}

	cfg := xcontext.Configs(s.ctx)

	go func() {
		httpSrv := &http.Server{
			Addr:    cfg.PrometheusServer.Address(),
			Handler: prometheus.NewHandler(),
		}
		xcontext.Logger(s.ctx).Infof("Starting prometheus on port: %s", cfg.PrometheusServer.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			xcontext.Logger(s.ctx).Errorf("Prometheus server stopped: %v", err)
		}
	}()

	httpSrv := &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: middleware.AllowCors(r.Handler()),
	}

	go func() {
		<-s.ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot shutdown server gracefully: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting server on %s", cfg.ApiServer.Address())
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		xcontext.Logger(s.ctx).Errorf("An error occurs when running server: %v", err)
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter(hub *ws.Hub) (*router.Router, error) {
	r := router.New(xcontext.Configs(s.ctx), xcontext.Logger(s.ctx))
	r.Before(middleware.WithStartTime())
	r.AddCloser(middleware.Logger())
	r.AddCloser(middleware.Prometheus())

	// Claim API
	router.GET(r, "/getReleasable", s.claimDomain.GetReleasable)
	router.GET(r, "/getClaimView", s.claimDomain.GetClaimView)
	router.POST(r, "/claim", s.claimDomain.Claim)

	// Wallet API
	router.POST(r, "/connectWallet", s.walletDomain.ConnectWallet)
	router.POST(r, "/disconnectWallet", s.walletDomain.DisconnectWallet)

	// View stream
	viewStream := domain.NewViewStreamDomain(s.ctx, s.claimDomain, hub)
	r.Engine().GET("/ws/view", func(gc *gin.Context) {
		ctx := r.NewRequestContext(gc.Request.Context(), gc.Request)
		viewStream.Serve(gc.Writer, gc.Request.WithContext(ctx))
	})

	// Claim page
	sessions, err := session.NewEphemeralCookieStore("vesting")
	if err != nil {
		return nil, err
	}

	page, err := api.NewPage(s.claimDomain, s.walletDomain, sessions, r.NewRequestContext)
	if err != nil {
		return nil, err
	}
	page.Register(r.Engine())

	return r, nil
}
