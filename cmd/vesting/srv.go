package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/questx-lab/vesting/config"
	"github.com/questx-lab/vesting/internal/domain"
	"github.com/questx-lab/vesting/internal/session"
	"github.com/questx-lab/vesting/pkg/logger"
	"github.com/questx-lab/vesting/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

type srv struct {
	app *cli.App
	ctx context.Context

	cancel context.CancelFunc

	provider *session.Provider

	claimDomain  domain.ClaimDomain
	walletDomain domain.WalletDomain
}

func (s *srv) before(cctx *cli.Context) error {
	s.ctx, s.cancel = signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)

	if err := config.LoadEnvFile(cctx.String("env-file"), cctx.IsSet("env-file")); err != nil {
		return err
	}

	return nil
}

func (s *srv) after(*cli.Context) error {
	if s.provider != nil {
		if err := s.provider.Close(); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot close provider: %v", err)
		}
	}

	if s.cancel != nil {
		s.cancel()
	}

	return nil
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	return nil
}

func (s *srv) loadLogger() {
	cfg := xcontext.Configs(s.ctx)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLoggerWithEncoding(logger.ParseLevel(cfg.Log.Level), cfg.Log.JSON))
}

func (s *srv) loadProvider() error {
	provider, err := session.Init(s.ctx, xcontext.Configs(s.ctx))
	if err != nil {
		return err
	}

	s.provider = provider
	return nil
}

func (s *srv) loadDomains() {
	s.claimDomain = domain.NewClaimDomain(s.provider)
	s.walletDomain = domain.NewWalletDomain(s.provider)
}

// load runs the steps shared by every command.
func (s *srv) load(cctx *cli.Context) error {
	if err := s.loadConfig(cctx); err != nil {
		return err
	}

	s.loadLogger()

	if err := s.loadProvider(); err != nil {
		return err
	}

	s.loadDomains()
	return nil
}
