package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/questx-lab/vesting/internal/model"
	"github.com/questx-lab/vesting/pkg/errorx"
	"github.com/urfave/cli/v2"
)

func (s *srv) showReleasable(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	resp, err := s.claimDomain.GetReleasable(s.ctx, &model.GetReleasableRequest{})
	if err != nil {
		return exitError(err)
	}

	if resp.Releasable.State == model.ReleasableError {
		fmt.Fprintf(cctx.App.Writer, "%s (read failed: %s)\n", resp.Releasable.Amount, resp.Releasable.Error)
		return nil
	}

	fmt.Fprintln(cctx.App.Writer, resp.Releasable.Amount)
	return nil
}

func (s *srv) showStatus(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	// The view only holds an amount after a read.
	if _, err := s.claimDomain.GetReleasable(s.ctx, &model.GetReleasableRequest{}); err != nil {
		return exitError(err)
	}

	resp, err := s.claimDomain.GetClaimView(s.ctx, &model.GetClaimViewRequest{})
	if err != nil {
		return exitError(err)
	}

	encoder := json.NewEncoder(cctx.App.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp.View)
}

func (s *srv) claim(cctx *cli.Context) error {
	if err := s.load(cctx); err != nil {
		return err
	}

	resp, err := s.claimDomain.Claim(s.ctx, &model.ClaimRequest{Amount: cctx.String("amount")})
	if err != nil {
		return exitError(err)
	}

	fmt.Fprintf(cctx.App.Writer, "Claimed in tx %s, releasable is now %s\n", resp.TxHash, resp.Releasable.Amount)
	return nil
}

func exitError(err error) error {
	var errx errorx.Error
	if errors.As(err, &errx) {
		return cli.Exit(fmt.Sprintf("%s (code %d)", errx.Message, errx.Code), 1)
	}

	return cli.Exit(err.Error(), 1)
}
