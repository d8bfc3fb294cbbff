package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophblog/internal/buildinfo"
	"github.com/dmitrijs2005/gophblog/internal/client/cli"
	"github.com/dmitrijs2005/gophblog/internal/client/config"
	"github.com/dmitrijs2005/gophblog/internal/client/gateway/postgres"
	"github.com/dmitrijs2005/gophblog/internal/client/localstate"
	"github.com/dmitrijs2005/gophblog/internal/client/pipeline"
	"github.com/dmitrijs2005/gophblog/internal/client/store"
	"github.com/dmitrijs2005/gophblog/internal/filex"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg := config.LoadConfig()
	log := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "client stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	if err := filex.EnsureParentDir(cfg.LocalDBPath); err != nil {
		return err
	}
	local, err := localstate.Open(ctx, cfg.LocalDBPath)
	if err != nil {
		return fmt.Errorf("local state: %w", err)
	}
	defer local.Close()

	gw, err := postgres.Open(ctx, cfg.DatabaseDSN, local, postgres.Options{
		SecretKey:               []byte(cfg.SecretKey),
		SessionValidityDuration: cfg.SessionValidityDuration,
	})
	if err != nil {
		return fmt.Errorf("gateway: %w", err)
	}
	defer gw.Close()

	p := pipeline.New(gw, log.With("component", "pipeline"), pipeline.Options{
		PerPage:              cfg.PerPage,
		CommentImageMaxWidth: cfg.CommentImageMaxWidth,
		CommentImageQuality:  cfg.CommentImageQuality,
		CommentImageMaxChars: cfg.CommentImageMaxChars,
		AllowedEmailDomain:   cfg.AllowedEmailDomain,
	})

	s := store.New(log.With("component", "store"))
	actions := store.NewActions(s, p, local, log)
	actions.RestoreSession(ctx)

	cli.NewApp(actions, os.Stdin, os.Stdout, log).Run(ctx)
	return nil
}
