
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"content-quality-analyzer/internal/app"
	"content-quality-analyzer/internal/config"
	"content-quality-analyzer/internal/server"
)

func main() {
	a := &cli.App{
		Name:  "qa-server",
		Usage: "serve the content quality analyzer over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to YAML config file"},
			&cli.StringFlag{Name: "addr", Usage: "listen address (overrides config)"},
			&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: "model artifact path (overrides config)"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Action: run,
	}
	if err := a.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if v := c.String("addr"); v != "" {
		cfg.Server.Addr = v
	}
	if v := c.String("model"); v != "" {
		cfg.Model.Path = v
	}

	l := app.Logger(cfg, c.Bool("debug"))
	an, loader, err := app.Build(cfg, l)
	if err != nil {
		return err
	}

	// warm the model so a missing artifact shows up at startup; requests
	// retry the load until it is provisioned
	if m, err := loader.Load(); err != nil {
		l.Warnf("model not loaded: %v", err)
	} else {
		l.Infof("model loaded from %s: %s", loader.Path(), m)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(an, l, cfg.Batch.Concurrency).Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		l.Infof("server listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	l.Infof("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down: %w", err)
	}
	l.Infof("bye")
	return nil
}
