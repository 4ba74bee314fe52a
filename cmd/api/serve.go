package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/portfolio/config"
	"github.com/GoSim-25-26J-441/portfolio/internal/bootstrap"
	"github.com/GoSim-25-26J-441/portfolio/internal/logutils"
	"github.com/GoSim-25-26J-441/portfolio/internal/web"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logutils.Configure(cfg.App.LogLevel, cfg.App.Environment)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	content, err := web.LoadContent(cfg.App.ContentPath)
	if err != nil {
		return err
	}

	res, err := bootstrap.OpenResources(ctx, cfg)
	if err != nil {
		return err
	}
	defer res.Close()

	app := bootstrap.BuildApp(cfg, res, content)
	cancelWatch := app.Admin.Watch()
	defer cancelWatch()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logutils.Log.WithFields(logutils.Fields{
			"port":   cfg.Server.Port,
			"store":  cfg.Store.Driver,
			"admins": len(cfg.Admin.Emails),
		}).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logutils.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
