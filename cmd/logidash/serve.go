package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"go.uber.org/zap"

	"github.com/goliatone/go-logistics-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-logistics-dashboard/components/dashboard/gorouter"
	"github.com/goliatone/go-logistics-dashboard/components/dashboard/httpapi"
)

type serveCmd struct {
	ShutdownTimeout time.Duration `default:"10s" help:"Grace period for in-flight requests."`
}

func (cmd *serveCmd) Run(rt *runtime) error {
	a, err := buildApp(rt.ctx, rt.cfg, rt.logger)
	if err != nil {
		return err
	}
	defer a.Close()

	cookie := httpapi.CookieConfig{
		Name:   rt.cfg.HTTP.Cookie.Name,
		Secure: rt.cfg.HTTP.Cookie.Secure,
	}
	executor := httpapi.NewCommandExecutor(a.service, a.telemetry)

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: a.controller,
		Service:    a.service,
		API:        executor,
		Broadcast:  a.broadcast,
		Logger:     rt.logger,
		BasePath:   rt.cfg.HTTP.BasePath,
		Cookie:     cookie,
	}); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(rt.ctx)
	defer cancel()

	sweep := commands.NewSweepSessionsCommand(a.service.Sessions(), a.telemetry)
	go runSweeper(ctx, sweep, a.charts.Purge, rt.cfg.Sessions.SweepInterval, rt.cfg.Sessions.IdleTimeout, rt.logger)

	errc := make(chan error, 2)
	go func() {
		rt.logger.Info("dashboard listening", zap.String("addr", rt.cfg.HTTP.Addr))
		errc <- server.Serve(rt.cfg.HTTP.Addr)
	}()

	var api *http.Server
	if rt.cfg.HTTP.APIAddr != "" {
		handlers := httpapi.NewHandlers(a.service, a.broadcast, a.telemetry, rt.logger)
		handlers.Executor = executor
		handlers.Cookie = cookie
		api = &http.Server{
			Addr:              rt.cfg.HTTP.APIAddr,
			Handler:           handlers.Routes(httpapi.RouteOptions{FrameDeny: true}),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			rt.logger.Info("json api listening", zap.String("addr", rt.cfg.HTTP.APIAddr))
			if err := api.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
	case err = <-errc:
		rt.logger.Error("server stopped", zap.Error(err))
	}

	rt.logger.Info("shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), cmd.ShutdownTimeout)
	defer stop()
	var errs []error
	if err != nil {
		errs = append(errs, err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if api != nil {
		if err := api.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// runSweeper evicts idle sessions and expired charts every interval until
// ctx ends.
func runSweeper(ctx context.Context, sweep *commands.SweepSessionsCommand, purge func(), interval, maxIdle time.Duration, logger *zap.Logger) {
	if interval <= 0 || maxIdle <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sweep.Execute(ctx, commands.SweepSessionsInput{MaxIdle: maxIdle}); err != nil {
				logger.Warn("session sweep failed", zap.Error(err))
			}
			if purge != nil {
				purge()
			}
		}
	}
}
