package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// Run starts the application and blocks until shutdown.
func (a *App) Run() error {
	a.logger.Info("application-starting",
		zap.String("trigger", a.cfg.TriggerOn),
		zap.Duration("poll-interval", a.cfg.PollInterval),
		zap.String("sink", a.cfg.SinkMode),
		zap.String("log-level", a.cfg.LogLevel))

	a.wg.Add(1)
	go a.runHTTPServer()

	a.wg.Add(1)
	go a.runEngine()

	a.probe.SetReady(true)

	a.logger.Info("application-ready",
		zap.String("http-addr", ":"+a.cfg.HTTPPort))

	return a.waitForShutdown()
}

func (a *App) runHTTPServer() {
	defer a.wg.Done()
	err := a.httpServer.Start()
	if err != nil {
		a.logger.Error("http-server-error", zap.Error(err))
	}
}

func (a *App) runEngine() {
	defer a.wg.Done()
	a.engine.Run(a.ctx)
}

// PollOnce runs one manual cycle and propagates its error, then releases
// the sink and cache. Intended for one-shot invocations, not alongside Run.
func (a *App) PollOnce(ctx context.Context) error {
	defer a.marketCache.Close()
	defer func() {
		_ = a.eventSink.Close()
	}()

	return a.engine.PollOnce(ctx)
}

func (a *App) waitForShutdown() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		a.logger.Info("shutdown-signal-received", zap.String("signal", sig.String()))
	case <-a.ctx.Done():
		a.logger.Info("context-cancelled")
	}

	return a.Shutdown()
}
