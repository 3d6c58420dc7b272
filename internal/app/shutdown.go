package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Shutdown gracefully shuts down the application. The engine is stopped
// first so no cycle is mid-flight when the sink closes.
func (a *App) Shutdown() error {
	a.logger.Info("application-shutting-down")

	a.probe.SetReady(false)

	// Stops the engine's poll loop; an in-flight cycle finishes on its own.
	a.cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	err := a.httpServer.Shutdown(shutdownCtx)
	if err != nil {
		a.logger.Error("http-server-shutdown-error", zap.Error(err))
	}

	a.wg.Wait()

	err = a.eventSink.Close()
	if err != nil {
		a.logger.Error("sink-close-error", zap.Error(err))
	}

	a.marketCache.Close()

	a.logger.Info("application-shutdown-complete")

	return nil
}
