package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

// GracefulShutdown stops the server on SIGINT or SIGTERM, then cancels
// background jobs and runs closers in order.
func GracefulShutdown(srv *http.Server, stopJobs context.CancelFunc, logger *slog.Logger, closers ...func()) {
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		logger.Info("shutting down gracefully")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}

		if stopJobs != nil {
			stopJobs()
		}
		for _, c := range closers {
			c()
		}
	}()
}
