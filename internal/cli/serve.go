package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/magicboy5300/exchange/internal/bootstrap"
	"github.com/magicboy5300/exchange/internal/kafka"
	"github.com/magicboy5300/exchange/internal/middleware"
)

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, log := a.cfg, a.logger

	ctx, stopJobs := context.WithCancel(parent)
	defer stopJobs()

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	stores := bootstrap.InitStores(connectCtx, cfg, log)
	cancel()

	var kafkaBundle *kafka.KafkaBundle
	if cfg.KafkaEnabled() {
		bundle, err := kafka.InitKafka(cfg.KafkaBrokers, cfg.RatesTopic, cfg.MirrorGroup, stores.Mirror != nil)
		if err != nil {
			log.Warn("kafka disabled", "error", err)
		} else {
			kafkaBundle = bundle
		}
	}

	rateLimiter, err := middleware.NewLimiter(cfg.RateLimit, stores.Redis)
	if err != nil {
		kafkaBundle.Close()
		stores.Close()
		return err
	}

	svc := bootstrap.InitServices(cfg, stores, kafkaBundle, log)
	router := bootstrap.InitRoutes(bootstrap.InitHandlers(svc, log), rateLimiter, cfg.CORSOrigins, log)

	bootstrap.StartWorkers(ctx, kafkaBundle, stores, log)
	bootstrap.StartCronJobs(ctx, cfg, stores, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	bootstrap.GracefulShutdown(srv, stopJobs, log, kafkaBundle.Close, stores.Close, func() { close(done) })

	log.Info("server started", "port", cfg.Port, "sources", svc.Rates.SourceNames())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	log.Info("server stopped")
	return nil
}
