package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vogiaan1904/ticketbottle-counters/config"
	grpcSvc "github.com/vogiaan1904/ticketbottle-counters/internal/delivery/grpc"
	httpDelivery "github.com/vogiaan1904/ticketbottle-counters/internal/delivery/http"
	"github.com/vogiaan1904/ticketbottle-counters/internal/delivery/kafka/consumer"
	"github.com/vogiaan1904/ticketbottle-counters/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/ticketbottle-counters/internal/metrics"
	"github.com/vogiaan1904/ticketbottle-counters/internal/queue"
	"github.com/vogiaan1904/ticketbottle-counters/internal/section"
	"github.com/vogiaan1904/ticketbottle-counters/internal/service"
	"github.com/vogiaan1904/ticketbottle-counters/pkg/counterapi"
	pkgKafka "github.com/vogiaan1904/ticketbottle-counters/pkg/kafka"
	pkgLog "github.com/vogiaan1904/ticketbottle-counters/pkg/logger"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	l := pkgLog.InitializeZapLogger(pkgLog.ZapConfig{
		Level:    cfg.Log.Level,
		Mode:     cfg.Log.Mode,
		Encoding: cfg.Log.Encoding,
		Service:  "counters",
	})
	defer l.Sync()

	catalog, err := loadCatalog(cfg.Sections)
	if err != nil {
		l.Fatalf(ctx, "Failed to load sections: %v", err)
	}
	l.Infof(ctx, "Serving sections: %v", catalog.Names())

	mgr := queue.NewManager(catalog)

	repo, closeRepo, err := newRepository(ctx, cfg, mgr, l)
	if err != nil {
		l.Fatalf(ctx, "Failed to initialize %s storage: %v", cfg.Storage.Backend, err)
	}
	defer closeRepo()

	// Kafka producer is optional
	var prod producer.Producer
	if cfg.Kafka.Enabled {
		kafkaSyncProd, err := pkgKafka.NewProducer(pkgKafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			RetryMax:     cfg.Kafka.ProducerRetryMax,
			RequiredAcks: cfg.Kafka.ProducerRequiredAcks,
		})
		if err != nil {
			l.Fatalf(ctx, "Failed to initialize Kafka producer: %v", err)
		}
		prod = producer.NewProducer(kafkaSyncProd, l)
		defer prod.Close()
		l.Infof(ctx, "Kafka producer connected to brokers: %v", cfg.Kafka.Brokers)
	}

	m := metrics.New()
	svc := service.NewCounterService(ctx, mgr, repo, prod, service.NewReceipts(cfg.Receipt), m, l)

	g, gctx := errgroup.WithContext(ctx)

	// gRPC server
	lnr, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRpcPort))
	if err != nil {
		l.Fatalf(ctx, "gRPC server failed to listen: %v", err)
	}

	gRpcSrv := grpc.NewServer()
	counterapi.RegisterCounterServiceServer(gRpcSrv, grpcSvc.NewGrpcService(svc, l))

	g.Go(func() error {
		l.Infof(gctx, "gRPC server is listening on port: %d", cfg.Server.GRpcPort)
		return gRpcSrv.Serve(lnr)
	})

	// HTTP server
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = m.Handler()
	}
	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      httpDelivery.NewRouter(httpDelivery.NewHTTPHandler(svc, l), l, cfg.Metrics.Path, metricsHandler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g.Go(func() error {
		l.Infof(gctx, "HTTP server is listening on port: %d", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Kafka consumer
	if cfg.Kafka.Enabled {
		kafkaConsGr, err := pkgKafka.NewConsumer(pkgKafka.ConsumerConfig{
			Brokers: cfg.Kafka.Brokers,
			GroupID: cfg.Kafka.ConsumerGroupID,
		})
		if err != nil {
			l.Fatalf(ctx, "Failed to initialize Kafka consumer: %v", err)
		}

		cons := consumer.NewConsumer(kafkaConsGr, svc, l)
		cons.Start(gctx)
		defer cons.Close()
	}

	g.Go(func() error {
		<-gctx.Done()
		l.Info(ctx, "Server shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		gRpcSrv.GracefulStop()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		l.Errorf(ctx, "Server stopped with error: %v", err)
	}

	l.Info(ctx, "Server exited")
}

func loadCatalog(cfg config.SectionsConfig) (*section.Catalog, error) {
	if cfg.File != "" {
		return section.LoadCatalog(cfg.File)
	}
	return section.NewCatalog(cfg.Names)
}
