package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Cmnplays/BACKEND-MEGA-PROJECT/internal/cache"
	"github.com/Cmnplays/BACKEND-MEGA-PROJECT/internal/catalog"
	"github.com/Cmnplays/BACKEND-MEGA-PROJECT/internal/config"
	"github.com/Cmnplays/BACKEND-MEGA-PROJECT/internal/events"
	"github.com/Cmnplays/BACKEND-MEGA-PROJECT/internal/logging"
	"github.com/Cmnplays/BACKEND-MEGA-PROJECT/internal/media"
	"github.com/Cmnplays/BACKEND-MEGA-PROJECT/internal/metrics"
	"github.com/Cmnplays/BACKEND-MEGA-PROJECT/internal/realtime"
)

const serviceName = "catalog-service"

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logrus.WithError(err).Fatal("catalog-service: config")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Postgres
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("pg: connect")
	}
	defer pool.Close()
	if err := catalog.AutoMigrate(ctx, pool); err != nil {
		log.WithError(err).Fatal("pg: migrate")
	}

	// Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Fatal("redis: invalid REDIS_URL")
	}
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	opts := []catalog.Option{
		catalog.WithLogger(log),
		catalog.WithPublisher(events.NewRedisPublisher(rdb, log)),
		catalog.WithStatsCache(cache.NewStatsCache(rdb, cfg.StatsCacheTTL, log)),
	}
	if cfg.MediaEnabled() {
		store, err := media.New(ctx, media.Config{
			Endpoint:  cfg.Media.Endpoint,
			AccessKey: cfg.Media.AccessKey,
			SecretKey: cfg.Media.SecretKey,
			Bucket:    cfg.Media.Bucket,
			UseSSL:    cfg.Media.UseSSL,
			PublicURL: cfg.Media.PublicURL,
		})
		if err != nil {
			log.WithError(err).Fatal("media: connect")
		}
		opts = append(opts, catalog.WithMedia(store))
	} else {
		log.Warn("media: MEDIA_ENDPOINT not set, uploads are disabled")
	}

	svc := catalog.NewService(catalog.NewPostgresStore(pool), opts...)
	m := metrics.New("catalog")

	// Hub + redis relay
	hub := realtime.NewHub()
	feed := realtime.NewServer(hub, rdb, cfg.CORSAllowedOrigin, log)
	go hub.Run(ctx)
	go feed.RunRedisSubscriber(ctx)

	auth := catalog.AuthMiddleware(cfg.JWTSecret)
	if len(cfg.JWTSecret) == 0 {
		log.Warn("auth: JWT_SECRET not set, trusting X-User-Id from the gateway")
	}

	r := catalog.NewServer(svc, log, cfg.MaxUploadBytes).Router(
		auth,
		catalog.CORSMiddleware(cfg.CORSAllowedOrigin),
		middleware.RequestID,
		middleware.RealIP,
		logging.Middleware(log),
		m.Middleware,
		middleware.Recoverer,
		middleware.Timeout(cfg.RequestTimeout),
	)
	r.Handle("/metrics", m.Handler())
	r.Get("/ws", feed.HandleWS)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("catalog-service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http: serve")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http: shutdown")
	}
}
