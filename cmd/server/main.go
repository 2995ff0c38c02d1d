package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/router"
	queue_publisher "github.com/iliyamo/fyyur/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		boot := logger.New("info", true)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.Log.Level, cfg.IsLocal())

	db, err := database.Open(database.Options{
		Driver:       cfg.DB.Driver,
		User:         cfg.DB.User,
		Pass:         cfg.DB.Password,
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		Name:         cfg.DB.Name,
		Path:         cfg.DB.Path,
		MaxOpenConns: cfg.DB.MaxOpenConns,
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("could not open database")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("could not apply schema")
		}
	}

	var publisher queue_publisher.Publisher = queue_publisher.NopPublisher{}
	if cfg.Broker.Enabled {
		publisher = queue_publisher.NewAMQPPublisher(cfg.Broker.URL)
	}

	h := handler.NewBookingHandler(
		repository.NewVenueRepo(db),
		repository.NewArtistRepo(db),
		repository.NewShowRepo(db),
		publisher,
	)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.GlobalErrorHandler
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID(log))
	e.Use(middleware.RequestLogger())

	var limiter echo.MiddlewareFunc
	if cfg.RateLimit.Enabled {
		if rdb := config.NewRedisClient(cfg.Redis); rdb != nil {
			defer rdb.Close()
			limiter = middleware.NewTokenBucket(cfg.RateLimit, rdb, log)
		} else {
			log.Warn().Str("addr", cfg.Redis.Addr).Msg("redis unavailable, rate limiting disabled")
		}
	}

	router.RegisterRoutes(e, db)
	router.RegisterBooking(e, h, limiter)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Primary.Env).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.Broker.Enabled {
		consumer := queue.NewConsumer(cfg.Broker.URL, cfg.Broker.ActivityLog, log)
		g.Go(func() error { return consumer.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		_ = db.Close() // os.Exit skips deferred calls
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
