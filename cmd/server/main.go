package main

import (
	"context"
	"database/sql"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/venue-booking/internal/cache"
	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/logger"
	"github.com/iliyamo/venue-booking/internal/memstore"
	"github.com/iliyamo/venue-booking/internal/middleware"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/router"
	"github.com/iliyamo/venue-booking/internal/service"
	"github.com/iliyamo/venue-booking/internal/validation"
)

// stores groups the persistence gateway selected by STORE_DRIVER.
type stores struct {
	halls    service.HallStore
	foods    service.FoodStore
	themes   service.ThemeStore
	bookings service.BookingStore
	users    service.UserStore
	db       *sql.DB // nil for the memory driver
}

func openStores(ctx context.Context, cfg config.Config, log *zap.Logger) (*stores, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Warn("using in-memory store; data is lost on restart")
		st := memstore.New()
		return &stores{
			halls:    st.Halls(),
			foods:    st.Foods(),
			themes:   st.Themes(),
			bookings: st.Bookings(),
			users:    st.Users(),
		}, nil
	}
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, err
	}
	if cfg.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("database schema ready")
	}
	return &stores{
		halls:    repository.NewHallRepo(db),
		foods:    repository.NewFoodRepo(db),
		themes:   repository.NewThemeRepo(db),
		bookings: repository.NewBookingRepo(db),
		users:    repository.NewUserRepo(db),
		db:       db,
	}, nil
}

// connectRedis returns nil when neither the cache nor the rate limiter is
// enabled, or when Redis cannot be reached.
func connectRedis(cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig, log *zap.Logger) *redis.Client {
	if !cacheCfg.Enabled && !rlCfg.Enabled {
		return nil
	}
	rcfg := config.LoadRedisConfig()
	rdb, err := config.NewRedisClient(rcfg)
	if err != nil {
		log.Warn("redis unavailable; cache and rate limiting disabled", zap.Error(err))
		return nil
	}
	log.Info("redis connected", zap.String("addr", rcfg.Addr))
	return rdb
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal("open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	if st.db != nil {
		defer st.db.Close()
	}

	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()
	rdb := connectRedis(cacheCfg, rlCfg, log)
	if rdb != nil {
		defer rdb.Close()
	}
	var inv cache.Invalidator = cache.Nop{}
	if cacheCfg.Enabled {
		inv = cache.NewInvalidator(rdb, cacheCfg.Prefix)
	}

	var events service.EventPublisher
	if cfg.Events {
		events = queue.NewPublisher(cfg.RabbitURL)
	}

	v := validation.New()
	var pinger handler.Pinger
	if st.db != nil {
		pinger = st.db
	}
	handlers := router.Handlers{
		Health:   handler.NewHealthHandler(pinger, log),
		Halls:    handler.NewHallHandler(service.NewHallService(st.halls, st.bookings, v, inv, log)),
		Foods:    handler.NewFoodHandler(service.NewFoodService(st.foods, v, inv, log)),
		Themes:   handler.NewThemeHandler(service.NewThemeService(st.themes, v, inv, log)),
		Bookings: handler.NewBookingHandler(service.NewBookingService(st.bookings, st.halls, st.users, v, inv, events, log)),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = v
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.CORS())
	router.Register(e, handlers, router.Options{
		JWTSecret: cfg.JWTSecret,
		Redis:     rdb,
		Cache:     cacheCfg,
		RateLimit: rlCfg,
		Log:       log,
	})

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("store", cfg.StoreDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
