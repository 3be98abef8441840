package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "rental-intake/internal/adapter/http"
	"rental-intake/internal/adapter/middleware"
	"rental-intake/internal/adapter/notify"
	"rental-intake/internal/adapter/repository/mysql"
	"rental-intake/internal/adapter/repository/redisstore"
	"rental-intake/internal/config"
	"rental-intake/internal/domain/application"
	"rental-intake/internal/domain/document"
	"rental-intake/internal/infrastructure/cache"
	"rental-intake/internal/infrastructure/db"
	"rental-intake/internal/infrastructure/logger"
	agentuc "rental-intake/internal/usecase/agent"
	appuc "rental-intake/internal/usecase/application"
	intakeuc "rental-intake/internal/usecase/intake"
	"rental-intake/internal/usecase/question"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Open(cfg)
	if err != nil {
		zl.Fatal("open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			zl.Fatal("migrate", zap.Error(err))
		}
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		zl.Fatal("database handle", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		zl.Fatal("open redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	defer rdb.Close()

	var notifier application.Notifier = notify.NewLogNotifier(zl)
	if cfg.SESSender != "" {
		ses, err := notify.NewSESNotifierFromEnv(ctx, cfg.SESRegion, cfg.SESSender)
		if err != nil {
			zl.Fatal("ses notifier", zap.Error(err))
		}
		notifier = ses
	}

	agentRepo := mysql.NewAgentRepository(gdb)
	appRepo := mysql.NewApplicationRepository(gdb)

	agents := agentuc.NewUsecase(agentRepo, zl, cfg.PublicBaseURL)
	apps := appuc.NewUsecase(appRepo, mysql.NewGormUoW(gdb),
		appuc.WithNotifier(notifier),
		appuc.WithLogger(zl),
		appuc.WithPublicBaseURL(cfg.PublicBaseURL))
	constraints := document.Constraints{
		AllowedTypes: cfg.UploadAllowedTypes,
		MaxSizeMB:    cfg.UploadMaxSizeMB,
		Multiple:     cfg.UploadMultiple,
	}
	wizards := intakeuc.NewUsecase(agents, apps,
		redisstore.NewWizardStore(rdb, time.Duration(cfg.WizardTTLSecs)*time.Second), constraints, zl)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover(), echomw.RequestID(), middleware.RequestLogger(zl))

	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Health: httpadp.NewHandler(
			httpadp.Check{Name: "db", Fn: sqlDB.PingContext},
			httpadp.Check{Name: "redis", Fn: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		),
		Agents:       httpadp.NewAgentHandler(agents, zl),
		Questions:    httpadp.NewQuestionHandler(question.NewUsecase(agentRepo), zl),
		Applications: httpadp.NewApplicationHandler(apps, zl),
		Intake:       httpadp.NewIntakeHandler(wizards, zl),
	}, middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, zl))

	go func() {
		addr := ":" + cfg.AppPort
		zl.Info("listening", zap.String("addr", addr), zap.String("db_driver", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}
