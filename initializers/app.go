package initializers

import (
	"context"
	"fmt"

	"github.com/Itish41/asset-audit/archive"
	"github.com/Itish41/asset-audit/distlock"
	"github.com/Itish41/asset-audit/notifier"
	"github.com/Itish41/asset-audit/repository"
	"github.com/Itish41/asset-audit/search"
	services "github.com/Itish41/asset-audit/service"
	"github.com/bsm/redislock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the wired service and the connections it owns.
type App struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Service  *services.AuditService
	Registry *prometheus.Registry
	Logger   *zap.Logger
}

// NewApp connects to every configured backend and builds the AuditService.
func NewApp(ctx context.Context, cfg *Config, log *zap.Logger) (*App, error) {
	db, err := ConnectDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	rdb, err := ConnectRedis(ctx, cfg.Redis, log)
	if err != nil {
		// the service degrades without redis; the open-action index still guards
		log.Warn("redis unavailable", zap.Error(err))
		rdb = nil
	}

	app := &App{DB: db, Redis: rdb, Registry: prometheus.NewRegistry(), Logger: log}
	deps := services.Deps{
		Assets:    repository.NewAssetRepo(db),
		Actions:   repository.NewActionRepo(db),
		Plans:     repository.NewPlanRepo(db),
		Roster:    repository.NewEmployeeRepo(db),
		Reminders: repository.NewReminderLogRepo(db),
		Metrics:   services.NewMetrics(app.Registry),
		Logger:    log,
	}

	if rdb != nil {
		deps.Locker = distlock.New(redislock.New(rdb))
	}

	dispatcher, err := newDispatcher(cfg, rdb, log)
	if err != nil {
		log.Warn("reminders disabled", zap.Error(err))
	} else {
		deps.Dispatcher = dispatcher
	}

	if cfg.Search.URL != "" {
		es, err := search.NewClient(cfg.Search.URL)
		if err != nil {
			log.Warn("failed to create elasticsearch client", zap.Error(err))
		} else {
			deps.Index = search.NewActionIndex(es, cfg.Search.Index, log)
		}
	}

	storage := archive.Config{
		Region:    cfg.Storage.Region,
		Endpoint:  cfg.Storage.Endpoint,
		Bucket:    cfg.Storage.Bucket,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
	}
	if storage.Enabled() {
		archiver, err := archive.NewS3Archiver(storage)
		if err != nil {
			log.Warn("report archive disabled", zap.Error(err))
		} else {
			deps.Archiver = archiver
		}
	}

	app.Service = services.NewAuditService(deps, services.Options{
		DefaultDueMonths: cfg.Actions.DefaultDueMonths,
		LockTTL:          cfg.Actions.LockTTL,
	})
	return app, nil
}

func newDispatcher(cfg *Config, rdb *redis.Client, log *zap.Logger) (*notifier.BreakerDispatcher, error) {
	named := log.Named("notifier")
	switch cfg.Notifier.Driver {
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("notifier driver redis needs redis.addr")
		}
		return notifier.NewBreakerDispatcher("reminders-redis",
			notifier.NewRedisDispatcher(rdb, cfg.Notifier.Channel), named), nil
	case "smtp", "":
		if cfg.SMTP.From == "" {
			return nil, fmt.Errorf("notifier driver smtp needs smtp.from")
		}
		smtpCfg := notifier.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			From:     cfg.SMTP.From,
			Password: cfg.SMTP.Password,
		}
		return notifier.NewBreakerDispatcher("reminders-smtp",
			notifier.NewSMTPDispatcher(smtpCfg, named), named), nil
	default:
		return nil, fmt.Errorf("unknown notifier driver %q", cfg.Notifier.Driver)
	}
}

// Close releases the connections held by the app.
func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.Logger.Sync()
}
