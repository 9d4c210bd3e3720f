package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/swapo-org/swapo-backend/internal/config"
	"github.com/swapo-org/swapo-backend/internal/db"
	"github.com/swapo-org/swapo-backend/internal/domain/event"
	"github.com/swapo-org/swapo-backend/internal/goroutine"
	"github.com/swapo-org/swapo-backend/internal/http/middleware"
	httpRouter "github.com/swapo-org/swapo-backend/internal/http/router"
	"github.com/swapo-org/swapo-backend/internal/infrastructure/eventbus"
	"github.com/swapo-org/swapo-backend/internal/infrastructure/oauth"
	"github.com/swapo-org/swapo-backend/internal/infrastructure/persistence"
	"github.com/swapo-org/swapo-backend/internal/interface/http/handler"
	"github.com/swapo-org/swapo-backend/internal/logger"
	"github.com/swapo-org/swapo-backend/internal/service"
	"github.com/swapo-org/swapo-backend/internal/storage"
	"github.com/swapo-org/swapo-backend/internal/usecase/block"
	"github.com/swapo-org/swapo-backend/internal/usecase/listing"
	"github.com/swapo-org/swapo-backend/internal/usecase/message"
	"github.com/swapo-org/swapo-backend/internal/usecase/notification"
	"github.com/swapo-org/swapo-backend/internal/usecase/proposal"
	"github.com/swapo-org/swapo-backend/internal/usecase/skill"
	"github.com/swapo-org/swapo-backend/internal/usecase/trade"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}
	logger.Init(cfg.LogLevel, !cfg.IsProduction())
	logMain := logger.WithComponent("main")

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logMain.WithError(err).Fatal("ошибка подключения к базе")
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		logMain.WithError(err).Fatal("ошибка миграций")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = db.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logMain.WithError(err).Fatal("ошибка подключения к Redis")
		}
		defer func() { _ = rdb.Close() }()
	}

	// Репозитории.
	txManager := persistence.NewTxManager(dbConn)
	userRepo := persistence.NewUserRepositoryAdapter(dbConn)
	skillRepo := persistence.NewSkillRepositoryAdapter(dbConn)
	userSkillRepo := persistence.NewUserSkillRepositoryAdapter(dbConn)
	listingRepo := persistence.NewListingRepositoryAdapter(dbConn)
	blockRepo := persistence.NewBlockRepositoryAdapter(dbConn)
	proposalRepo := persistence.NewProposalRepositoryAdapter(dbConn)
	tradeRepo := persistence.NewTradeRepositoryAdapter(dbConn)
	messageRepo := persistence.NewMessageRepositoryAdapter(dbConn)
	notificationRepo := persistence.NewNotificationRepositoryAdapter(dbConn)

	// Доставка событий в уведомления.
	fanout := notification.NewFanoutHandler(notificationRepo, userRepo, skillRepo, proposalRepo, tradeRepo)

	var events event.Publisher
	if cfg.NotificationDelivery == config.DeliveryQueue {
		opt := eventbus.RedisOpt(rdb)
		client := asynq.NewClient(opt)
		defer func() { _ = client.Close() }()
		events = eventbus.NewQueuePublisher(client)

		worker := eventbus.NewWorker(opt, cfg.QueueConcurrency, fanout)
		if err := worker.Start(); err != nil {
			logMain.WithError(err).Fatal("не удалось запустить обработчик очереди")
		}
		defer worker.Shutdown()
		logMain.WithField("concurrency", cfg.QueueConcurrency).Info("уведомления доставляются через очередь")
	} else {
		events = eventbus.NewDispatcher(fanout)
	}

	// Хранилище фотографий.
	var (
		photos    storage.PhotoStore
		mediaRoot string
	)
	switch cfg.StorageDriver {
	case config.StorageCloudinary:
		cld, err := storage.NewCloudinaryStorage(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder)
		if err != nil {
			logMain.WithError(err).Fatal("не удалось подготовить Cloudinary")
		}
		photos = cld
	default:
		local, err := storage.NewPhotoStorage(cfg.MediaStoragePath)
		if err != nil {
			logMain.WithError(err).Fatal("не удалось подготовить файловое хранилище")
		}
		photos = local
		mediaRoot = local.Root()
	}

	// Сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := service.NewAuthService(userRepo, tokenManager)
	profileService := service.NewProfileService(userRepo, photos, cfg.MaxUploadSizeMB, cfg.MaxPhotoSide)

	var google handler.GoogleOAuth
	if cfg.Google.Enabled() {
		google = oauth.NewGoogleProvider(cfg.Google)
	}

	materialize := trade.NewMaterializeTradeUseCase(tradeRepo)

	// HTTP хэндлеры.
	healthChecks := map[string]handler.Pinger{"database": dbConn.PingContext}
	if rdb != nil {
		healthChecks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	handlers := httpRouter.Handlers{
		Health:  handler.NewHealthHandler(healthChecks),
		Auth:    handler.NewAuthHandler(authService, google, cfg.FrontendURL, cfg.IsProduction()),
		Profile: handler.NewProfileHandler(profileService),
		Skill: handler.NewSkillHandler(
			skill.NewListSkillsUseCase(skillRepo),
			skill.NewCreateSkillUseCase(skillRepo),
			skill.NewAddUserSkillsUseCase(skillRepo, userSkillRepo),
			skill.NewListUserSkillsUseCase(userRepo, userSkillRepo),
			skill.NewDeleteUserSkillUseCase(userSkillRepo),
		),
		Listing: handler.NewListingHandler(
			listing.NewCreateListingUseCase(listingRepo, skillRepo),
			listing.NewUpdateListingUseCase(listingRepo, skillRepo),
			listing.NewDeleteListingUseCase(listingRepo),
			listing.NewGetListingUseCase(listingRepo),
			listing.NewListListingsUseCase(listingRepo),
		),
		Block: handler.NewBlockHandler(
			block.NewBlockUserUseCase(blockRepo, userRepo),
			block.NewListBlocksUseCase(blockRepo),
			block.NewIsBlockedUseCase(blockRepo),
			block.NewUnblockUseCase(blockRepo),
		),
		Proposal: handler.NewProposalHandler(
			proposal.NewCreateProposalUseCase(proposalRepo, userRepo, skillRepo, events),
			proposal.NewAcceptProposalUseCase(txManager, proposalRepo, materialize, events),
			proposal.NewRejectProposalUseCase(txManager, proposalRepo, events),
			proposal.NewGetProposalUseCase(proposalRepo),
			proposal.NewListProposalsUseCase(proposalRepo),
		),
		Trade: handler.NewTradeHandler(
			trade.NewStartTradeUseCase(txManager, tradeRepo, events),
			trade.NewCompleteTradeUseCase(txManager, tradeRepo, events),
			trade.NewGetTradeUseCase(tradeRepo),
			trade.NewListTradesUseCase(tradeRepo),
		),
		Message: handler.NewMessageHandler(
			message.NewSendMessageUseCase(messageRepo, userRepo, events),
			message.NewConversationUseCase(messageRepo),
			message.NewInboxUseCase(messageRepo),
		),
		Notification: handler.NewNotificationHandler(
			notification.NewListNotificationsUseCase(notificationRepo),
			notification.NewUnreadCountUseCase(notificationRepo),
			notification.NewMarkAllReadUseCase(notificationRepo),
			notification.NewMarkReadUseCase(notificationRepo),
		),
	}

	rateStore, err := middleware.NewRateLimitStore(rdb)
	if err != nil {
		logMain.WithError(err).Fatal("не удалось подготовить rate limiter")
	}

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, handlers, httpRouter.Options{
		Tokens:         tokenManager,
		RateLimitStore: rateStore,
		MediaRoot:      mediaRoot,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGoWithContext(ctx, "http-shutdown", func(ctx context.Context) {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logMain.WithError(err).Error("ошибка остановки http сервера")
		}
	})

	logMain.WithField("port", cfg.HTTPPort).Info("HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logMain.WithError(err).Error("сервер завершился с ошибкой")
	}
	logMain.Info("сервер остановлен")
}

// safeClose закрывает соединение с базой.
func safeClose(conn *sqlx.DB) {
	if err := conn.Close(); err != nil {
		logger.Log.WithError(err).Warn("ошибка закрытия базы")
	}
}
