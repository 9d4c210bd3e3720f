// Команда announce рассылает системное объявление всем пользователям.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/swapo-org/swapo-backend/internal/config"
	"github.com/swapo-org/swapo-backend/internal/db"
	"github.com/swapo-org/swapo-backend/internal/infrastructure/persistence"
	"github.com/swapo-org/swapo-backend/internal/logger"
	"github.com/swapo-org/swapo-backend/internal/usecase/notification"
)

func main() {
	var message string
	flag.StringVar(&message, "message", notification.DefaultAnnouncement, "текст объявления")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("announce: ошибка загрузки конфигурации: %v", err)
	}
	logger.Init(cfg.LogLevel, !cfg.IsProduction())

	conn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("announce: ошибка подключения к базе: %v", err)
	}
	defer func() { _ = conn.Close() }()

	uc := notification.NewAnnounceUseCase(
		persistence.NewNotificationRepositoryAdapter(conn),
		persistence.NewUserRepositoryAdapter(conn),
	)
	created, err := uc.Execute(ctx, message)
	if err != nil {
		fmt.Fprintf(os.Stderr, "announce: %v (создано %d)\n", err, created)
		os.Exit(1)
	}
	fmt.Printf("Создано уведомлений: %d\n", created)
}
