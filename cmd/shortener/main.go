package main

import (
	"net/http"

	"github.com/mkravets/shortener/internal/auth"
	"github.com/mkravets/shortener/internal/cache"
	"github.com/mkravets/shortener/internal/config"
	"github.com/mkravets/shortener/internal/database"
	"github.com/mkravets/shortener/internal/handlers"
	"github.com/mkravets/shortener/internal/repositories"
	"github.com/mkravets/shortener/internal/router"
	"github.com/mkravets/shortener/internal/sequence"
	"github.com/mkravets/shortener/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Инициализация конфигурации
	cfg := config.NewConfig()

	db, err := database.NewDB(cfg.DatabaseDSN, logger)
	if err != nil {
		logger.Fatal("Ошибка подключения к базе данных", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.DatabaseDSN, cfg.PgMigrationsPath, logger); err != nil {
		logger.Fatal("Ошибка применения миграций", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	urlCache := cache.New(rdb, cfg.CacheTTL, logger)
	repo := repositories.NewLinkRepository(db)

	var seq service.Sequence
	if cfg.Mode == config.ModeSequence {
		seq = sequence.New(rdb, cfg.SequenceKey)
	}

	mode := service.ModeRandom
	if cfg.Mode == config.ModeSequence {
		mode = service.ModeSequence
	}

	svc := service.NewShortenerService(repo, urlCache, seq, logger, mode, cfg.CodeLength, cfg.CreateRetries)

	// Передача базового URL в обработчики
	handler := handlers.NewHandler(svc, auth.New(cfg.AuthSecret), logger, cfg.BaseURL)

	r := router.NewRouter(handler, logger)

	logger.Info("Сервер запущен", zap.String("address", cfg.ServerAddress), zap.String("mode", cfg.Mode))
	if cfg.EnableHTTPS {
		err = http.ListenAndServeTLS(cfg.ServerAddress, cfg.TLSCertPath, cfg.TLSKeyPath, r)
	} else {
		err = http.ListenAndServe(cfg.ServerAddress, r)
	}
	if err != nil {
		logger.Fatal("Ошибка при запуске сервера", zap.Error(err))
	}
}
