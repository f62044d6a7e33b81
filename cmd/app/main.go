package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo/internal/config"
	"github.com/BuzzLyutic/todo/internal/handler"
	"github.com/BuzzLyutic/todo/internal/repo"
	"github.com/BuzzLyutic/todo/internal/service"
)

type migrator interface {
	Migrate(ctx context.Context) error
}

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	taskRepo, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open the store", zap.String("driver", cfg.StoreDriver), zap.Error(err)) // дальнейшая работа теряет смысл
	}
	defer closeStore()

	if m, ok := taskRepo.(migrator); ok && cfg.AutoMigrate {
		if err := m.Migrate(context.Background()); err != nil {
			logger.Fatal("Migration failed", zap.Error(err))
		}
		logger.Info("Schema is up to date")
	}

	taskService := service.NewTaskService(taskRepo)
	taskHandler := handler.NewTaskHandler(taskService, logger)

	srv := http.Server{ // Создаем сервер
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(taskHandler, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Info("Server stopped successfully!")
}

func openStore(cfg config.Config, logger *zap.Logger) (repo.TaskRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		db, err := repo.ConnectMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Successfully connected to MySQL!")
		return repo.NewMySQLTaskRepo(db), func() { _ = db.Close() }, nil

	case config.DriverMemory:
		logger.Warn("Using in-memory store, tasks are lost on restart")
		return repo.NewMemoryTaskRepo(), func() {}, nil

	default:
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL) // Создаем новое соединение к БД
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(context.Background()); err != nil { // Пытаемся пингануть БД
			pool.Close()
			return nil, nil, err
		}
		logger.Info("Successfully connected to the Database!")
		return repo.NewTaskRepo(pool), pool.Close, nil
	}
}
