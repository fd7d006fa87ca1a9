package cmd

import (
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"taskboard.com/taskboard/internal/board"
	config "taskboard.com/taskboard/internal/configs"
	"taskboard.com/taskboard/internal/events"
	repository "taskboard.com/taskboard/internal/repositories"
	"taskboard.com/taskboard/internal/services"
	"taskboard.com/taskboard/internal/session"
)

type backend struct {
	boards *services.BoardService
	auth   *services.AuthService
	close  func()
}

func loadConfig() config.Config {
	if err := godotenv.Load(); err != nil {
		log.Info(".env file not found, using environment variables")
	}

	cfg := config.Load()
	config.ConfigureLogging(cfg)
	return cfg
}

// newBackend wires the configured storage driver to the board and auth
// services. Every write is announced so that open board streams reload.
func newBackend(cfg config.Config) *backend {
	var (
		repo       repository.RecordRepository
		publisher  events.Publisher
		subscriber events.Subscriber
		closeFn    = func() {}
	)

	switch cfg.StorageDriver {
	case config.DriverRedis:
		client := config.NewRedisClient(cfg.RedisAddr)
		broker := events.NewRedisBroker(client, cfg.RedisChangesChannel)
		repo = repository.NewRedisRecordRepository(client, cfg.RedisKeyPrefix)
		publisher, subscriber = broker, broker
		closeFn = client.Close
	case config.DriverSQLite:
		db := config.NewDatabase(cfg.DatabaseDSN)
		broker := events.NewBroker()
		repo = repository.NewSQLiteRecordRepository(db)
		publisher, subscriber = broker, broker
		closeFn = func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	default:
		broker := events.NewBroker()
		repo = repository.NewMemoryRecordRepository()
		publisher, subscriber = broker, broker
	}

	log.WithField("driver", cfg.StorageDriver).Info("storage ready")

	repo = events.NewPublishingRepository(repo, publisher)
	sessions := session.NewManager(repo, cfg.SessionKey)
	store := board.NewStore(repo, subscriber, cfg.TasksKey)

	return &backend{
		boards: services.NewBoardService(store, sessions),
		auth:   services.NewAuthService(session.NewAccounts(repo, cfg.UsersKey), sessions),
		close:  closeFn,
	}
}
